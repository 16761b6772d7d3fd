package cache

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	oauthStatePrefix = "oauth:state:"
	oauthStateTTL    = 10 * time.Minute
	oauthStateBytes  = 32
)

// ErrStateInvalid is returned when the state nonce is unknown or expired.
var ErrStateInvalid = errors.New("oauth state not found or expired")

// OAuthStateStore holds one-time state nonces for the social login flow.
// States are single-use: verification consumes the key atomically.
type OAuthStateStore struct {
	client *redis.Client
}

func NewOAuthStateStore(client *redis.Client) *OAuthStateStore {
	return &OAuthStateStore{client: client}
}

// Issue generates a random state nonce bound to the provider and stores it
// with a short TTL.
func (s *OAuthStateStore) Issue(ctx context.Context, provider string) (string, error) {
	bytes := make([]byte, oauthStateBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	state := base64.RawURLEncoding.EncodeToString(bytes)

	if err := s.client.Set(ctx, oauthStatePrefix+state, provider, oauthStateTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}
	return state, nil
}

// Consume validates the state for the given provider and deletes it.
func (s *OAuthStateStore) Consume(ctx context.Context, state, provider string) error {
	stored, err := s.client.GetDel(ctx, oauthStatePrefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrStateInvalid
		}
		return fmt.Errorf("failed to verify oauth state: %w", err)
	}
	if stored != provider {
		return ErrStateInvalid
	}
	return nil
}
