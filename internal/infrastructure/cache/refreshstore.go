// Package cache provides Redis-backed stores for short-lived auth state.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"remory/internal/domain/identity"
)

const refreshKeyPrefix = "refresh:"

// RedisRefreshStore is the Redis-backed refresh token slot. SET gives the
// same last-write-wins single-slot semantics as the database upsert, and the
// TTL matches the refresh token lifetime so abandoned slots expire on their own.
type RedisRefreshStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRefreshStore(client *redis.Client, refreshExpDays int) identity.RefreshCredentialRepository {
	return &RedisRefreshStore{
		client: client,
		ttl:    time.Duration(refreshExpDays) * 24 * time.Hour,
	}
}

func (s *RedisRefreshStore) Save(ctx context.Context, subjectID, token string) error {
	if err := s.client.Set(ctx, refreshKeyPrefix+subjectID, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save refresh credential: %w", err)
	}
	return nil
}

func (s *RedisRefreshStore) Find(ctx context.Context, subjectID string) (*identity.RefreshCredential, error) {
	token, err := s.client.Get(ctx, refreshKeyPrefix+subjectID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find refresh credential: %w", err)
	}
	return &identity.RefreshCredential{
		SubjectID: subjectID,
		Token:     token,
	}, nil
}

func (s *RedisRefreshStore) FindSubjectID(ctx context.Context, subjectID, token string) (string, error) {
	cred, err := s.Find(ctx, subjectID)
	if err != nil {
		return "", err
	}
	if cred == nil || cred.Token != token {
		return "", nil
	}
	return subjectID, nil
}

func (s *RedisRefreshStore) Delete(ctx context.Context, subjectID string) error {
	if err := s.client.Del(ctx, refreshKeyPrefix+subjectID).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh credential: %w", err)
	}
	return nil
}
