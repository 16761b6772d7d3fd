package auth

import (
	"context"
	"time"
)

// httpClientTimeout is the timeout for HTTP requests to OAuth providers
const httpClientTimeout = 30 * time.Second

// VerifiedProfile is the externally verified identity payload a provider
// yields after a successful code exchange. Phone and Birthday stay empty for
// providers that do not supply them.
type VerifiedProfile struct {
	Provider          string
	ProviderSubjectID string
	Name              string
	Nickname          string
	Phone             string
	Birthday          string
}

// ProviderClient turns an authorization code into a verified profile.
// The token exchange itself is the provider's concern; everything after the
// profile is obtained belongs to the identity linker.
type ProviderClient interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (accessToken string, err error)
	GetProfile(ctx context.Context, accessToken string) (*VerifiedProfile, error)
}
