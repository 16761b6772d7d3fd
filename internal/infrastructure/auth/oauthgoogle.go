package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"remory/internal/domain/identity"
	sharedConfig "remory/internal/shared/config"
)

type GoogleOAuthClient struct {
	config *oauth2.Config
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func NewGoogleOAuthClient(cfg sharedConfig.OAuthProviderConfig) *GoogleOAuthClient {
	return &GoogleOAuthClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (c *GoogleOAuthClient) GetAuthURL(state string) string {
	return c.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (c *GoogleOAuthClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}
	return token.AccessToken, nil
}

// GetProfile fetches the Google account profile. Google supplies neither
// phone nor birthday through this endpoint.
func (c *GoogleOAuthClient) GetProfile(ctx context.Context, accessToken string) (*VerifiedProfile, error) {
	body, err := fetchProviderProfile(ctx, "https://www.googleapis.com/oauth2/v2/userinfo", accessToken)
	if err != nil {
		return nil, err
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse google user info: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("google user info has no subject id")
	}

	return &VerifiedProfile{
		Provider:          identity.ProviderGoogle,
		ProviderSubjectID: info.ID,
		Name:              info.Name,
		Nickname:          info.Name,
	}, nil
}
