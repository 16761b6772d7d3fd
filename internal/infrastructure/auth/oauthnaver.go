package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"

	"remory/internal/domain/identity"
	sharedConfig "remory/internal/shared/config"
)

var naverEndpoint = oauth2.Endpoint{
	AuthURL:  "https://nid.naver.com/oauth2.0/authorize",
	TokenURL: "https://nid.naver.com/oauth2.0/token",
}

type NaverOAuthClient struct {
	config *oauth2.Config
}

type naverUserInfo struct {
	ResultCode string `json:"resultcode"`
	Message    string `json:"message"`
	Response   struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Nickname  string `json:"nickname"`
		Mobile    string `json:"mobile"`
		Birthday  string `json:"birthday"`
		BirthYear string `json:"birthyear"`
	} `json:"response"`
}

func NewNaverOAuthClient(cfg sharedConfig.OAuthProviderConfig) *NaverOAuthClient {
	return &NaverOAuthClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     naverEndpoint,
		},
	}
}

func (c *NaverOAuthClient) GetAuthURL(state string) string {
	return c.config.AuthCodeURL(state)
}

func (c *NaverOAuthClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}
	return token.AccessToken, nil
}

// GetProfile fetches the Naver member profile. Naver can supply mobile and
// birthday, so a Naver profile may arrive already complete.
func (c *NaverOAuthClient) GetProfile(ctx context.Context, accessToken string) (*VerifiedProfile, error) {
	body, err := fetchProviderProfile(ctx, "https://openapi.naver.com/v1/nid/me", accessToken)
	if err != nil {
		return nil, err
	}

	var info naverUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse naver user info: %w", err)
	}
	if info.ResultCode != "00" {
		return nil, fmt.Errorf("naver user info request failed: %s", info.Message)
	}
	if info.Response.ID == "" {
		return nil, fmt.Errorf("naver user info has no subject id")
	}

	birthday := ""
	if info.Response.BirthYear != "" && info.Response.Birthday != "" {
		// Naver splits birth date into year and MM-DD parts.
		birthday = info.Response.BirthYear + "-" + info.Response.Birthday
	}

	return &VerifiedProfile{
		Provider:          identity.ProviderNaver,
		ProviderSubjectID: info.Response.ID,
		Name:              info.Response.Name,
		Nickname:          info.Response.Nickname,
		Phone:             info.Response.Mobile,
		Birthday:          birthday,
	}, nil
}
