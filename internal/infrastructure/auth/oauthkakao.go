package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"

	"remory/internal/domain/identity"
	sharedConfig "remory/internal/shared/config"
)

var kakaoEndpoint = oauth2.Endpoint{
	AuthURL:  "https://kauth.kakao.com/oauth/authorize",
	TokenURL: "https://kauth.kakao.com/oauth/token",
}

type KakaoOAuthClient struct {
	config *oauth2.Config
}

type kakaoUserInfo struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Profile struct {
			Nickname string `json:"nickname"`
		} `json:"profile"`
		Name string `json:"name"`
	} `json:"kakao_account"`
}

func NewKakaoOAuthClient(cfg sharedConfig.OAuthProviderConfig) *KakaoOAuthClient {
	return &KakaoOAuthClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"profile_nickname"},
			Endpoint:     kakaoEndpoint,
		},
	}
}

func (c *KakaoOAuthClient) GetAuthURL(state string) string {
	return c.config.AuthCodeURL(state)
}

func (c *KakaoOAuthClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}
	return token.AccessToken, nil
}

// GetProfile fetches the Kakao account profile. Kakao never supplies phone
// or birthday, so those fields are always empty and the linker routes the
// member through the profile completion flow.
func (c *KakaoOAuthClient) GetProfile(ctx context.Context, accessToken string) (*VerifiedProfile, error) {
	body, err := fetchProviderProfile(ctx, "https://kapi.kakao.com/v2/user/me", accessToken)
	if err != nil {
		return nil, err
	}

	var info kakaoUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse kakao user info: %w", err)
	}
	if info.ID == 0 {
		return nil, fmt.Errorf("kakao user info has no subject id")
	}

	name := info.KakaoAccount.Name
	if name == "" {
		name = info.KakaoAccount.Profile.Nickname
	}

	return &VerifiedProfile{
		Provider:          identity.ProviderKakao,
		ProviderSubjectID: strconv.FormatInt(info.ID, 10),
		Name:              name,
		Nickname:          info.KakaoAccount.Profile.Nickname,
	}, nil
}

// fetchProviderProfile performs the authenticated profile request shared by
// all provider clients.
func fetchProviderProfile(ctx context.Context, url, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{Timeout: httpClientTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read user info response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
