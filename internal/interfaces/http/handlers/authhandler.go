package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"remory/internal/application/auth/usecases"
	"remory/internal/infrastructure/auth"
	"remory/internal/shared/config"
	"remory/internal/shared/errors"
	"remory/internal/shared/logger"
	"remory/internal/shared/utils"
)

// StateStore issues and consumes one-time OAuth state nonces.
type StateStore interface {
	Issue(ctx context.Context, provider string) (string, error)
	Consume(ctx context.Context, state, provider string) error
}

type AuthHandler struct {
	register  *usecases.RegisterWithPasswordUseCase
	login     *usecases.LoginWithPasswordUseCase
	reissue   *usecases.ReissueTokenUseCase
	logout    *usecases.LogoutUseCase
	link      *usecases.LinkSocialIdentityUseCase
	complete  *usecases.CompleteProfileUseCase
	providers map[string]auth.ProviderClient
	states    StateStore
	oauthCfg  *config.OAuthConfig
	logger    logger.Interface
}

func NewAuthHandler(
	register *usecases.RegisterWithPasswordUseCase,
	login *usecases.LoginWithPasswordUseCase,
	reissue *usecases.ReissueTokenUseCase,
	logout *usecases.LogoutUseCase,
	link *usecases.LinkSocialIdentityUseCase,
	complete *usecases.CompleteProfileUseCase,
	providers map[string]auth.ProviderClient,
	states StateStore,
	oauthCfg *config.OAuthConfig,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		register:  register,
		login:     login,
		reissue:   reissue,
		logout:    logout,
		link:      link,
		complete:  complete,
		providers: providers,
		states:    states,
		oauthCfg:  oauthCfg,
		logger:    logger,
	}
}

type signupRequest struct {
	LoginHandle string `json:"login_handle" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Nickname    string `json:"nickname"`
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.register.Execute(c.Request.Context(), usecases.RegisterWithPasswordCommand{
		LoginHandle: req.LoginHandle,
		Secret:      req.Password,
		DisplayName: req.DisplayName,
		Nickname:    req.Nickname,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Signup completed", gin.H{"subject_id": result.SubjectID})
}

type loginRequest struct {
	LoginHandle string `json:"login_handle" binding:"required"`
	Password    string `json:"password" binding:"required"`
	RememberMe  bool   `json:"remember_me"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.login.Execute(c.Request.Context(), usecases.Credentials{
		Handle:     req.LoginHandle,
		Secret:     req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		h.logAuthFailure("login", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.writeTokenPair(c, result)
}

// Reissue handles POST /api/auth/reissue. Tokens travel in headers, the
// same way guarded requests carry them; the ExtendLogin header requests
// slot rotation.
func (h *AuthHandler) Reissue(c *gin.Context) {
	cmd := usecases.ReissueTokenCommand{
		AccessToken:  utils.BearerToken(c, utils.AuthorizationHeader),
		RefreshToken: utils.BearerToken(c, utils.RefreshTokenHeader),
		ExtendLogin:  c.GetHeader(utils.ExtendLoginHeader) == "true",
	}

	result, err := h.reissue.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logAuthFailure("reissue", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetBearerToken(c, utils.AuthorizationHeader, result.AccessToken)
	if result.RefreshToken != "" {
		utils.SetBearerToken(c, utils.RefreshTokenHeader, result.RefreshToken)
	}
	utils.SuccessResponse(c, http.StatusOK, "Token reissued", gin.H{
		"expires_in": result.ExpiresIn,
		"profile":    result.Profile,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.logout.Execute(c.Request.Context(), usecases.LogoutCommand{
		AccessToken: utils.BearerToken(c, utils.AuthorizationHeader),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.String(http.StatusOK, "logout success")
}

// SocialRedirect handles GET /api/auth/:provider and sends the browser to
// the provider's consent page with a one-time state.
func (h *AuthHandler) SocialRedirect(c *gin.Context) {
	provider := c.Param("provider")
	client, ok := h.providers[provider]
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("unknown provider: %s", provider))
		return
	}

	state, err := h.states.Issue(c.Request.Context(), provider)
	if err != nil {
		h.logger.Errorw("failed to issue oauth state", "error", err, "provider", provider)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error occurred")
		return
	}

	c.Redirect(http.StatusFound, client.GetAuthURL(state))
}

// SocialCallback handles GET /api/auth/:provider/callback. Completed
// profiles leave with a token pair, incomplete ones are redirected to the
// profile completion page.
func (h *AuthHandler) SocialCallback(c *gin.Context) {
	provider := c.Param("provider")
	client, ok := h.providers[provider]
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("unknown provider: %s", provider))
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "code and state are required")
		return
	}
	if err := h.states.Consume(c.Request.Context(), state, provider); err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired state")
		return
	}

	accessToken, err := client.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		h.logger.Errorw("oauth code exchange failed", "error", err, "provider", provider)
		utils.ErrorResponse(c, http.StatusBadGateway, "Provider exchange failed")
		return
	}
	profile, err := client.GetProfile(c.Request.Context(), accessToken)
	if err != nil {
		h.logger.Errorw("oauth profile fetch failed", "error", err, "provider", provider)
		utils.ErrorResponse(c, http.StatusBadGateway, "Provider profile fetch failed")
		return
	}

	outcome, err := h.link.Execute(c.Request.Context(), usecases.LinkSocialIdentityCommand{Profile: *profile})
	if err != nil {
		h.logAuthFailure("social callback", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if outcome.NeedsCompletion {
		// The completion page gets everything already known so the form
		// can be prefilled.
		q := url.Values{}
		q.Set("subject_id", outcome.SubjectID)
		q.Set("provider", outcome.Provider)
		q.Set("name", outcome.Partial.DisplayName)
		q.Set("nickname", outcome.Partial.Nickname)
		if outcome.Partial.Phone != "" {
			q.Set("phone", outcome.Partial.Phone)
		}
		if outcome.Partial.Birthday != "" {
			q.Set("birthday", outcome.Partial.Birthday)
		}
		c.Redirect(http.StatusFound, h.oauthCfg.FrontendCompletionURL+"?"+q.Encode())
		return
	}

	login := outcome.Login
	q := url.Values{}
	q.Set("access_token", login.AccessToken)
	q.Set("refresh_token", login.RefreshToken)
	q.Set("expires_in", strconv.FormatInt(login.ExpiresIn, 10))
	q.Set("subject_id", login.Profile.SubjectID)
	q.Set("display_name", login.Profile.DisplayName)
	q.Set("nickname", login.Profile.Nickname)
	q.Set("role", login.Profile.Role.String())
	q.Set("remember_me", strconv.FormatBool(login.Profile.RememberMe))
	c.Redirect(http.StatusFound, h.oauthCfg.FrontendCallbackURL+"?"+q.Encode())
}

type completeProfileRequest struct {
	SubjectID string `json:"subject_id" binding:"required"`
	Nickname  string `json:"nickname"`
	Phone     string `json:"phone" binding:"required"`
	Birthday  string `json:"birthday" binding:"required"`
}

// CompleteProfile handles POST /api/auth/complete-profile and issues the
// token pair the callback withheld.
func (h *AuthHandler) CompleteProfile(c *gin.Context) {
	var req completeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.complete.Execute(c.Request.Context(), usecases.CompleteProfileCommand{
		SubjectID: req.SubjectID,
		Nickname:  req.Nickname,
		Phone:     req.Phone,
		Birthday:  req.Birthday,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.writeTokenPair(c, result)
}

func (h *AuthHandler) writeTokenPair(c *gin.Context, result *usecases.LoginResult) {
	utils.SetBearerToken(c, utils.AuthorizationHeader, result.AccessToken)
	utils.SetBearerToken(c, utils.RefreshTokenHeader, result.RefreshToken)
	utils.SuccessResponse(c, http.StatusOK, "Login succeeded", gin.H{
		"expires_in": result.ExpiresIn,
		"profile":    result.Profile,
	})
}

func (h *AuthHandler) logAuthFailure(op string, err error) {
	if !errors.ShouldLogAuthError(err) {
		return
	}
	if errors.IsSecurityEvent(err) {
		h.logger.Warnw("security event", "op", op, "error", err)
		return
	}
	h.logger.Errorw("auth operation failed", "op", op, "error", err)
}
