package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"remory/internal/infrastructure/auth"
	"remory/internal/shared/errors"
	"remory/internal/shared/logger"
	"remory/internal/shared/utils"
)

// Context keys set by the auth middleware for downstream handlers.
const (
	ContextSubjectID   = "subject_id"
	ContextRole        = "role"
	ContextDisplayName = "display_name"
)

// bypassPrefixes are served without credentials: the login surface itself,
// static assets, and the websocket handshake (which checks its own token).
var bypassPrefixes = []string{
	"/api/auth/",
	"/api/public/",
	"/static/",
	"/ws/",
}

// TokenDecoder is the slice of the token codec the middleware needs.
type TokenDecoder interface {
	Decode(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware guards every non-bypassed route. Both tokens are inspected
// per request; the refresh token is never accepted as a substitute for a
// valid access token, it only selects the error the caller receives.
func AuthMiddleware(decoder TokenDecoder, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bypassed(c.Request.URL.Path) {
			c.Next()
			return
		}

		accessToken := utils.BearerToken(c, utils.AuthorizationHeader)
		refreshToken := utils.BearerToken(c, utils.RefreshTokenHeader)

		// Both tokens are required; a lone token cannot pass the filter.
		if accessToken == "" || refreshToken == "" {
			reject(c, errors.NewMissingTokensError())
			return
		}

		accessClaims, accessErr := decoder.Decode(accessToken)
		refreshClaims, refreshErr := decoder.Decode(refreshToken)

		// Any token that fails to decode means a broken or tampered client.
		if accessErr != nil || refreshErr != nil {
			log.Warnw("malformed token on guarded route",
				"path", c.Request.URL.Path,
				"access_error", accessErr,
				"refresh_error", refreshErr)
			reject(c, errors.NewTokenMalformedError(errors.TokenClassAccess))
			return
		}
		if accessClaims.TokenClass != auth.TokenClassAccess || refreshClaims.TokenClass != auth.TokenClassRefresh {
			reject(c, errors.NewTokenMalformedError(errors.TokenClassAccess))
			return
		}

		accessExpired := accessClaims.Expired()
		refreshExpired := refreshClaims.Expired()

		switch {
		case !accessExpired && !refreshExpired:
			c.Set(ContextSubjectID, accessClaims.SubjectID)
			c.Set(ContextRole, string(accessClaims.Role))
			c.Set(ContextDisplayName, accessClaims.DisplayName)
			c.Next()
			return

		case accessExpired && !refreshExpired:
			// Recoverable: the hint header tells the client which token to
			// send through the reissue endpoint.
			c.Header(utils.TokenExpiredHeader, errors.TokenClassAccess)
			reject(c, errors.NewTokenExpiredError(errors.TokenClassAccess))
			return

		case !accessExpired && refreshExpired:
			reject(c, errors.NewTokenExpiredError(errors.TokenClassRefresh))
			return

		default:
			reject(c, errors.NewTokenExpiredError(errors.TokenClassRefresh))
			return
		}
	}
}

func bypassed(path string) bool {
	if path == "/" {
		return true
	}
	for _, prefix := range bypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func reject(c *gin.Context, err error) {
	utils.ErrorResponseWithError(c, err)
	c.Abort()
}
