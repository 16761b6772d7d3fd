package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Request and response header names for the dual-token scheme.
const (
	AuthorizationHeader = "Authorization"
	RefreshTokenHeader  = "RefreshToken"
	ExtendLoginHeader   = "ExtendLogin"
	TokenExpiredHeader  = "token-expired"
)

const bearerPrefix = "Bearer"

// BearerToken extracts the bearer token from the named request header.
// Returns "" when the header is absent or not in "Bearer <token>" form.
func BearerToken(c *gin.Context, header string) string {
	value := c.GetHeader(header)
	if value == "" {
		return ""
	}

	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// SetBearerToken writes a token to the named response header in bearer form.
func SetBearerToken(c *gin.Context, header, token string) {
	c.Header(header, bearerPrefix+" "+token)
}
