package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"remory/internal/shared/authorization"
)

// TokenClass tags a credential as short-lived access or long-lived refresh.
// The class is embedded in the claims and immutable after minting.
type TokenClass string

const (
	TokenClassAccess  TokenClass = "access"
	TokenClassRefresh TokenClass = "refresh"
)

var (
	// ErrEmptyToken is returned when Decode receives blank input.
	ErrEmptyToken = errors.New("token is empty")
	// ErrMalformedToken is returned for unparseable input or a bad signature.
	// An expired-but-authentic token is NOT malformed.
	ErrMalformedToken = errors.New("token is malformed or badly signed")
)

// Claims carries the identity snapshot bound into a signed token.
type Claims struct {
	SubjectID   string                 `json:"sub_id"`
	Role        authorization.UserRole `json:"role"`
	DisplayName string                 `json:"display_name"`
	TokenClass  TokenClass             `json:"token_class"`
	jwt.RegisteredClaims
}

// TokenPair bundles a freshly minted access and refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenCodec mints and decodes signed expiring credentials over a single
// shared secret. Decode verifies the signature but deliberately skips expiry
// validation: "cryptographically valid" and "temporally valid" are separate
// checks, so the reissue path can tell a garbage token from a good-but-old one.
type TokenCodec struct {
	secret           []byte
	accessExpMinutes int
	refreshExpDays   int
	parser           *jwt.Parser
}

func NewTokenCodec(secret string, accessExpMinutes, refreshExpDays int) *TokenCodec {
	return &TokenCodec{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// Mint creates a signed token of the given class. Expiry duration is selected
// by class: minutes for access, days for refresh.
func (c *TokenCodec) Mint(subjectID string, role authorization.UserRole, displayName string, class TokenClass) (string, error) {
	if subjectID == "" {
		return "", fmt.Errorf("subject ID is required")
	}

	now := time.Now().UTC()
	var exp time.Time
	switch class {
	case TokenClassAccess:
		exp = now.Add(time.Duration(c.accessExpMinutes) * time.Minute)
	case TokenClassRefresh:
		exp = now.Add(time.Duration(c.refreshExpDays) * 24 * time.Hour)
	default:
		return "", fmt.Errorf("unknown token class: %s", class)
	}

	claims := &Claims{
		SubjectID:   subjectID,
		Role:        role,
		DisplayName: displayName,
		TokenClass:  class,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", class, err)
	}
	return signed, nil
}

// MintPair creates an access and refresh token for the same subject snapshot.
// All token issuance in the service funnels through this single path.
func (c *TokenCodec) MintPair(subjectID string, role authorization.UserRole, displayName string) (*TokenPair, error) {
	accessToken, err := c.Mint(subjectID, role, displayName, TokenClassAccess)
	if err != nil {
		return nil, err
	}

	refreshToken, err := c.Mint(subjectID, role, displayName, TokenClassRefresh)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(c.accessExpMinutes * 60),
	}, nil
}

// Decode verifies the signature and returns the claims. An expired token
// still decodes successfully; expiry is checked separately via IsExpired.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrEmptyToken
	}

	token, err := c.parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.SubjectID == "" {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

// IsExpired decodes the token and compares its expiry to the current time.
func (c *TokenCodec) IsExpired(tokenString string) (bool, error) {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return false, err
	}
	return claims.Expired(), nil
}

// SubjectOf returns the subject ID embedded in the token.
func (c *TokenCodec) SubjectOf(tokenString string) (string, error) {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return "", err
	}
	return claims.SubjectID, nil
}

// RoleOf returns the role snapshot embedded in the token.
func (c *TokenCodec) RoleOf(tokenString string) (authorization.UserRole, error) {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

// ClassOf returns the token class embedded in the token.
func (c *TokenCodec) ClassOf(tokenString string) (TokenClass, error) {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return "", err
	}
	return claims.TokenClass, nil
}

// AccessExpMinutes returns the access token lifetime in minutes.
func (c *TokenCodec) AccessExpMinutes() int {
	return c.accessExpMinutes
}

// Expired reports whether the claims' expiry instant has passed.
func (cl *Claims) Expired() bool {
	if cl.ExpiresAt == nil {
		return true
	}
	return time.Now().UTC().After(cl.ExpiresAt.Time)
}
