package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "dealcanvas/internal/errors"
)

const (
	tokenIssuer       = "dealcanvas-api"
	workspaceTokenTyp = "workspace"

	// WorkspaceIDKey is the gin context key holding the authenticated workspace.
	WorkspaceIDKey = "workspaceID"
)

// WorkspaceClaims represents the claims in a workspace token.
type WorkspaceClaims struct {
	WorkspaceID string `json:"workspace_id"`
	TokenType   string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies workspace tokens.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenIssuer creates an issuer using an HMAC secret.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate returns a signed token granting access to one workspace and its
// expiry time.
func (i *TokenIssuer) Generate(workspaceID string) (string, time.Time, error) {
	now := i.now()
	expires := now.Add(i.ttl)
	claims := &WorkspaceClaims{
		WorkspaceID: workspaceID,
		TokenType:   workspaceTokenTyp,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   workspaceID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Validate parses and validates a workspace token.
func (i *TokenIssuer) Validate(tokenString string) (*WorkspaceClaims, error) {
	claims := &WorkspaceClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.key, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(i.now))

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid workspace token")
	}
	if claims.TokenType != workspaceTokenTyp || claims.WorkspaceID == "" {
		return nil, fmt.Errorf("token is not a workspace token")
	}
	return claims, nil
}

// WorkspaceAuth verifies the bearer token and sets the workspace ID in the
// context. EventSource clients cannot set headers, so a "token" query
// parameter is accepted as well.
func WorkspaceAuth(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
				return
			}
			tokenString = parts[1]
		}
		if tokenString == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		claims, err := issuer.Validate(tokenString)
		if err != nil {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired token"))
			return
		}

		c.Set(WorkspaceIDKey, claims.WorkspaceID)
		c.Next()
	}
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
