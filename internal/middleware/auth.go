package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/torcriss/CocoReddit-sub000/internal/identity"
	"github.com/torcriss/CocoReddit-sub000/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// sessionClaims mirrors what the external identity provider puts in its
// tokens: subject is the stable user id, email and given_name are the
// optional alias claims.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	GivenName string `json:"given_name"`
}

type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware() *AuthMiddleware {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "12345"
	}

	return &AuthMiddleware{secret: secret}
}

func (m *AuthMiddleware) parseIdentity(c *gin.Context) (identity.Identity, error) {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}

	// Fallback to query parameter "token" (useful for WebSockets)
	if tokenString == "" {
		tokenString = c.Query("token")
	}

	if tokenString == "" {
		return identity.Identity{}, fmt.Errorf("authorization required")
	}

	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return identity.Identity{}, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok {
		return identity.Identity{}, fmt.Errorf("invalid token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("invalid subject claim")
	}

	return identity.Identity{
		UserID:    userID,
		Email:     claims.Email,
		FirstName: claims.GivenName,
	}, nil
}

// RequireAuth rejects requests lacking a valid session token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := m.parseIdentity(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(response.IdentityKey, ident)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid token is present and lets
// anonymous requests pass through untouched.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident, err := m.parseIdentity(c); err == nil {
			c.Set(response.IdentityKey, ident)
		}
		c.Next()
	}
}
