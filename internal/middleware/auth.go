package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"marketing-studio-backend/internal/config"
	"marketing-studio-backend/internal/models"
)

const (
	UserIDKey      = "user_id"
	EmailKey       = "email"
	AccessTokenKey = "access_token"
)

func unauthorized(c *gin.Context, errMsg, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: errMsg, Message: message})
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header, undoing URL encoding some clients apply.
func BearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	token := parts[1]
	if decoded, err := url.QueryUnescape(token); err == nil {
		token = decoded
	}
	return token, token != ""
}

// AuthMiddleware validates Supabase HS256 access tokens and stores the "sub"
// claim under UserIDKey.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header", "")
			return
		}

		tokenString, ok := BearerToken(authHeader)
		if !ok {
			unauthorized(c, "invalid authorization header format", "expected: Bearer <token>")
			return
		}

		if strings.Count(tokenString, ".") != 2 {
			unauthorized(c, "invalid token format", "JWT token must have 3 parts separated by dots")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if cfg.SupabaseJWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			// Supabase JWT secret is used directly as the signing key
			return []byte(cfg.SupabaseJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			var errorMsg string
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				errorMsg = "token has expired"
			case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
				errorMsg = "token signature is invalid - check JWT secret"
			case errors.Is(err, jwt.ErrTokenMalformed):
				errorMsg = "token is malformed - ensure you're using a valid Supabase JWT token"
			case errors.Is(err, jwt.ErrTokenUnverifiable):
				errorMsg = "token could not be verified"
			default:
				errorMsg = err.Error()
			}
			unauthorized(c, "invalid token", errorMsg)
			return
		}
		if !token.Valid {
			unauthorized(c, "invalid token", "")
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			unauthorized(c, "missing user id in token", "")
			return
		}

		c.Set(UserIDKey, sub)
		if email, _ := claims["email"].(string); email != "" {
			c.Set(EmailKey, email)
		}
		c.Set(AccessTokenKey, tokenString)
		c.Next()
	}
}
