package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentops/backend/internal/infrastructure/auth"
	"github.com/rentops/backend/internal/interfaces/http/dto"
)

// Gin context keys set by the JWT middleware
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTTenantIDKey = "jwt_tenant_id"
	JWTRoleKey     = "jwt_role"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// JWTAuth validates the bearer token on every request and stores the
// claims in the gin context for handlers to read
func JWTAuth(jwtService *auth.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(header, bearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if logger != nil {
				logger.Warn("Token validation failed",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path))
			}
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithCode(c, "INVALID_TOKEN", "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTTenantIDKey, claims.TenantID)
		c.Set(JWTRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole rejects requests whose token role is not in the allowed
// set. It must run after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(JWTRoleKey)
		if _, ok := allowed[role]; !ok {
			requestID := GetRequestID(c)
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Insufficient role", requestID))
			return
		}
		c.Next()
	}
}

// TenantID returns the authenticated tenant parsed from the claims
func TenantID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetString(JWTTenantIDKey)
	if raw == "" {
		return uuid.Nil, errors.New("tenant not found in context")
	}
	return uuid.Parse(raw)
}

// UserID returns the authenticated user parsed from the claims
func UserID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetString(JWTUserIDKey)
	if raw == "" {
		return uuid.Nil, errors.New("user not found in context")
	}
	return uuid.Parse(raw)
}

func abortUnauthorized(c *gin.Context, message string) {
	abortWithCode(c, dto.ErrCodeUnauthorized, message)
}

func abortWithCode(c *gin.Context, code, message string) {
	requestID := GetRequestID(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}
