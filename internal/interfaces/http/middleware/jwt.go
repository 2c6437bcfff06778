package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/madadgar/backend/internal/infrastructure/auth"
	"github.com/madadgar/backend/internal/infrastructure/logger"
)

const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUserNameKey = "jwt_user_name"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTMiddlewareConfig configures the authentication middleware.
type JWTMiddlewareConfig struct {
	// JWTService validates tokens. Required.
	JWTService *auth.JWTService
	// TokenBlacklist rejects revoked tokens when set.
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths and SkipPathPrefixes bypass authentication entirely.
	SkipPaths        []string
	SkipPathPrefixes []string
	// OnError replaces the default 401 response when set.
	OnError func(c *gin.Context, err error)
	Logger  *zap.Logger
}

// DefaultJWTConfig skips the health endpoints and the public API surface.
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/metrics",
			"/api/v1/health",
		},
		SkipPathPrefixes: []string{
			"/api/v1/public",
		},
	}
}

// JWTAuthMiddleware authenticates requests with the default configuration.
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

func (cfg *JWTMiddlewareConfig) skips(path string) bool {
	for _, p := range cfg.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from an Authorization header, returning
// "" when the header is absent or malformed.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, BearerPrefix)
}

// JWTAuthMiddlewareWithConfig authenticates requests, checks revocation
// when a blacklist is configured, and stores the claims in both the gin
// context and the request context logger.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.skips(c.Request.URL.Path) {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			handleAuthError(c, cfg, auth.ErrInvalidToken, "Missing or malformed authorization header")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(token)
		if err != nil {
			handleAuthError(c, cfg, err, "Token validation failed")
			return
		}

		if cfg.TokenBlacklist != nil && !passesRevocationChecks(c, cfg, claims) {
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUserNameKey, claims.Name)

		// tag the request-scoped logger with the authenticated user
		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		if cfg.Logger != nil {
			cfg.Logger.Debug("authenticated", zap.String("user_id", claims.UserID))
		}
		c.Next()
	}
}

// passesRevocationChecks verifies the token against per-token and
// account-wide revocation. Blacklist lookup failures fail open so an
// unreachable redis does not take down authenticated traffic.
func passesRevocationChecks(c *gin.Context, cfg JWTMiddlewareConfig, claims *auth.Claims) bool {
	ctx := c.Request.Context()

	if claims.ID != "" {
		revoked, err := cfg.TokenBlacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("token revocation check failed",
					zap.String("jti", claims.ID), zap.Error(err))
			}
		} else if revoked {
			handleAuthError(c, cfg, auth.ErrTokenRevoked, "Token has been revoked")
			return false
		}
	}

	if claims.UserID != "" {
		var issuedAt time.Time
		if claims.IssuedAt != nil {
			issuedAt = claims.IssuedAt.Time
		}
		invalidated, err := cfg.TokenBlacklist.IsUserTokenInvalidated(ctx, claims.UserID, issuedAt)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("user invalidation check failed",
					zap.String("user_id", claims.UserID), zap.Error(err))
			}
		} else if invalidated {
			handleAuthError(c, cfg, auth.ErrTokenRevoked, "User session has been invalidated")
			return false
		}
	}
	return true
}

func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	if cfg.OnError != nil {
		cfg.OnError(c, err)
		return
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code, msg := "ERR_UNAUTHORIZED", "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code, msg = "ERR_TOKEN_EXPIRED", "Token has expired"
	case auth.ErrInvalidToken:
		code, msg = "ERR_TOKEN_INVALID", "Invalid token"
	case auth.ErrTokenNotYetValid:
		code, msg = "ERR_TOKEN_INVALID", "Token is not yet valid"
	case auth.ErrMissingUserID:
		code, msg = "ERR_TOKEN_INVALID", "Token carries no subject"
	case auth.ErrTokenRevoked:
		code, msg = "ERR_TOKEN_REVOKED", "Token has been revoked"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": msg},
	})
}

// GetJWTClaims returns the validated claims, or nil on unauthenticated
// requests.
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// MustGetJWTClaims returns the validated claims and panics when called on
// a route that is not behind the auth middleware.
func MustGetJWTClaims(c *gin.Context) *auth.Claims {
	claims := GetJWTClaims(c)
	if claims == nil {
		panic("jwt claims not found in context")
	}
	return claims
}

// GetJWTUserID returns the authenticated user ID, or "".
func GetJWTUserID(c *gin.Context) string {
	if v, ok := c.Get(JWTUserIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// GetJWTUserName returns the authenticated user's display name, or "".
func GetJWTUserName(c *gin.Context) string {
	if v, ok := c.Get(JWTUserNameKey); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}

// OptionalJWTAuthMiddleware extracts claims when a valid token is present
// but never rejects the request. Public routes use it so authenticated
// donors get their donations attributed.
func OptionalJWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUserNameKey, claims.Name)
		c.Next()
	}
}
