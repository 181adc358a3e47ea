package middleware

import (
	"net/http"
	"strings"

	"github.com/bizhub/backend/internal/infrastructure/auth"
	"github.com/bizhub/backend/internal/infrastructure/logger"
	"github.com/bizhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys for the authenticated principal
const (
	PrincipalKey  = "principal"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Principal is the verified identity attached to a request before any
// business resolution has happened.
type Principal struct {
	UserID   uuid.UUID
	Email    string
	FullName string
	TokenJTI string
}

// AuthConfig holds configuration for the authentication middleware
type AuthConfig struct {
	Verifier *auth.TokenVerifier
	// Denylist is optional; when set, revoked tokens are rejected
	Denylist auth.TokenDenylist
	Logger   *zap.Logger
}

// Authenticate verifies the bearer token and stores the principal in the
// gin context. Requests without a valid token are rejected with 401.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Missing or malformed authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := cfg.Verifier.Verify(tokenString)
		if err != nil {
			code := dto.ErrCodeTokenInvalid
			if err == auth.ErrExpiredToken {
				code = dto.ErrCodeTokenExpired
			}
			abortUnauthorized(c, code, "Token validation failed")
			return
		}

		if cfg.Denylist != nil {
			if revoked := checkDenylist(c, cfg, claims); revoked {
				abortUnauthorized(c, dto.ErrCodeTokenRevoked, "Token has been revoked")
				return
			}
		}

		userID, err := claims.UserUUID()
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token subject is not a valid user ID")
			return
		}

		c.Set(PrincipalKey, Principal{
			UserID:   userID,
			Email:    claims.Email,
			FullName: claims.Name,
			TokenJTI: claims.ID,
		})

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithUserID(ctx, log, userID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// checkDenylist reports whether the token or the whole user session has
// been revoked. Denylist lookup failures fail open: availability over
// instant revocation.
func checkDenylist(c *gin.Context, cfg AuthConfig, claims *auth.Claims) bool {
	ctx := c.Request.Context()

	if claims.ID != "" {
		revoked, err := cfg.Denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("token denylist check failed", zap.Error(err))
			}
		} else if revoked {
			return true
		}
	}

	revoked, err := cfg.Denylist.IsUserTokenRevoked(ctx, claims.Subject, claims.IssuedAtTime())
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Error("user token cutoff check failed", zap.Error(err))
		}
		return false
	}
	return revoked
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// GetPrincipal retrieves the authenticated principal from the context
func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
