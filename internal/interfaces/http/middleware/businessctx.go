package middleware

import (
	"errors"
	"net/http"

	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/bizhub/backend/internal/infrastructure/logger"
	"github.com/bizhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BusinessContextKey is the gin context key for the resolved tenant scope
const BusinessContextKey = "business_context"

// ResolveBusiness resolves the authenticated principal to a business and
// role and stores the result in the gin context. Routes behind this
// middleware can assume a complete tenant scope.
func ResolveBusiness(resolver *appidentity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c, "UNAUTHENTICATED", "Authentication required")
			return
		}

		bctx, err := resolver.Resolve(c.Request.Context(), principal.UserID)
		if err != nil {
			var derr *shared.DomainError
			if errors.As(err, &derr) {
				requestID := c.GetString(RequestIDKey)
				c.AbortWithStatusJSON(dto.GetHTTPStatus(derr.Code),
					dto.NewErrorResponseWithRequestID(derr.Code, derr.Message, requestID))
				return
			}
			requestID := c.GetString(RequestIDKey)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An unexpected error occurred", requestID))
			return
		}

		c.Set(BusinessContextKey, *bctx)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithBusinessID(ctx, log, bctx.BusinessID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetBusinessContext retrieves the resolved tenant scope from the context
func GetBusinessContext(c *gin.Context) (appidentity.BusinessContext, bool) {
	v, exists := c.Get(BusinessContextKey)
	if !exists {
		return appidentity.BusinessContext{}, false
	}
	bctx, ok := v.(appidentity.BusinessContext)
	return bctx, ok
}
