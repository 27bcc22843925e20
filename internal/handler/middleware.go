package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/intervue/auth-service/internal/domain"
	"github.com/intervue/auth-service/internal/dto"
	"github.com/intervue/auth-service/internal/service"
)

const claimsContextKey = "claims"

// AuthMiddleware validates the bearer token and adds its claims to context
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set(claimsContextKey, claims)

		c.Next()
	}
}

func claimsFromContext(c *gin.Context) *domain.TokenClaims {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*domain.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
