package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/gig-marketplace/internal/auth"
	"github.com/ignatzorin/gig-marketplace/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextIdentityKey = "identity"
	ContextUserIDKey   = "userID"
	ContextRoleKey     = "role"
)

// AuthMiddleware проверяет JWT access токен и кладёт в контекст запроса
// явную identity. Каждый защищённый маршрут перечислен в роутере —
// пустой matcher исходной системы, не защищавший ничего, не воспроизводится.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.ParseAccess(raw)
		if err != nil || claims.UserID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "токен невалиден"})
			return
		}

		c.Set(ContextIdentityKey, auth.Verified(claims.TokenIdentifier))
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}
