package middleware

import (
	"net/http"
	"strings"

	"github.com/glYohanny/Gucci/internal/apierror"

	"github.com/gin-gonic/gin"
)

const UsuarioIDKey = "user_id"

// TokenVerifier is satisfied by *service.TokenManager.
type TokenVerifier interface {
	Verificar(raw string) (uint, error)
}

// JWTAuth validates the Authorization header on every protected route. The
// "Bearer " prefix is optional. Failures answer 401 with {"mensaje": ...}.
func JWTAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

		id, err := v.Verificar(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"mensaje": apierror.Message(err)})
			return
		}
		c.Set(UsuarioIDKey, id)
		c.Next()
	}
}

// GetUsuarioID returns the id stored by JWTAuth, zero on public routes.
func GetUsuarioID(c *gin.Context) uint {
	id, _ := c.Get(UsuarioIDKey)
	v, _ := id.(uint)
	return v
}
