package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"estate-api/domain"
	"estate-api/dto"
	"estate-api/utils"
)

const principalKey = "principal"

// TokenValidator verifica bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*utils.Claims, error)
}

// PrincipalFrom devuelve el usuario autenticado, o nil si el request es anónimo
func PrincipalFrom(c *gin.Context) *domain.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*domain.Principal)
	return p
}

// bearerToken extrae el token de un header "Authorization: Bearer <token>"
func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// OptionalAuth guarda el principal de un bearer token válido y nunca rechaza el
// request. Un token inválido cuenta como anónimo.
func OptionalAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := tokens.ValidateToken(token); err == nil {
				c.Set(principalKey, claims.Principal())
			}
		}
		c.Next()
	}
}

// AuthMiddleware rechaza con 401 los requests sin un bearer token válido
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authorization header required"))
			return
		}
		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "invalid or expired token"))
			return
		}
		c.Set(principalKey, claims.Principal())
		c.Next()
	}
}

// AdminMiddleware va después de AuthMiddleware; rechaza con 403 a quien no sea
// admin
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		if principal == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authentication required"))
			return
		}
		if !principal.Privileged() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(dto.ErrorCodeForbidden, "admin privileges required"))
			return
		}
		c.Next()
	}
}
