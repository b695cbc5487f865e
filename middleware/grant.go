package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"paywall-backend/grant"
)

const GrantTokenKey = "grant_token"

// extractBearer extrait le jeton d'un en-tête "Authorization: Bearer <token>",
// avec ou sans guillemets ni schéma
func extractBearer(c *gin.Context) string {
	authHeader := strings.Trim(c.GetHeader("Authorization"), "\"' ")
	if authHeader == "" {
		return ""
	}

	if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		authHeader = "Bearer " + authHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.Trim(parts[1], "\"' ")
}

// GrantToken stocke sous GrantTokenKey le jeton présenté pour le contenu :id.
// Le cookie du contenu est prioritaire sur l'en-tête Authorization,
// utilisé par les clients sans cookies.
func GrantToken(cookies grant.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Token(c.Request, c.Param("id"))
		if token == "" {
			token = extractBearer(c)
		}
		c.Set(GrantTokenKey, token)
		c.Next()
	}
}
