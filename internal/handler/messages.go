package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gn1blog/internal/locale"
)

const (
	msgPostNotFound       = "post_not_found"
	msgAdminTokenRequired = "admin_token_required"
)

var messages = map[string]map[string]string{
	msgPostNotFound: {
		locale.LanguagePortuguese: "Post não encontrado",
		locale.LanguageEnglish:    "Post not found",
		locale.LanguageSpanish:    "Publicación no encontrada",
	},
	msgAdminTokenRequired: {
		locale.LanguagePortuguese: "Token de administrador obrigatório",
		locale.LanguageEnglish:    "Admin token required",
		locale.LanguageSpanish:    "Se requiere token de administrador",
	},
}

// localizedError aborts with the code and its text in the request locale.
func (a *API) localizedError(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":   code,
		"message": locale.Pick(a.RequestLocale(c), messages[code], code),
	})
}
