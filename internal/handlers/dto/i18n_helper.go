package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/votex-backend/internal/infrastructure/i18n"
)

// T é um helper para traduzir mensagens no contexto do Gin
// Uso: dto.T(c, "validation.required", map[string]interface{}{"Field": "name"})
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	value, exists := c.Get(I18nServiceContextKey)
	if !exists {
		// Sem serviço configurado a chave é o melhor que temos
		return key
	}

	service, ok := value.(*i18n.Service)
	if !ok {
		return key
	}

	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma configurado no contexto da requisição
func GetLanguage(c *gin.Context) string {
	lang, exists := c.Get(LanguageContextKey)
	if !exists {
		return "en"
	}

	langStr, ok := lang.(string)
	if !ok {
		return "en"
	}

	return langStr
}
