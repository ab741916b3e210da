package dto

// Chaves usadas para compartilhar dados da requisição entre middlewares e
// handlers através do gin.Context
const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
	// BaseURLContextKey guarda a URL base usada nos tipos de problema RFC 7807
	BaseURLContextKey = "base_url"
	// UserIDContextKey guarda o userId extraído do token de sessão
	UserIDContextKey = "user_id"
	// RequestIDContextKey guarda o identificador da requisição
	RequestIDContextKey = "request_id"
)
