package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/handlers/dto"
)

// Authenticate exige um token de sessão válido e guarda o userId no contexto.
// O token vem do header Authorization (Bearer) ou, para WebSockets, do
// parâmetro ?token=.
func Authenticate(tokens ports.TokenIssuer, logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			dto.AbortWithProblem(c, dto.UnauthorizedErrorResponseI18n(c, domainerrors.ErrUnauthorized.Error()))
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			logger.Debug("token rejected", "path", c.Request.URL.Path, "error", err)
			dto.AbortWithProblem(c, dto.UnauthorizedErrorResponseI18n(c, domainerrors.ErrUnauthorized.Error()))
			return
		}

		c.Set(dto.UserIDContextKey, claims.UserID)
		c.Next()
	}
}

// RequireSelf exige que o parâmetro de rota seja o próprio usuário autenticado
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param(param) != CurrentUserID(c) {
			dto.AbortWithProblem(c, dto.ForbiddenErrorResponseI18n(c))
			return
		}
		c.Next()
	}
}

// CurrentUserID retorna o usuário autenticado, ou "" em rotas públicas
func CurrentUserID(c *gin.Context) string {
	return c.GetString(dto.UserIDContextKey)
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
