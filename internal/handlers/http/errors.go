package http

import (
	"errors"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/handlers/dto"
)

// respondError traduz um erro de serviço em um problema RFC 7807.
// Erros 4xx levam a mensagem traduzida; os demais são registrados, enviados
// ao Sentry e respondidos com uma mensagem genérica.
func respondError(c *gin.Context, logger ports.Logger, err error) {
	messageID := domainerrors.MessageID(err)

	var response dto.ErrorResponse
	switch domainerrors.KindOf(err) {
	case domainerrors.KindValidation:
		response = dto.NewErrorResponseI18n(c, domainerrors.ProblemTypeValidation,
			"error.validation.title", messageID, http.StatusBadRequest)
	case domainerrors.KindDuplicate:
		response = dto.ConflictErrorResponseI18n(c, messageID)
	case domainerrors.KindNotFound:
		response = dto.NotFoundErrorResponseI18n(c, messageID)
	case domainerrors.KindForbidden:
		response = dto.ForbiddenErrorResponseI18n(c)
	case domainerrors.KindUnauthenticated:
		response = dto.UnauthorizedErrorResponseI18n(c, messageID)
	default:
		logger.Error("request failed",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"request_id", c.GetString(dto.RequestIDContextKey),
			"error", err,
		)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}

		detail := "error.internal.detail"
		if errors.Is(err, domainerrors.ErrRegistrationIncomplete) {
			detail = domainerrors.ErrRegistrationIncomplete.Error()
		}
		response = dto.InternalErrorResponseI18n(c, detail)
	}

	dto.AbortWithProblem(c, response)
}

// bindJSON decodifica e valida o corpo. Em caso de erro já respondeu 400.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields := dto.TranslateValidationErrors(c, err); fields != nil {
			dto.AbortWithProblem(c, dto.ValidationErrorResponseI18n(c, fields))
		} else {
			dto.AbortWithProblem(c, dto.BadRequestErrorResponseI18n(c))
		}
		return false
	}
	return true
}

// statusFor retorna 201 para criação e 200 para atualização
func statusFor(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
