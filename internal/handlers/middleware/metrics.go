package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/votex-backend/internal/infrastructure/metrics"
)

// Metrics registra contagem, duração e requisições em andamento.
// A rota usa o padrão registrado (ex.: /api/votes/:postId) para não explodir
// a cardinalidade dos labels.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		done := m.RequestStarted()
		c.Next()
		done(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}
