package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/handlers/dto"
	"github.com/rafabene/votex-backend/internal/infrastructure/persistence/postgres"
)

const pingTimeout = 2 * time.Second

// HealthHandler expõe verificações de saúde
type HealthHandler struct {
	db     *gorm.DB
	env    string
	logger ports.Logger
}

func NewHealthHandler(db *gorm.DB, env string, logger ports.Logger) *HealthHandler {
	return &HealthHandler{db: db, env: env, logger: logger}
}

// Health informa o estado da API e do banco
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	db := "up"
	if err := h.ping(c.Request.Context()); err != nil {
		h.logger.Warn("health check database ping failed", "error", err)
		db = "down"
	}

	status := "ok"
	if db != "up" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"env":    h.env,
		"db":     db,
	})
}

// Root responde em texto se o banco está acessível
func (h *HealthHandler) Root(c *gin.Context) {
	if err := h.ping(c.Request.Context()); err != nil {
		h.logger.Error("database ping failed", "error", err)
		c.String(http.StatusInternalServerError, dto.T(c, "message.database_down"))
		return
	}
	c.String(http.StatusOK, dto.T(c, "message.database_ok"))
}

func (h *HealthHandler) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return postgres.Ping(ctx, h.db)
}
