package middleware

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/handlers/dto"
	"github.com/rafabene/votex-backend/internal/infrastructure/metrics"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limita requisições por usuário autenticado ou, sem login, por IP
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	metrics  *metrics.Metrics
	logger   ports.Logger
}

// NewRateLimiter cria um limitador. m pode ser nil.
func NewRateLimiter(requestsPerSecond float64, burst int, m *metrics.Metrics, logger ports.Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		metrics:  m,
		logger:   logger,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter
}

// Handler retorna o middleware. Deve rodar depois de Authenticate para
// limitar por usuário.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID := CurrentUserID(c); userID != "" {
			key = "user:" + userID
		}

		if !rl.getLimiter(key).Allow() {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimited()
			}
			rl.logger.Warn("rate limit exceeded",
				"key", key,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			c.Header("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			dto.AbortWithProblem(c, dto.TooManyRequestsErrorResponseI18n(c))
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) retryAfterSeconds() int {
	if rl.rate <= 0 {
		return 1
	}
	return int(math.Max(1, math.Ceil(1/float64(rl.rate))))
}

// Cleanup remove limitadores sem uso há mais de maxIdle
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
			removed++
		}
	}
	return removed
}

// StartCleanup roda Cleanup periodicamente até ctx ser cancelado
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := rl.Cleanup(maxIdle); n > 0 {
					rl.logger.Debug("rate limiters evicted", "count", n)
				}
			}
		}
	}()
}
