package middleware

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"rolodex/config"
	domainerrors "rolodex/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerMinute = 120
	defaultCleanupInterval   = 5 * time.Minute

	// Entries idle longer than this are dropped by the cleanup loop.
	limiterIdleTTL = 10 * time.Minute
)

// clientLimiter pairs a token bucket with its last use, so idle clients can
// be evicted.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimitMiddleware throttles requests per client address with a token
// bucket. Buckets are created lazily and evicted after an idle period by a
// background loop.
type RateLimitMiddleware struct {
	enabled  bool
	perMin   int
	burst    int
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	limiters map[string]*clientLimiter
	stopCh   chan struct{}
	stopOnce sync.Once
}

// RateLimitParams holds dependencies for RateLimitMiddleware, injected by Fx.
type RateLimitParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewRateLimitMiddleware builds the limiter from config and starts its
// cleanup loop. The loop is stopped on application shutdown.
func NewRateLimitMiddleware(params RateLimitParams) *RateLimitMiddleware {
	enabled := false
	perMin := defaultRequestsPerMinute
	burst := 0
	interval := defaultCleanupInterval

	if rlCfg := params.Config.RateLimit; rlCfg != nil {
		enabled = rlCfg.Enabled
		if rlCfg.RequestsPerMinute > 0 {
			perMin = rlCfg.RequestsPerMinute
		}
		burst = rlCfg.Burst
		if rlCfg.CleanupInterval > 0 {
			interval = rlCfg.CleanupInterval
		}
	}
	if burst <= 0 {
		burst = perMin
	}

	m := &RateLimitMiddleware{
		enabled:  enabled,
		perMin:   perMin,
		burst:    burst,
		interval: interval,
		logger:   params.Logger,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}

	if m.enabled {
		go m.cleanupLoop()

		params.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				m.Stop()

				return nil
			},
		})
	}

	return m
}

// Stop terminates the background cleanup loop.
func (m *RateLimitMiddleware) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
}

// Limit is the echo middleware. Requests over the budget get a 429 with a
// Retry-After hint.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.enabled {
			return next(c)
		}

		limiter := m.getOrCreateLimiter(c.RealIP())

		if !limiter.Allow() {
			retryAfter := int(math.Ceil(60.0 / float64(m.perMin)))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(retryAfter))

			m.logger.Warn("Rate limit exceeded",
				slog.String("clientIP", c.RealIP()),
				slog.String("path", c.Request().URL.Path),
			)

			return domainerrors.ErrTooManyRequests
		}

		return next(c)
	}
}

// LimiterCount reports how many client buckets are currently tracked.
func (m *RateLimitMiddleware) LimiterCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.limiters)
}

func (m *RateLimitMiddleware) getOrCreateLimiter(clientIP string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cl, exists := m.limiters[clientIP]; exists {
		cl.lastAccess = time.Now()

		return cl.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(float64(m.perMin)/60.0), m.burst)
	m.limiters[clientIP] = &clientLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

func (m *RateLimitMiddleware) cleanupLoop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.stopCh:
			return
		}
	}
}

func (m *RateLimitMiddleware) cleanup() {
	cutoff := time.Now().Add(-limiterIdleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	for clientIP, cl := range m.limiters {
		if cl.lastAccess.Before(cutoff) {
			delete(m.limiters, clientIP)
		}
	}
}
