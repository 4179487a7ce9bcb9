package http

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/AlibekovAA/app-registry/internal/common/constants"
	"github.com/AlibekovAA/app-registry/internal/common/httpmetrics"
	"github.com/AlibekovAA/app-registry/internal/observability/metrics"
)

type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
	cleanup  *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		cleanup:  time.NewTicker(constants.RateLimitCleanupInterval),
		done:     make(chan struct{}),
	}

	go rl.cleanupLimiters()

	return rl
}

func (rl *RateLimiter) cleanupLimiters() {
	for {
		select {
		case <-rl.done:
			return
		case <-rl.cleanup.C:
		}

		rl.mu.Lock()
		for key, limiter := range rl.limiters {
			// A full bucket means the client has been idle long enough to forget.
			if limiter.Tokens() >= float64(rl.burst) {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		rl.cleanup.Stop()
		close(rl.done)
	})
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		limiter, exists = rl.limiters[key]
		if !exists {
			limiter = rate.NewLimiter(rl.rate, rl.burst)
			rl.limiters[key] = limiter
		}
		rl.mu.Unlock()
	}

	return limiter
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

type RateLimitConfig struct {
	RequestsPerSecond      float64
	Burst                  int
	LoginRequestsPerSecond float64
	LoginBurst             int
}

// StrictRateLimiter applies a tighter per-client budget to credential checks.
type StrictRateLimiter struct {
	loginLimiter   *RateLimiter
	generalLimiter *RateLimiter
}

func NewStrictRateLimiter(cfg RateLimitConfig) *StrictRateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = constants.RateLimitGeneralRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = constants.RateLimitGeneralBurst
	}
	if cfg.LoginRequestsPerSecond <= 0 {
		cfg.LoginRequestsPerSecond = constants.RateLimitLoginRequestsPerSecond
	}
	if cfg.LoginBurst <= 0 {
		cfg.LoginBurst = constants.RateLimitLoginBurst
	}

	return &StrictRateLimiter{
		loginLimiter:   NewRateLimiter(cfg.LoginRequestsPerSecond, cfg.LoginBurst),
		generalLimiter: NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
}

func (srl *StrictRateLimiter) Stop() {
	srl.loginLimiter.Stop()
	srl.generalLimiter.Stop()
}

func (srl *StrictRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		limiter, limiterType := srl.generalLimiter, "general"
		if strings.HasSuffix(r.URL.Path, "/login") {
			limiter, limiterType = srl.loginLimiter, "login"
		}

		if !limiter.Allow(GetClientIP(r)) {
			metrics.RateLimitBlocked.WithLabelValues(httpmetrics.NormalizePath(r.URL.Path), limiterType).Inc()
			WriteError(w, http.StatusTooManyRequests, CodeRateLimitExceeded, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
