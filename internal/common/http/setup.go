package http

import (
	"net/http"

	"github.com/AlibekovAA/app-registry/internal/common/constants"
	"github.com/AlibekovAA/app-registry/internal/common/httpmetrics"
	"github.com/AlibekovAA/app-registry/internal/common/logger"
)

// BuildBaseHandler wraps handler with the shared middleware chain. limiter
// may be nil.
func BuildBaseHandler(log *logger.Logger, limiter *StrictRateLimiter, handler http.Handler) http.Handler {
	collector := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	h := collector.Wrap(handler)
	if limiter != nil {
		h = limiter.Middleware(h)
	}

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(h))))
}
