package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/patchworkgame-go/internal/api/apierr"
	"github.com/mcoot/patchworkgame-go/internal/middleware"
)

// Recovery turns handler panics into INTERNAL_ERROR JSON responses
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}

// Logging logs each API request
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// NotFound answers unrouted paths in the API error format
func NotFound(logger *slog.Logger) http.Handler {
	return middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewRouteNotFoundError())
	}))
}

// MethodNotAllowed answers routed paths hit with an unsupported method
func MethodNotAllowed(logger *slog.Logger) http.Handler {
	return middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewMethodNotAllowedError())
	}))
}
