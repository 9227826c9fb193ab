package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewRouter returns a chi router with the standard middleware stack applied.
func NewRouter(log *zap.Logger, maxBodyBytes int64) chi.Router {
	r := chi.NewRouter()
	r.Use(Recovery(log))
	r.Use(RequestID(log))
	r.Use(AccessLog(log))
	if maxBodyBytes > 0 {
		r.Use(BodyLimit(maxBodyBytes))
	}
	return r
}

// New builds the HTTP server. writeTimeout must cover the slowest handler,
// which is two inference calls plus an insert.
func New(addr string, h http.Handler, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
}
