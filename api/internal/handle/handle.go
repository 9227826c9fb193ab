package handle

//go:generate mockgen -source=handle.go -destination=mocks/handle_mock.go -package=mocks ReadingService,Notifier

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"palmyst/api/internal/apperr"
	"palmyst/api/internal/logger"
	"palmyst/api/internal/models"
)

type ReadingService interface {
	Handle(ctx context.Context, sub models.Submission) (models.AnalyzeResult, error)
}

type Notifier interface {
	Notify(ctx context.Context, id models.ReadingID, email, readingText string) error
}

type Handle struct {
	readings ReadingService
	notifier Notifier
	log      *zap.Logger
	timeout  time.Duration
	health   func(context.Context) error
}

// New wires the handlers. timeout bounds all upstream work for one request.
func New(readings ReadingService, notifier Notifier, log *zap.Logger, timeout time.Duration) *Handle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handle{
		readings: readings,
		notifier: notifier,
		log:      log,
		timeout:  timeout,
	}
}

// WithHealthCheck sets the dependency check used by /healthz.
func (h *Handle) WithHealthCheck(fn func(context.Context) error) *Handle {
	h.health = fn
	return h
}

// Register mounts the API. Method checks happen inside the handlers so a wrong
// verb still gets a JSON body.
func (h *Handle) Register(r chi.Router) {
	r.HandleFunc("/api/analyze", h.Analyze)
	r.HandleFunc("/api/send-email", h.SendEmail)
	r.Get("/healthz", h.Healthz)
}

func (h *Handle) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if h.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.health(ctx); err != nil {
			h.logger(r).Warn("healthz: database unreachable", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db: not ok"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// requestContext applies the configured deadline. Callers may shorten it with
// X-Request-Timeout (seconds) or ?timeoutSec=, never extend it.
func (h *Handle) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	deadline := h.timeout
	ts := r.Header.Get("X-Request-Timeout")
	if ts == "" {
		ts = r.URL.Query().Get("timeoutSec")
	}
	if d, ok := overrideTimeout(ts, h.timeout); ok {
		deadline = d
	}
	if deadline <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), deadline)
}

// overrideTimeout parses a positive number of seconds and clamps it to ceiling.
// A ceiling <= 0 means no configured deadline; the override is then bounded
// only by the largest representable duration.
func overrideTimeout(ts string, ceiling time.Duration) (time.Duration, bool) {
	if ts == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(ts, 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	limit := ceiling
	if limit <= 0 {
		limit = time.Duration(math.MaxInt64)
	}
	if v > int64(limit/time.Second) {
		return limit, true
	}
	return time.Duration(v) * time.Second, true
}

func (h *Handle) logger(r *http.Request) *zap.Logger {
	return logger.FromContext(r.Context(), h.log)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

// writeError maps err to a status and a message that never carries internal detail.
func writeError(w http.ResponseWriter, err error, fallback string) {
	writeMessage(w, apperr.HTTPStatus(apperr.CodeOf(err)), apperr.PublicMessage(err, fallback))
}

func methodNotAllowed(w http.ResponseWriter) {
	w.Header().Set("Allow", http.MethodPost)
	writeMessage(w, http.StatusMethodNotAllowed, "Only POST requests are allowed")
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Wrap(err, apperr.CodeBadRequest, "Invalid request body.")
	}
	return nil
}
