package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultMaxBodyBytes bounds the size of a pushed notification.
	DefaultMaxBodyBytes int64 = 1 << 20

	HeaderRequestID = "X-Request-ID"
)

// Handler is an http.Handler that receives pushed notifications and routes
// them through a Router.
type Handler struct {
	router       *Router
	logger       zerolog.Logger
	maxBodyBytes int64
}

type HandlerOption func(*Handler)

// WithLogger logs every delivery to logger. The default discards.
func WithLogger(logger zerolog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes. Values <= 0 are ignored.
func WithMaxBodyBytes(limit int64) HandlerOption {
	return func(h *Handler) {
		if limit > 0 {
			h.maxBodyBytes = limit
		}
	}
}

func NewHandler(router *Router, opts ...HandlerOption) *Handler {
	if router == nil {
		router = NewRouter()
	}
	h := &Handler{
		router:       router,
		logger:       zerolog.Nop(),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(HeaderRequestID, requestID)
	logger := h.logger.With().Str("request_id", requestID).Logger()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn().Int64("limit", tooLarge.Limit).Msg("webhook body too large")
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return
		}
		logger.Warn().Err(err).Msg("webhook body read failed")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot read request body"})
		return
	}
	if len(payload) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty request body"})
		return
	}

	notification, err := Decode(payload)
	if err != nil || notification == nil {
		logger.Warn().Err(err).Msg("webhook payload rejected")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid notification payload"})
		return
	}

	tag, _ := notification.Body.TypeWebhook()
	event := logger.With().Int64("receipt_id", notification.ReceiptID).Str("type_webhook", tag.String()).Logger()

	startedAt := time.Now()
	if err := h.router.Dispatch(r.Context(), notification); err != nil {
		event.Error().Err(err).Dur("elapsed", time.Since(startedAt)).Msg("webhook callback failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	event.Debug().Bool("routed", h.router.Registered(tag)).Dur("elapsed", time.Since(startedAt)).Msg("webhook delivered")
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
