// Package v1handler implements the v1 HTTP handlers of the volume service.
// Handlers translate HTTP requests into Calculator calls and map semantic
// errors onto status codes.
package v1handler

import (
	"context"
	"errors"
	"net/http"

	"svgvolume/internal/config"
	"svgvolume/internal/volume"
	"svgvolume/pkg/logger"
	"svgvolume/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// DefaultLimit is the page size used when the client does not pass one.
const DefaultLimit = 20

// Deps holds the collaborators the handlers need.
type Deps struct {
	// Calculator runs the upload/calculate pipeline and the history queries.
	Calculator volume.Calculator
}

// Options configures request handling limits.
type Options struct {
	// MaxUploadBytes limits the size of an uploaded document.
	MaxUploadBytes int64
}

// NewOptions constructs handler Options from the application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
	}
}

type Handler struct {
	deps    Deps
	options Options
}

func New(deps Deps, options Options) *Handler {
	return &Handler{deps: deps, options: options}
}

// Mux returns the route table for the v1 API. Paths are relative to the /v1
// prefix stripped by the server.
func (h *Handler) Mux(sec *SecHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("PUT /document", h.UploadDocument)
	mux.HandleFunc("POST /calculations", h.CreateCalculation)
	mux.Handle("GET /calculations", sec.Require(http.HandlerFunc(h.ListCalculations)))
	mux.Handle("GET /calculations/{id}", sec.Require(http.HandlerFunc(h.GetCalculation)))
	mux.Handle("DELETE /calculations/{id}", sec.Require(http.HandlerFunc(h.DeleteCalculation)))

	return mux
}

// statusFromError maps semantic error kinds onto HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, serrors.ErrNoDocument):
		return http.StatusNotFound
	case errors.Is(err, serrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, serrors.ErrExtraction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, serrors.ErrInvalidDepth), errors.Is(err, serrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, serrors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders an error as a JSON body with the mapped status code.
// Internal details are logged but not leaked to the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFromError(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
		msg = "internal error"
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("error")
	e.Str(msg)
	e.ObjEnd()

	writeJSON(w, status, e.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
