package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"nutrimacro/internal/services"
)

// TriggerHandler exposes the ingestion flow over HTTP
type TriggerHandler struct {
	processor services.Processor
	logger    *slog.Logger
}

// NewTriggerHandler creates a new trigger handler
func NewTriggerHandler(processor services.Processor, logger *slog.Logger) *TriggerHandler {
	return &TriggerHandler{
		processor: processor,
		logger:    logger.With(slog.String("handler", "http_trigger")),
	}
}

// Routes mounts the trigger on GET and POST /http_trigger
func (h *TriggerHandler) Routes(r chi.Router) {
	r.Get("/http_trigger", h.Trigger)
	r.Post("/http_trigger", h.Trigger)
}

// Trigger handles GET|POST /api/http_trigger. The request carries no input.
func (h *TriggerHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "HTTP trigger function processed a request.",
		slog.String("method", r.Method))

	result, err := h.processor.Process(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to process nutritional data.",
			slog.String("error", err.Error()))
		render.Status(r, http.StatusInternalServerError)
		render.PlainText(w, r, "Processing failed: "+err.Error())
		return
	}

	render.PlainText(w, r, result)
}
