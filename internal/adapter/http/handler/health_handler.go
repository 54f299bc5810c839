package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/plastinin/pdfcheck-web/internal/adapter/http/dto"
	"go.uber.org/zap"
)

const healthCheckTimeout = 3 * time.Second

type pinger interface {
	CheckHealth(ctx context.Context) error
}

// HealthHandler обработчик health check запросов
type HealthHandler struct {
	responder
	backend        pinger
	historyEnabled bool
}

// NewHealthHandler создаёт новый HealthHandler. backend может быть nil.
func NewHealthHandler(backend pinger, historyEnabled bool, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		responder:      responder{logger: logger},
		backend:        backend,
		historyEnabled: historyEnabled,
	}
}

// Check проверяет состояние сервиса
// GET /health
// GET /health?deep=1 дополнительно проверяет сервис отчётов
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := dto.HealthResponse{Status: "ok", History: "disabled"}
	if h.historyEnabled {
		resp.History = "enabled"
	}

	if r.URL.Query().Get("deep") == "" || h.backend == nil {
		h.respondJSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp.Backend = "ok"
	if err := h.backend.CheckHealth(ctx); err != nil {
		h.logger.Warn("Report service health check failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Backend = "unavailable"
		h.respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}
