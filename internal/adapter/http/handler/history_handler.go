package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/plastinin/pdfcheck-web/internal/adapter/http/dto"
	"github.com/plastinin/pdfcheck-web/internal/domain"
	"github.com/plastinin/pdfcheck-web/internal/widget"
	"go.uber.org/zap"
)

const historyTemplate = "history.html"

type historyReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	List(ctx context.Context, filter domain.SubmissionFilter, pagination domain.Pagination) (*domain.SubmissionListResult, error)
	DownloadURL(report domain.ReportReference) string
}

// HistoryHandler обработчик истории загрузок
type HistoryHandler struct {
	responder
	history  historyReader
	renderer widget.Renderer
}

// NewHistoryHandler создаёт новый HistoryHandler
func NewHistoryHandler(history historyReader, renderer widget.Renderer, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		responder: responder{logger: logger},
		history:   history,
		renderer:  renderer,
	}
}

// Page рисует историю загрузок
// GET /history?page=1&page_size=20&status=completed
func (h *HistoryHandler) Page(w http.ResponseWriter, r *http.Request) {
	resp, err := h.list(r)
	if err != nil {
		if errors.Is(err, domain.ErrHistoryDisabled) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("Failed to list submissions", zap.Error(err))
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.ExecuteTemplate(&buf, historyTemplate, resp); err != nil {
		h.logger.Error("Failed to render history", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// List возвращает историю загрузок
// GET /api/v1/submissions?page=1&page_size=20&status=failed
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.list(r)
	if err != nil {
		if errors.Is(err, domain.ErrHistoryDisabled) {
			h.respondError(w, http.StatusNotFound, "history_disabled", "Submission history is disabled")
			return
		}
		h.logger.Error("Failed to list submissions", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", "Failed to list submissions")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GetByID возвращает запись истории по ID
// GET /api/v1/submissions/{id}
func (h *HistoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_id", "Invalid submission ID format")
		return
	}

	submission, err := h.history.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHistoryDisabled):
			h.respondError(w, http.StatusNotFound, "history_disabled", "Submission history is disabled")
		case errors.Is(err, domain.ErrSubmissionNotFound):
			h.respondError(w, http.StatusNotFound, "not_found", "Submission not found")
		default:
			h.logger.Error("Failed to get submission", zap.String("submission_id", idStr), zap.Error(err))
			h.respondError(w, http.StatusInternalServerError, "internal_error", "Failed to get submission")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, dto.SubmissionFromDomain(submission, h.history.DownloadURL))
}

func (h *HistoryHandler) list(r *http.Request) (*dto.SubmissionListResponse, error) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	pagination := domain.NewPagination(page, pageSize)

	filter := domain.SubmissionFilter{}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := domain.SubmissionStatus(statusStr)
		if status.IsValid() {
			filter.Status = &status
		}
	}

	result, err := h.history.List(r.Context(), filter, pagination)
	if err != nil {
		return nil, err
	}

	return dto.SubmissionListFromDomain(result, filter, h.history.DownloadURL), nil
}
