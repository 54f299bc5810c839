package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/plastinin/pdfcheck-web/internal/adapter/http/dto"
	"github.com/plastinin/pdfcheck-web/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPinger struct {
	err error
}

func (s stubPinger) CheckHealth(ctx context.Context) error {
	return s.err
}

func TestHealthHandler_Check(t *testing.T) {
	tests := []struct {
		name       string
		backend    pinger
		history    bool
		query      string
		wantStatus int
		wantBody   dto.HealthResponse
	}{
		{
			name:       "shallow",
			backend:    stubPinger{err: domain.ErrBackendUnavailable},
			wantStatus: http.StatusOK,
			wantBody:   dto.HealthResponse{Status: "ok", History: "disabled"},
		},
		{
			name:       "deep ok",
			backend:    stubPinger{},
			history:    true,
			query:      "?deep=1",
			wantStatus: http.StatusOK,
			wantBody:   dto.HealthResponse{Status: "ok", Backend: "ok", History: "enabled"},
		},
		{
			name:       "deep backend down",
			backend:    stubPinger{err: domain.ErrBackendUnavailable},
			query:      "?deep=1",
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   dto.HealthResponse{Status: "degraded", Backend: "unavailable", History: "disabled"},
		},
		{
			name:       "deep without backend",
			query:      "?deep=1",
			wantStatus: http.StatusOK,
			wantBody:   dto.HealthResponse{Status: "ok", History: "disabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.backend, tt.history, zap.NewNop())

			rec := httptest.NewRecorder()
			h.Check(rec, httptest.NewRequest(http.MethodGet, "/health"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got dto.HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}
