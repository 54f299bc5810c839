package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/plastinin/pdfcheck-web/internal/domain"
	"github.com/plastinin/pdfcheck-web/internal/usecase"
	"github.com/plastinin/pdfcheck-web/internal/widget"
	"go.uber.org/zap"
)

const (
	SessionCookieName = "pdfcheck_session"

	// Имя поля формы совпадает с полем, которое ждёт сервис отчётов
	fileFieldName = "pdf"

	// Сверх лимита файла допускаем место под остальные части формы
	formOverhead = 1 << 20
)

type sessionStore interface {
	Get(id string) (string, *widget.Widget)
}

type filePreparer interface {
	PrepareFile(input usecase.SelectFileInput) (*domain.SelectedFile, error)
}

// WidgetHandler обработчик страницы загрузки
type WidgetHandler struct {
	responder
	sessions      sessionStore
	files         filePreparer
	maxUploadSize int64
	cookieSecure  bool

	// baseCtx живёт дольше запроса, фоновые загрузки отменяются при остановке сервера
	baseCtx  context.Context
	inflight sync.WaitGroup
}

// NewWidgetHandler создаёт новый WidgetHandler
func NewWidgetHandler(
	baseCtx context.Context,
	sessions sessionStore,
	files filePreparer,
	maxUploadSize int64,
	cookieSecure bool,
	logger *zap.Logger,
) *WidgetHandler {
	return &WidgetHandler{
		responder:     responder{logger: logger},
		sessions:      sessions,
		files:         files,
		maxUploadSize: maxUploadSize,
		cookieSecure:  cookieSecure,
		baseCtx:       baseCtx,
	}
}

// Page рисует виджет текущей сессии
// GET /
func (h *WidgetHandler) Page(w http.ResponseWriter, r *http.Request) {
	wg := h.session(w, r)
	h.render(w, http.StatusOK, wg)
}

// State возвращает снимок состояния виджета
// GET /api/v1/state
func (h *WidgetHandler) State(w http.ResponseWriter, r *http.Request) {
	wg := h.session(w, r)
	h.respondJSON(w, http.StatusOK, wg.State())
}

// Select запоминает выбранный файл
// POST /select
// Content-Type: multipart/form-data
// - pdf: файл документа
func (h *WidgetHandler) Select(w http.ResponseWriter, r *http.Request) {
	wg := h.session(w, r)

	file, ok := h.readFile(w, r)
	if !ok {
		return
	}
	wg.SelectFile(file)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Submit отправляет файл в сервис отчётов. Если форма содержит файл, он сначала выбирается.
// Загрузка идёт в фоне, страница обновляется сама, пока загрузка не завершится.
// POST /submit
// Content-Type: multipart/form-data
// - pdf: файл документа (необязательно)
func (h *WidgetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	wg := h.session(w, r)

	file, ok := h.readFile(w, r)
	if !ok {
		return
	}
	wg.SelectFile(file)

	done, err := wg.SubmitAsync(h.baseCtx)
	switch {
	case errors.Is(err, widget.ErrSubmitInFlight):
		h.logger.Debug("Duplicate submission ignored")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.Is(err, domain.ErrNoFileSelected):
		h.render(w, http.StatusBadRequest, wg)
		return
	case err != nil:
		h.logger.Error("Failed to start submission", zap.Error(err))
		h.render(w, http.StatusInternalServerError, wg)
		return
	}

	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		<-done
	}()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Wait ждёт завершения фоновых загрузок
func (h *WidgetHandler) Wait() {
	h.inflight.Wait()
}

// readFile читает поле "pdf". Отсутствие файла не ошибка: возвращается nil.
// false означает, что ответ с ошибкой уже отправлен.
func (h *WidgetHandler) readFile(w http.ResponseWriter, r *http.Request) (*domain.SelectedFile, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+formOverhead)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		// Форма без файловой части равна форме без файла
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			h.logger.Debug("Form is not multipart, no file selected", zap.Error(err))
			return nil, true
		}

		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.logger.Warn("Upload too large", zap.Int64("limit", maxBytesErr.Limit))
			http.Error(w, "File is too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		h.logger.Warn("Failed to parse multipart form", zap.Error(err))
		http.Error(w, "Failed to parse form data", http.StatusBadRequest)
		return nil, false
	}
	defer r.MultipartForm.RemoveAll()

	part, header, err := r.FormFile(fileFieldName)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		h.logger.Warn("Failed to get file from form", zap.Error(err))
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return nil, false
	}
	defer part.Close()

	if header.Size > h.maxUploadSize {
		http.Error(w, "File is too large", http.StatusRequestEntityTooLarge)
		return nil, false
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, part); err != nil {
		h.logger.Warn("Failed to read uploaded file", zap.Error(err))
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return nil, false
	}
	if buf.Len() == 0 {
		return nil, true
	}

	file, err := h.files.PrepareFile(usecase.SelectFileInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        buf.Bytes(),
	})
	if err != nil {
		h.logger.Warn("Failed to prepare file", zap.Error(err))
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return nil, false
	}

	return file, true
}

// session находит виджет по cookie и продлевает cookie
func (h *WidgetHandler) session(w http.ResponseWriter, r *http.Request) *widget.Widget {
	var id string
	if c, err := r.Cookie(SessionCookieName); err == nil {
		id = c.Value
	}

	newID, wg := h.sessions.Get(id)
	if newID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    newID,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.cookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return wg
}

func (h *WidgetHandler) render(w http.ResponseWriter, status int, wg *widget.Widget) {
	var buf bytes.Buffer
	if err := wg.Render(&buf); err != nil {
		h.logger.Error("Failed to render widget", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
