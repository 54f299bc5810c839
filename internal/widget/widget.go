package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/plastinin/pdfcheck-web/internal/domain"
	"go.uber.org/zap"
)

// ErrSubmitInFlight возвращается, пока предыдущая загрузка не завершилась
var ErrSubmitInFlight = errors.New("submission already in progress")

// Status состояние отправки
type Status string

const (
	StatusIdle      Status = "idle"
	StatusUploading Status = "uploading"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
)

// Uploader отправляет файл в сервис проверки
type Uploader interface {
	Upload(ctx context.Context, file *domain.SelectedFile) (*domain.CheckResult, error)
}

// LinkBuilder строит ссылку на скачивание отчёта
type LinkBuilder interface {
	DownloadURL(report domain.ReportReference) string
}

// Deps зависимости виджета
type Deps struct {
	Uploader Uploader
	Links    LinkBuilder
	Renderer Renderer
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Widget состояние страницы загрузки одного пользователя.
// Все изменения состояния происходят под mu, сетевой вызов выполняется без блокировки.
type Widget struct {
	mu sync.Mutex

	uploader Uploader
	links    LinkBuilder
	renderer Renderer
	timeout  time.Duration
	logger   *zap.Logger

	file   *domain.SelectedFile
	status Status
	result *domain.CheckResult
	err    error
}

// New создаёт виджет в начальном состоянии
func New(deps Deps) *Widget {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Widget{
		uploader: deps.Uploader,
		links:    deps.Links,
		renderer: deps.Renderer,
		timeout:  deps.Timeout,
		logger:   logger,
		status:   StatusIdle,
	}
}

// SelectFile заменяет выбранный файл и сбрасывает прошлый отчёт и ошибку.
// nil оставляет состояние без изменений. Во время загрузки выбор игнорируется.
func (w *Widget) SelectFile(file *domain.SelectedFile) {
	if file == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.status == StatusUploading {
		w.logger.Debug("File selection ignored while uploading",
			zap.String("file_name", file.Name),
		)
		return
	}

	w.file = file
	w.result = nil
	w.err = nil
	w.status = StatusIdle
}

// Submit отправляет выбранный файл и ждёт результата.
// Без выбранного файла сетевой запрос не выполняется.
// Повторный вызов во время загрузки возвращает ErrSubmitInFlight.
func (w *Widget) Submit(ctx context.Context) error {
	done, err := w.SubmitAsync(ctx)
	if err != nil {
		return err
	}
	return <-done
}

// SubmitAsync проверяет предусловия синхронно и запускает загрузку в фоне.
// Канал получает результат загрузки ровно один раз.
func (w *Widget) SubmitAsync(ctx context.Context) (<-chan error, error) {
	file, err := w.begin()
	if err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		done <- w.run(ctx, file)
	}()
	return done, nil
}

func (w *Widget) run(ctx context.Context, file *domain.SelectedFile) error {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := w.upload(ctx, file)
	w.finish(result, err)

	if err != nil {
		w.logger.Warn("Submission failed",
			zap.String("file_name", file.Name),
			zap.String("error_kind", domain.ClassifyError(err).String()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return err
	}

	w.logger.Info("Submission completed",
		zap.String("file_name", file.Name),
		zap.String("report", result.Report.String()),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// begin проверяет предусловия и переводит виджет в состояние загрузки
func (w *Widget) begin() (*domain.SelectedFile, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.status == StatusUploading {
		return nil, ErrSubmitInFlight
	}
	if w.file == nil {
		w.status = StatusFailed
		w.result = nil
		w.err = domain.ErrNoFileSelected
		return nil, domain.ErrNoFileSelected
	}

	w.status = StatusUploading
	w.result = nil
	w.err = nil
	return w.file, nil
}

// upload вызывает Uploader и превращает панику и пустой ответ в ошибку обработки
func (w *Widget) upload(ctx context.Context, file *domain.SelectedFile) (result *domain.CheckResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: uploader panicked: %v", domain.ErrProcessingFailed, r)
		}
	}()

	result, err = w.uploader.Upload(ctx, file)
	if err == nil && (result == nil || result.Report.IsZero()) {
		return nil, fmt.Errorf("%w: response has no report", domain.ErrProcessingFailed)
	}
	return result, err
}

// finish фиксирует итог загрузки, после успеха файл больше не хранится
func (w *Widget) finish(result *domain.CheckResult, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.status = StatusFailed
		w.err = err
		w.result = nil
		return
	}

	w.status = StatusDone
	w.result = result
	w.err = nil
	w.file = nil
}

// State возвращает снимок состояния для отображения
func (w *Widget) State() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{
		Status:    w.status,
		Uploading: w.status == StatusUploading,
	}

	if w.file != nil {
		v.FileName = w.file.Name
		v.FileSize = w.file.Size()
		v.Pages = w.file.Pages
		v.NotPDF = !w.file.LooksLikePDF()
	}

	if w.result != nil {
		v.Report = w.result.Report
		v.DownloadURL = w.links.DownloadURL(w.result.Report)
		if !w.result.ContrastReport.IsZero() {
			v.ContrastReport = w.result.ContrastReport
			v.ContrastDownloadURL = w.links.DownloadURL(w.result.ContrastReport)
		}
	}

	if w.err != nil {
		v.ErrorKind = domain.ClassifyError(w.err)
		v.ErrorMessage = errorMessage(w.err)
		v.Retryable = v.ErrorKind.Retryable()
		if v.ErrorKind == domain.ErrorKindProcessing {
			v.ErrorDetail = w.err.Error()
		}
	}

	return v
}

func errorMessage(err error) string {
	switch domain.ClassifyError(err) {
	case domain.ErrorKindValidation:
		return "Choose a PDF file before submitting."
	case domain.ErrorKindTransport:
		if errors.Is(err, domain.ErrBackendTimeout) || errors.Is(err, context.DeadlineExceeded) {
			return "The report service took too long to respond. Please try again."
		}
		return "The report service could not be reached. Please try again."
	case domain.ErrorKindProcessing:
		return "The report service could not process this file."
	}
	return ""
}
