package checker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/plastinin/pdfcheck-web/internal/config"
	"github.com/plastinin/pdfcheck-web/internal/domain"
	"go.uber.org/zap"
)

const (
	// Имя поля multipart формы, которое ждёт сервис
	uploadFieldName = "pdf"

	uploadPath   = "/upload"
	downloadPath = "/download/"

	// Сколько байт тела ответа с ошибкой попадает в текст ошибки
	maxErrorBodySize = 512
)

// Client клиент сервиса проверки доступности PDF
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient создаёт новый экземпляр Client
func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger.Named("checker"),
	}
}

// uploadResponse тело ответа POST /upload
type uploadResponse struct {
	Report         *string `json:"report"`
	ContrastReport string  `json:"contrast_report,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// Upload отправляет файл на проверку и возвращает ссылку на отчёт.
// Сетевые ошибки оборачивают domain.ErrBackendUnavailable,
// ошибочный статус или тело ответа оборачивают domain.ErrProcessingFailed.
func (c *Client) Upload(ctx context.Context, file *domain.SelectedFile) (*domain.CheckResult, error) {
	if file == nil {
		return nil, domain.ErrNoFileSelected
	}

	body, contentType, err := encodeMultipart(file)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}

	url := c.baseURL + uploadPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Uploading file",
		zap.String("url", url),
		zap.String("file_name", file.Name),
		zap.Int64("file_size", file.Size()),
	)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w: %w", domain.ErrBackendUnavailable, domain.ErrBackendTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Upload request completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("status_code", resp.StatusCode),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrBackendUnavailable, err)
	}

	var parsed uploadResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && parsed.Error != "" {
			return nil, fmt.Errorf("%w: status %d: %s", domain.ErrProcessingFailed, resp.StatusCode, parsed.Error)
		}
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrProcessingFailed, resp.StatusCode, truncate(raw))
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", domain.ErrProcessingFailed, decodeErr)
	}
	if parsed.Report == nil || *parsed.Report == "" {
		return nil, fmt.Errorf("%w: response has no report", domain.ErrProcessingFailed)
	}

	return &domain.CheckResult{
		Report:         domain.ReportReference(*parsed.Report),
		ContrastReport: domain.ReportReference(parsed.ContrastReport),
	}, nil
}

// DownloadURL строит ссылку на скачивание отчёта, ссылка подставляется как есть
func (c *Client) DownloadURL(report domain.ReportReference) string {
	return c.baseURL + downloadPath + report.String()
}

// CheckHealth проверяет, что сервис отвечает.
// У сервиса нет отдельного health endpoint, поэтому любой HTTP ответ считается успехом.
func (c *Client) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: health check returned status %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}
	return nil
}

// encodeMultipart упаковывает файл в поле "pdf"
func encodeMultipart(file *domain.SelectedFile) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
		uploadFieldName, domain.SanitizeFileName(file.Name)))
	contentType := file.ContentType
	if contentType == "" {
		contentType = domain.PDFContentType
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &buf, writer.FormDataContentType(), nil
}

func truncate(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > maxErrorBodySize {
		s = s[:maxErrorBodySize] + "..."
	}
	if s == "" {
		return "empty body"
	}
	return s
}

// isTimeout проверяет, что ошибка вызвана истечением таймаута
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
