package widget

import (
	"fmt"
	"io"

	"github.com/plastinin/pdfcheck-web/internal/domain"
)

// PageTemplate имя шаблона страницы виджета
const PageTemplate = "widget.html"

// Renderer исполняет именованный шаблон, *template.Template подходит
type Renderer interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

// View снимок состояния виджета
type View struct {
	FileName string `json:"file_name,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	Pages    int    `json:"pages,omitempty"`
	NotPDF   bool   `json:"not_pdf,omitempty"`

	Status    Status `json:"status"`
	Uploading bool   `json:"uploading"`

	Report              domain.ReportReference `json:"report,omitempty"`
	DownloadURL         string                 `json:"download_url,omitempty"`
	ContrastReport      domain.ReportReference `json:"contrast_report,omitempty"`
	ContrastDownloadURL string                 `json:"contrast_download_url,omitempty"`

	ErrorKind    domain.ErrorKind `json:"error_kind,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
	ErrorDetail  string           `json:"error_detail,omitempty"`
	Retryable    bool             `json:"retryable,omitempty"`
}

// HasReport сообщает, нужно ли показывать ссылку на скачивание
func (v View) HasReport() bool {
	return !v.Report.IsZero()
}

// HasFile сообщает, выбран ли файл
func (v View) HasFile() bool {
	return v.FileName != ""
}

// Render рисует страницу виджета: поле выбора файла и кнопка есть всегда,
// ссылка на отчёт только после успешной загрузки
func (w *Widget) Render(out io.Writer) error {
	if w.renderer == nil {
		return fmt.Errorf("widget has no renderer")
	}
	if err := w.renderer.ExecuteTemplate(out, PageTemplate, w.State()); err != nil {
		return fmt.Errorf("failed to render widget: %w", err)
	}
	return nil
}
