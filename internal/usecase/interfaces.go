package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/plastinin/pdfcheck-web/internal/domain"
)

// SubmissionRepository интерфейс для работы с историей загрузок
type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	Update(ctx context.Context, submission *domain.Submission) error
	List(ctx context.Context, filter domain.SubmissionFilter, pagination domain.Pagination) (*domain.SubmissionListResult, error)
}

// ReportChecker интерфейс внешнего сервиса проверки PDF
type ReportChecker interface {
	Upload(ctx context.Context, file *domain.SelectedFile) (*domain.CheckResult, error)
	DownloadURL(report domain.ReportReference) string
}

// PDFInspector интерфейс предварительной проверки PDF
type PDFInspector interface {
	CountPages(data []byte) (int, error)
}
