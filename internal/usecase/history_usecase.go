package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/plastinin/pdfcheck-web/internal/domain"
)

// HistoryUseCase чтение истории загрузок
type HistoryUseCase struct {
	repo    SubmissionRepository
	checker ReportChecker
}

// NewHistoryUseCase создаёт новый экземпляр HistoryUseCase. repo может быть nil.
func NewHistoryUseCase(repo SubmissionRepository, checker ReportChecker) *HistoryUseCase {
	return &HistoryUseCase{
		repo:    repo,
		checker: checker,
	}
}

// Enabled сообщает, настроена ли история
func (uc *HistoryUseCase) Enabled() bool {
	return uc.repo != nil
}

// GetByID возвращает запись по ID
func (uc *HistoryUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	if uc.repo == nil {
		return nil, domain.ErrHistoryDisabled
	}
	return uc.repo.GetByID(ctx, id)
}

// List возвращает страницу истории
func (uc *HistoryUseCase) List(ctx context.Context, filter domain.SubmissionFilter, pagination domain.Pagination) (*domain.SubmissionListResult, error) {
	if uc.repo == nil {
		return nil, domain.ErrHistoryDisabled
	}
	return uc.repo.List(ctx, filter, pagination)
}

// DownloadURL строит ссылку на отчёт из истории
func (uc *HistoryUseCase) DownloadURL(report domain.ReportReference) string {
	if report.IsZero() {
		return ""
	}
	return uc.checker.DownloadURL(report)
}
