package usecase

import (
	"context"
	"fmt"

	"github.com/plastinin/pdfcheck-web/internal/domain"
	"go.uber.org/zap"
)

// CheckUseCase отправляет файлы в сервис проверки и ведёт историю попыток
type CheckUseCase struct {
	checker   ReportChecker
	inspector PDFInspector
	history   SubmissionRepository
	logger    *zap.Logger
}

// NewCheckUseCase создаёт новый экземпляр CheckUseCase.
// inspector и history могут быть nil.
func NewCheckUseCase(
	checker ReportChecker,
	inspector PDFInspector,
	history SubmissionRepository,
	logger *zap.Logger,
) *CheckUseCase {
	return &CheckUseCase{
		checker:   checker,
		inspector: inspector,
		history:   history,
		logger:    logger,
	}
}

// PrepareFile собирает выбранный файл и считает страницы.
// Файл, который не открывается как PDF, всё равно принимается: решение за сервисом.
func (uc *CheckUseCase) PrepareFile(input SelectFileInput) (*domain.SelectedFile, error) {
	file, err := domain.NewSelectedFile(domain.SanitizeFileName(input.FileName), input.ContentType, input.Data)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if uc.inspector != nil {
		pages, err := uc.inspector.CountPages(file.Data)
		if err != nil {
			uc.logger.Debug("PDF preflight failed",
				zap.String("file_name", file.Name),
				zap.Error(err),
			)
		} else {
			file.Pages = pages
		}
	}

	return file, nil
}

// Upload отправляет файл в сервис проверки
func (uc *CheckUseCase) Upload(ctx context.Context, file *domain.SelectedFile) (*domain.CheckResult, error) {
	if file == nil {
		return nil, domain.ErrNoFileSelected
	}

	submission := uc.startSubmission(ctx, file)

	result, err := uc.checker.Upload(ctx, file)
	if err != nil {
		uc.logger.Error("Report check failed",
			zap.String("file_name", file.Name),
			zap.String("error_kind", domain.ClassifyError(err).String()),
			zap.Error(err),
		)
		uc.failSubmission(ctx, submission, err)
		return nil, err
	}

	uc.completeSubmission(ctx, submission, result)

	uc.logger.Info("Report generated",
		zap.String("file_name", file.Name),
		zap.String("report", result.Report.String()),
		zap.String("contrast_report", result.ContrastReport.String()),
	)

	return result, nil
}

// DownloadURL строит ссылку на скачивание отчёта
func (uc *CheckUseCase) DownloadURL(report domain.ReportReference) string {
	return uc.checker.DownloadURL(report)
}

// startSubmission создаёт запись истории. Ошибки истории не прерывают загрузку.
func (uc *CheckUseCase) startSubmission(ctx context.Context, file *domain.SelectedFile) *domain.Submission {
	if uc.history == nil {
		return nil
	}

	submission, err := domain.NewSubmission(file)
	if err != nil {
		return nil
	}
	if err := submission.MarkProcessing(); err != nil {
		return nil
	}

	if err := uc.history.Create(ctx, submission); err != nil {
		uc.logger.Warn("Failed to save submission",
			zap.String("submission_id", submission.ID.String()),
			zap.Error(err),
		)
		return nil
	}

	return submission
}

func (uc *CheckUseCase) completeSubmission(ctx context.Context, submission *domain.Submission, result *domain.CheckResult) {
	if submission == nil {
		return
	}
	if err := submission.MarkCompleted(result.Report, result.ContrastReport); err != nil {
		uc.logger.Error("Failed to mark submission as completed",
			zap.String("submission_id", submission.ID.String()),
			zap.Error(err),
		)
		return
	}
	uc.updateSubmission(ctx, submission)
}

func (uc *CheckUseCase) failSubmission(ctx context.Context, submission *domain.Submission, cause error) {
	if submission == nil {
		return
	}
	if err := submission.MarkFailed(cause); err != nil {
		uc.logger.Error("Failed to mark submission as failed",
			zap.String("submission_id", submission.ID.String()),
			zap.Error(err),
		)
		return
	}
	uc.updateSubmission(ctx, submission)
}

// updateSubmission сохраняет итог даже если контекст загрузки уже отменён
func (uc *CheckUseCase) updateSubmission(ctx context.Context, submission *domain.Submission) {
	if err := uc.history.Update(context.WithoutCancel(ctx), submission); err != nil {
		uc.logger.Warn("Failed to update submission",
			zap.String("submission_id", submission.ID.String()),
			zap.String("status", submission.Status.String()),
			zap.Error(err),
		)
	}
}
