package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportReference непрозрачный идентификатор отчёта, который вернул сервис
type ReportReference string

func (r ReportReference) String() string {
	return string(r)
}

// IsZero проверяет, что ссылка не установлена
func (r ReportReference) IsZero() bool {
	return r == ""
}

// CheckResult ссылки на отчёты, которые вернул сервис после загрузки
type CheckResult struct {
	Report         ReportReference
	ContrastReport ReportReference
}

// Submission запись истории об одной попытке загрузки
type Submission struct {
	ID             uuid.UUID        `json:"id"`
	Status         SubmissionStatus `json:"status"`
	FileName       string           `json:"file_name"`
	FileSize       int64            `json:"file_size"`
	Report         ReportReference  `json:"report,omitempty"`
	ContrastReport ReportReference  `json:"contrast_report,omitempty"`
	ErrorKind      ErrorKind        `json:"error_kind,omitempty"`
	Error          string           `json:"error,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
}

// NewSubmission создаёт запись для выбранного файла
func NewSubmission(file *SelectedFile) (*Submission, error) {
	if file == nil {
		return nil, ErrNoFileSelected
	}

	now := time.Now()

	return &Submission{
		ID:        uuid.New(),
		Status:    SubmissionStatusPending,
		FileName:  file.Name,
		FileSize:  file.Size(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// MarkProcessing переводит запись в статус "в обработке"
func (s *Submission) MarkProcessing() error {
	if s.Status != SubmissionStatusPending {
		return ErrInvalidStatus
	}
	s.Status = SubmissionStatusProcessing
	s.UpdatedAt = time.Now()
	return nil
}

// MarkCompleted сохраняет ссылки на отчёты
func (s *Submission) MarkCompleted(report, contrast ReportReference) error {
	if s.Status != SubmissionStatusProcessing {
		return ErrInvalidStatus
	}
	now := time.Now()
	s.Status = SubmissionStatusCompleted
	s.Report = report
	s.ContrastReport = contrast
	s.UpdatedAt = now
	s.CompletedAt = &now
	return nil
}

// MarkFailed сохраняет категорию и текст ошибки
func (s *Submission) MarkFailed(err error) error {
	if s.Status.IsFinal() {
		return ErrInvalidStatus
	}
	now := time.Now()
	s.Status = SubmissionStatusFailed
	s.ErrorKind = ClassifyError(err)
	if err != nil {
		s.Error = err.Error()
	}
	s.UpdatedAt = now
	s.CompletedAt = &now
	return nil
}
