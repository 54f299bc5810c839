package dto

import (
	"time"

	"github.com/plastinin/pdfcheck-web/internal/domain"
)

// SubmissionResponse запись истории
type SubmissionResponse struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	FileName       string     `json:"file_name"`
	FileSize       int64      `json:"file_size"`
	Report         string     `json:"report,omitempty"`
	DownloadURL    string     `json:"download_url,omitempty"`
	ContrastReport string     `json:"contrast_report,omitempty"`
	ErrorKind      string     `json:"error_kind,omitempty"`
	Error          string     `json:"error,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// SubmissionFromDomain конвертирует доменную модель в DTO
func SubmissionFromDomain(s *domain.Submission, downloadURL func(domain.ReportReference) string) *SubmissionResponse {
	resp := &SubmissionResponse{
		ID:             s.ID.String(),
		Status:         s.Status.String(),
		FileName:       s.FileName,
		FileSize:       s.FileSize,
		Report:         s.Report.String(),
		ContrastReport: s.ContrastReport.String(),
		ErrorKind:      s.ErrorKind.String(),
		Error:          s.Error,
		CreatedAt:      s.CreatedAt,
		CompletedAt:    s.CompletedAt,
	}
	if !s.Report.IsZero() && downloadURL != nil {
		resp.DownloadURL = downloadURL(s.Report)
	}
	return resp
}

// SubmissionListResponse страница истории
type SubmissionListResponse struct {
	Submissions []*SubmissionResponse `json:"submissions"`
	Total       int                   `json:"total"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	TotalPages  int                   `json:"total_pages"`
	Status      string                `json:"status,omitempty"`
}

// SubmissionListFromDomain конвертирует результат списка в DTO
func SubmissionListFromDomain(result *domain.SubmissionListResult, filter domain.SubmissionFilter, downloadURL func(domain.ReportReference) string) *SubmissionListResponse {
	submissions := make([]*SubmissionResponse, len(result.Submissions))
	for i, s := range result.Submissions {
		submissions[i] = SubmissionFromDomain(s, downloadURL)
	}

	resp := &SubmissionListResponse{
		Submissions: submissions,
		Total:       result.Total,
		Page:        result.Pagination.Page,
		PageSize:    result.Pagination.PageSize,
		TotalPages:  result.TotalPages(),
	}
	if filter.Status != nil {
		resp.Status = filter.Status.String()
	}
	return resp
}
