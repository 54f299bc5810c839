package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/plastinin/pdfcheck-web/internal/domain"
)

const submissionColumns = `id, status, file_name, file_size, report, contrast_report, error_kind, error, created_at, updated_at, completed_at`

// SubmissionRepository история загрузок в PostgreSQL
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository создаёт новый экземпляр SubmissionRepository
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Create сохраняет новую запись
func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) error {
	query := `
		INSERT INTO submissions (id, status, file_name, file_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.Status,
		s.FileName,
		s.FileSize,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}

// GetByID возвращает запись по ID
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	s, err := scanSubmission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return s, nil
}

// Update сохраняет итог попытки
func (r *SubmissionRepository) Update(ctx context.Context, s *domain.Submission) error {
	query := `
		UPDATE submissions
		SET status = $2, report = $3, contrast_report = $4, error_kind = $5, error = $6, updated_at = $7, completed_at = $8
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		s.ID,
		s.Status,
		nullString(s.Report.String()),
		nullString(s.ContrastReport.String()),
		nullString(s.ErrorKind.String()),
		nullString(s.Error),
		s.UpdatedAt,
		s.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrSubmissionNotFound
	}

	return nil
}

// List возвращает историю с пагинацией и фильтрацией, новые записи первыми
func (r *SubmissionRepository) List(ctx context.Context, filter domain.SubmissionFilter, pagination domain.Pagination) (*domain.SubmissionListResult, error) {
	baseQuery := `FROM submissions WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, submissionColumns, baseQuery, argIndex, argIndex+1)

	args = append(args, pagination.Limit(), pagination.Offset())

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]*domain.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return &domain.SubmissionListResult{
		Submissions: submissions,
		Total:       total,
		Pagination:  pagination,
	}, nil
}

// scanSubmission читает строку, NULL колонки становятся пустыми строками
func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	s := &domain.Submission{}
	var report, contrast, errorKind, errorMsg *string

	err := row.Scan(
		&s.ID,
		&s.Status,
		&s.FileName,
		&s.FileSize,
		&report,
		&contrast,
		&errorKind,
		&errorMsg,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	if report != nil {
		s.Report = domain.ReportReference(*report)
	}
	if contrast != nil {
		s.ContrastReport = domain.ReportReference(*contrast)
	}
	if errorKind != nil {
		s.ErrorKind = domain.ErrorKind(*errorKind)
	}
	if errorMsg != nil {
		s.Error = *errorMsg
	}

	return s, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
