package domain

// SubmissionStatus статус попытки загрузки
type SubmissionStatus string

const (
	SubmissionStatusPending    SubmissionStatus = "pending"    // Запись создана
	SubmissionStatusProcessing SubmissionStatus = "processing" // Файл отправлен в сервис
	SubmissionStatusCompleted  SubmissionStatus = "completed"  // Отчёт получен
	SubmissionStatusFailed     SubmissionStatus = "failed"     // Попытка завершилась ошибкой
)

// IsValid проверяет валидность статуса
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusProcessing, SubmissionStatusCompleted, SubmissionStatusFailed:
		return true
	}
	return false
}

// IsFinal проверяет, является ли статус финальным
func (s SubmissionStatus) IsFinal() bool {
	return s == SubmissionStatusCompleted || s == SubmissionStatusFailed
}

func (s SubmissionStatus) String() string {
	return string(s)
}
