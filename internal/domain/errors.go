package domain

import "errors"

// Ошибки домена
var (
	ErrNoFileSelected     = errors.New("no file selected")
	ErrBackendUnavailable = errors.New("report service unavailable")
	ErrBackendTimeout     = errors.New("report service timed out") // Всегда вместе с ErrBackendUnavailable
	ErrProcessingFailed   = errors.New("report processing failed")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidStatus      = errors.New("invalid submission status")
	ErrHistoryDisabled    = errors.New("submission history disabled")
)

// ErrorKind категория ошибки, которую видит пользователь
type ErrorKind string

const (
	ErrorKindNone       ErrorKind = ""
	ErrorKindValidation ErrorKind = "validation" // Файл не выбран
	ErrorKindTransport  ErrorKind = "transport"  // Сервис недоступен, можно повторить
	ErrorKindProcessing ErrorKind = "processing" // Сервис ответил ошибкой
)

// ClassifyError определяет категорию ошибки
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, ErrNoFileSelected):
		return ErrorKindValidation
	case errors.Is(err, ErrBackendUnavailable):
		return ErrorKindTransport
	default:
		return ErrorKindProcessing
	}
}

// Retryable сообщает, имеет ли смысл повторить попытку без изменений
func (k ErrorKind) Retryable() bool {
	return k == ErrorKindTransport
}

func (k ErrorKind) String() string {
	return string(k)
}
