package domain

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	PDFContentType = "application/pdf"
	pdfExtension   = ".pdf"

	// Лимит длины имени в байтах
	maxFileNameLength = 200
)

var (
	ErrEmptyFile = errors.New("file is empty")
)

// SelectedFile выбранный пользователем файл, хранится только в памяти
type SelectedFile struct {
	Name        string // Оригинальное имя файла
	ContentType string // MIME тип, как его прислал браузер
	Data        []byte // Содержимое файла
	Pages       int    // Количество страниц (0 если неизвестно)
}

// NewSelectedFile создаёт выбранный файл
func NewSelectedFile(name, contentType string, data []byte) (*SelectedFile, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if contentType == "" {
		contentType = ContentTypeFromFileName(name)
	}
	return &SelectedFile{
		Name:        name,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Size возвращает размер файла в байтах
func (f *SelectedFile) Size() int64 {
	return int64(len(f.Data))
}

// LooksLikePDF повторяет проверку сервиса: расширение .pdf или MIME тип PDF.
// Это мягкий фильтр, загрузку он не блокирует.
func (f *SelectedFile) LooksLikePDF() bool {
	return IsPDF(f.ContentType) || strings.EqualFold(filepath.Ext(f.Name), pdfExtension)
}

// ContentTypeFromFileName определяет MIME тип по имени файла
func ContentTypeFromFileName(fileName string) string {
	if strings.EqualFold(filepath.Ext(fileName), pdfExtension) {
		return PDFContentType
	}
	return "application/octet-stream"
}

// IsPDF проверяет, является ли файл PDF
func IsPDF(contentType string) bool {
	ct := strings.Split(contentType, ";")[0]
	ct = strings.TrimSpace(strings.ToLower(ct))
	return ct == PDFContentType
}

// SanitizeFileName убирает компоненты пути и опасные символы.
// Длинное имя укорачивается по границе символа, расширение сохраняется.
func SanitizeFileName(name string) string {
	name = strings.ToValidUTF8(name, "")
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\x00", "")
	if len(name) > maxFileNameLength {
		name = truncateFileName(name, maxFileNameLength)
	}
	if name == "" || name == "." || name == "/" {
		name = "document.pdf"
	}
	return name
}

func truncateFileName(name string, limit int) string {
	ext := filepath.Ext(name)
	if len(ext) > limit/2 {
		ext = ""
	}
	stem := strings.TrimSuffix(name, ext)
	for len(stem) > limit-len(ext) {
		_, size := utf8.DecodeLastRuneInString(stem)
		stem = stem[:len(stem)-size]
	}
	return stem + ext
}
