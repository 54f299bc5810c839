package pdf

import (
	"errors"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

var ErrNoPages = errors.New("PDF has no pages")

// Inspector открывает PDF через MuPDF и считает страницы
type Inspector struct{}

// NewInspector создаёт новый Inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// CountPages открывает данные как PDF и возвращает количество страниц
func (i *Inspector) CountPages(data []byte) (int, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages == 0 {
		return 0, ErrNoPages
	}

	return pages, nil
}
