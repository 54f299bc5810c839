package usecase

// SelectFileInput файл, который пользователь выбрал на странице
type SelectFileInput struct {
	FileName    string // Имя файла
	ContentType string // MIME тип
	Data        []byte // Содержимое файла
}
