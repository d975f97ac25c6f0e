package actions

import "fmt"

// ElementNotFoundError - по номеру нет элемента. Ожидаемая ситуация,
// агент повторяет вызов с другим номером.
type ElementNotFoundError struct {
	Index int
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("No element found at index %d", e.Index)
}

// NotUploadableError - элемент найден, но не принимает файлы.
type NotUploadableError struct {
	Index int
}

func (e *NotUploadableError) Error() string {
	return fmt.Sprintf("No file upload element found at index %d", e.Index)
}

// AttachFailedError - ошибка при установке файла. Исходная причина в текст не попадает,
// она пишется в debug лог.
type AttachFailedError struct {
	Index int
	Path  string
	cause error
}

func (e *AttachFailedError) Error() string {
	return fmt.Sprintf("Failed to upload file to index %d", e.Index)
}
