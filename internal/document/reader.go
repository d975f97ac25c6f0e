// Package document извлекает plain text из резюме в PDF.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Text - результат извлечения. Живет в рамках одного запуска пайплайна.
type Text struct {
	Path    string
	Content string
	Pages   int
	Chars   int
}

// PageSource отдает текст постранично. Номера страниц начинаются с 1.
type PageSource interface {
	NumPage() int
	PageText(i int) (string, error)
}

// NotFoundError - резюме не найдено ни по одному из путей-кандидатов.
type NotFoundError struct {
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("файл резюме не найден, положите его в одно из мест: %s", strings.Join(e.Candidates, ", "))
}

// Candidates строит список путей в порядке приоритета:
// рабочий каталог, каталог исполняемого файла, подкаталог рабочего каталога.
// Абсолютный путь возвращается как есть.
func Candidates(fileName, subdir string) []string {
	if filepath.IsAbs(fileName) {
		return []string{fileName}
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	paths := []string{filepath.Join(cwd, fileName)}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), fileName))
	}
	if subdir != "" {
		paths = append(paths, filepath.Join(cwd, subdir, fileName))
	}
	return paths
}

// ResolvePath возвращает первый существующий путь из candidates.
func ResolvePath(candidates []string) (string, error) {
	for _, p := range candidates {
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", &NotFoundError{Candidates: candidates}
}

// ExtractText открывает PDF и склеивает текст всех страниц.
// Файл закрывается до возврата.
func ExtractText(path string) (*Text, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("открытие %s: %w", path, err)
	}
	defer f.Close()

	text := Extract(pdfPages{r: r})
	text.Path = path
	return text, nil
}

// Extract проходит страницы по порядку. Страница без текста или с ошибкой
// разбора (скан, картинка) дает пустую строку и не прерывает чтение.
func Extract(src PageSource) *Text {
	var sb strings.Builder
	n := src.NumPage()
	for i := 1; i <= n; i++ {
		sb.WriteString(safePageText(src, i))
	}

	content := sb.String()
	return &Text{
		Content: content,
		Pages:   n,
		Chars:   utf8.RuneCountInString(content),
	}
}

func safePageText(src PageSource, i int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	t, err := src.PageText(i)
	if err != nil {
		return ""
	}
	return t
}

type pdfPages struct {
	r *pdf.Reader
}

func (p pdfPages) NumPage() int {
	return p.r.NumPage()
}

func (p pdfPages) PageText(i int) (string, error) {
	page := p.r.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
