package browser

import (
	"context"
	"sync"
	"time"

	"jobAgent/internal/extractor"

	"github.com/playwright-community/playwright-go"
)

// Browser - общая сессия браузера. Несколько запусков пайплайна работают
// в одной сессии, каждый в своей вкладке.
type Browser interface {
	Launch(ctx context.Context) error
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page - вкладка одного запуска. Элементы адресуются номерами из последнего Snapshot.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, index int) error
	Type(ctx context.Context, index int, text string) error
	Scroll(ctx context.Context, down bool) error
	Snapshot(ctx context.Context) (*PageSnapshot, error)
	ElementResolver
	Close() error
}

// ElementResolver находит элемент по номеру. (nil, nil) - по номеру ничего нет.
type ElementResolver interface {
	Resolve(ctx context.Context, index int) (Element, error)
}

// Element - найденный элемент страницы.
type Element interface {
	Index() int
	// FileInput возвращает поле загрузки файла, связанное с элементом:
	// сам элемент, вложенный input[type=file], control у label или соседний input.
	// (nil, nil) - элемент не умеет принимать файлы.
	FileInput(ctx context.Context) (FileInput, error)
}

type FileInput interface {
	SetInputFiles(ctx context.Context, path string) error
}

type PageSnapshot = extractor.PageSnapshot
type ElementInfo = extractor.ElementInfo

type PlaywrightBrowser struct {
	mu      sync.RWMutex
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	cfg     Config
}

type Config struct {
	Headless        bool
	UserDataDir     string
	Display         string
	Timeout         time.Duration
	NavigateTimeout time.Duration
}

var (
	_ Browser = (*PlaywrightBrowser)(nil)
	_ Page    = (*playwrightPage)(nil)
)
