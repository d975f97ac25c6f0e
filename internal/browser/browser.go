package browser

import (
	"context"
	"fmt"
	"time"

	"jobAgent/internal/extractor"

	"github.com/playwright-community/playwright-go"
)

func New(cfg Config) *PlaywrightBrowser {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.NavigateTimeout == 0 {
		cfg.NavigateTimeout = 60 * time.Second
	}

	return &PlaywrightBrowser{
		cfg: cfg,
	}
}

func (b *PlaywrightBrowser) getBrowserArgs() []string {
	return []string{
		"--no-sandbox",
	}
}

func (b *PlaywrightBrowser) getEnvMap() map[string]string {
	if b.cfg.Display != "" {
		return map[string]string{
			"DISPLAY": b.cfg.Display,
		}
	}
	return nil
}

func (b *PlaywrightBrowser) launchPersistent(pw *playwright.Playwright) error {
	opts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(b.cfg.Headless),
		Args:     b.getBrowserArgs(),
	}

	if env := b.getEnvMap(); env != nil {
		opts.Env = env
	}

	browserContext, err := pw.Chromium.LaunchPersistentContext(b.cfg.UserDataDir, opts)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.context = browserContext
	b.mu.Unlock()
	return nil
}

func (b *PlaywrightBrowser) launchStandard(pw *playwright.Playwright) error {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.cfg.Headless),
		Args:     b.getBrowserArgs(),
	}

	if env := b.getEnvMap(); env != nil {
		opts.Env = env
	}

	browser, err := pw.Chromium.Launch(opts)
	if err != nil {
		return err
	}

	browserContext, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 800},
	})
	if err != nil {
		_ = browser.Close()
		return err
	}

	b.mu.Lock()
	b.browser = browser
	b.context = browserContext
	b.mu.Unlock()
	return nil
}

// Launch запускает Chromium. Повторный вызов для запущенной сессии ничего не делает.
func (b *PlaywrightBrowser) Launch(ctx context.Context) error {
	b.mu.RLock()
	running := b.context != nil
	b.mu.RUnlock()
	if running {
		return nil
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("запуск playwright: %w", err)
	}
	b.mu.Lock()
	b.pw = pw
	b.mu.Unlock()

	if b.cfg.UserDataDir != "" {
		return b.launchPersistent(pw)
	}

	return b.launchStandard(pw)
}

// NewPage открывает новую вкладку в общей сессии.
func (b *PlaywrightBrowser) NewPage(ctx context.Context) (Page, error) {
	b.mu.RLock()
	browserContext := b.context
	b.mu.RUnlock()
	if browserContext == nil {
		return nil, fmt.Errorf("браузер не запущен")
	}

	page, err := browserContext.NewPage()
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия вкладки: %w", err)
	}
	page.SetDefaultTimeout(float64(b.cfg.Timeout.Milliseconds()))

	return &playwrightPage{page: page, cfg: b.cfg}, nil
}

func (b *PlaywrightBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.context != nil {
		if err := b.context.Close(); err != nil {
			return err
		}
		b.context = nil
	}
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			return err
		}
		b.browser = nil
	}
	if b.pw != nil {
		err := b.pw.Stop()
		b.pw = nil
		return err
	}
	return nil
}

type playwrightPage struct {
	page playwright.Page
	cfg  Config
}

func (p *playwrightPage) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, p.cfg.NavigateTimeout)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		_, err := p.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(float64(p.cfg.NavigateTimeout.Milliseconds())),
		})
		errChan <- err
	}()

	select {
	case <-navCtx.Done():
		return fmt.Errorf("navigate timeout after %v", p.cfg.NavigateTimeout)
	case err := <-errChan:
		if err != nil {
			return err
		}
	}

	if err := p.ClosePopups(ctx); err != nil {
		return fmt.Errorf("ошибка закрытия попапов после навигации: %w", err)
	}
	return nil
}

func (p *playwrightPage) Click(ctx context.Context, index int) error {
	selector := extractor.Selector(index)
	if err := p.ScrollToIndex(ctx, index); err != nil {
		return err
	}
	if err := p.page.Click(selector); err != nil {
		return fmt.Errorf("клик по элементу %d: %w", index, err)
	}

	_ = p.WaitForLoadState(ctx, "domcontentloaded")
	return nil
}

func (p *playwrightPage) Type(ctx context.Context, index int, text string) error {
	selector := extractor.Selector(index)
	if err := p.ScrollToIndex(ctx, index); err != nil {
		return err
	}
	if err := p.page.Fill(selector, text); err != nil {
		return fmt.Errorf("ввод в элемент %d: %w", index, err)
	}
	return nil
}

func (p *playwrightPage) Snapshot(ctx context.Context) (*PageSnapshot, error) {
	if err := p.WaitForLoadState(ctx, "domcontentloaded"); err != nil {
		return nil, fmt.Errorf("ошибка ожидания загрузки страницы: %w", err)
	}

	snapshot, err := extractor.ExtractPageSnapshot(ctx, p.page)
	if err != nil {
		return nil, fmt.Errorf("ошибка извлечения snapshot: %w", err)
	}
	return snapshot, nil
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}
