package browser

import (
	"context"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

func (p *playwrightPage) WaitForLoadState(ctx context.Context, state string) error {
	var loadState *playwright.LoadState
	switch strings.ToLower(state) {
	case "load":
		loadState = playwright.LoadStateLoad
	case "domcontentloaded":
		loadState = playwright.LoadStateDomcontentloaded
	case "networkidle":
		loadState = playwright.LoadStateNetworkidle
	default:
		loadState = playwright.LoadStateLoad
	}

	return p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   loadState,
		Timeout: playwright.Float(float64(p.cfg.Timeout.Milliseconds())),
	})
}

var popupCloseSelectors = []string{
	"[role='dialog'] button[aria-label*='close' i]",
	"#onetrust-accept-btn-handler",
	"button:has-text('Accept all')",
	".modal button.close",
	"[data-dismiss='modal']",
	"[aria-label='Close']",
}

// ClosePopups закрывает видимые cookie-баннеры и модальные окна.
// Ошибки поиска не считаются ошибкой: попапа может просто не быть.
func (p *playwrightPage) ClosePopups(ctx context.Context) error {
	for _, selector := range popupCloseSelectors {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		elements, err := p.page.QuerySelectorAll(selector)
		if err != nil {
			continue
		}

		for _, element := range elements {
			isVisible, err := element.IsVisible()
			if err != nil || !isVisible {
				continue
			}
			if err := element.Click(); err == nil {
				time.Sleep(500 * time.Millisecond)
			}
		}
	}
	return nil
}
