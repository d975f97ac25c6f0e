package browser

import (
	"context"
	"fmt"
	"time"

	"jobAgent/internal/extractor"

	"github.com/playwright-community/playwright-go"
)

// Scroll прокручивает страницу на высоту окна вниз или вверх.
func (p *playwrightPage) Scroll(ctx context.Context, down bool) error {
	direction := 1
	if !down {
		direction = -1
	}

	_, err := p.page.Evaluate(`(dir) => window.scrollBy(0, dir * window.innerHeight)`, direction)
	if err != nil {
		return fmt.Errorf("ошибка прокрутки: %w", err)
	}
	// Ленивые списки вакансий подгружаются после прокрутки
	time.Sleep(300 * time.Millisecond)
	return nil
}

func (p *playwrightPage) ScrollToIndex(ctx context.Context, index int) error {
	element, err := p.page.QuerySelector(extractor.Selector(index))
	if err != nil {
		return fmt.Errorf("элемент не найден: %w", err)
	}
	if element == nil {
		return fmt.Errorf("элемент с номером %d не найден", index)
	}

	isVisible, err := element.IsVisible()
	if err == nil && isVisible {
		return nil
	}

	err = element.ScrollIntoViewIfNeeded(playwright.ElementHandleScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		_, err = element.Evaluate(`el => el.scrollIntoView({behavior: 'auto', block: 'center'})`)
		if err != nil {
			return fmt.Errorf("ошибка прокрутки к элементу: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
	}
	return nil
}
