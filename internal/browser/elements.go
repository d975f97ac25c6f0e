package browser

import (
	"context"
	"fmt"

	"jobAgent/internal/extractor"

	"github.com/playwright-community/playwright-go"
)

// fileInputScript ищет input[type=file], связанный с элементом.
const fileInputScript = `el => {
	const isFile = n => n && n.tagName === 'INPUT' && (n.type || '').toLowerCase() === 'file';
	if (isFile(el)) return el;
	const inner = el.querySelector('input[type=file]');
	if (inner) return inner;
	if (el.tagName === 'LABEL' && isFile(el.control)) return el.control;
	const parent = el.parentElement;
	if (parent) {
		const sibling = parent.querySelector(':scope > input[type=file]');
		if (sibling) return sibling;
	}
	return null;
}`

func (p *playwrightPage) Resolve(ctx context.Context, index int) (Element, error) {
	if index < 0 {
		return nil, nil
	}

	handle, err := p.page.QuerySelector(extractor.Selector(index))
	if err != nil {
		return nil, fmt.Errorf("поиск элемента %d: %w", index, err)
	}
	if handle == nil {
		return nil, nil
	}
	return &playwrightElement{index: index, handle: handle}, nil
}

type playwrightElement struct {
	index  int
	handle playwright.ElementHandle
}

func (e *playwrightElement) Index() int {
	return e.index
}

func (e *playwrightElement) FileInput(ctx context.Context) (FileInput, error) {
	js, err := e.handle.EvaluateHandle(fileInputScript)
	if err != nil {
		return nil, fmt.Errorf("поиск поля загрузки у элемента %d: %w", e.index, err)
	}

	input := js.AsElement()
	if input == nil {
		_ = js.Dispose()
		return nil, nil
	}
	return &playwrightFileInput{handle: input}, nil
}

type playwrightFileInput struct {
	handle playwright.ElementHandle
}

func (f *playwrightFileInput) SetInputFiles(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.handle.SetInputFiles([]string{path})
}
