// Package extractor строит снимок страницы и нумерует интерактивные элементы.
// Номер пишется в атрибут IndexAttr и действует до следующего снимка.
package extractor

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// IndexAttr - атрибут, в котором хранится номер элемента.
const IndexAttr = "data-agent-index"

type ElementInfo struct {
	Index      int
	Tag        string
	Type       string
	Text       string
	Role       string
	Label      string
	InViewport bool
}

type PageSnapshot struct {
	URL      string
	Title    string
	Elements []ElementInfo
}

// Evaluator - часть playwright.Page, которая нужна для снимка.
type Evaluator interface {
	URL() string
	Title() (string, error)
	Evaluate(expression string, arg ...interface{}) (interface{}, error)
}

var _ Evaluator = (playwright.Page)(nil)

const indexScript = `
	(attr) => {
		document.querySelectorAll('[' + attr + ']').forEach(el => el.removeAttribute(attr));

		const interactive = [
			'button', 'a[href]', 'input', 'select', 'textarea', 'label',
			'[role=button]', '[role=link]', '[role=tab]', '[role=checkbox]',
			'[onclick]', '[contenteditable=true]'
		].join(',');

		const viewport = { right: window.innerWidth, bottom: window.innerHeight };
		const out = [];
		let index = 0;

		document.querySelectorAll(interactive).forEach(el => {
			const rect = el.getBoundingClientRect();
			const style = window.getComputedStyle(el);
			const visible = style.display !== 'none' &&
				style.visibility !== 'hidden' &&
				rect.width > 0 && rect.height > 0;
			if (!visible) return;

			el.setAttribute(attr, String(index));
			out.push({
				index: index,
				tag: el.tagName.toLowerCase(),
				type: (el.getAttribute('type') || '').toLowerCase(),
				text: (el.innerText || el.value || '').trim().substring(0, 120),
				role: el.getAttribute('role') || '',
				label: el.getAttribute('aria-label') || el.getAttribute('placeholder') ||
					el.getAttribute('title') || el.getAttribute('name') || '',
				inViewport: rect.top >= 0 && rect.left >= 0 &&
					rect.bottom <= viewport.bottom && rect.right <= viewport.right
			});
			index++;
		});

		return out;
	}
`

// ExtractPageSnapshot нумерует видимые интерактивные элементы страницы.
func ExtractPageSnapshot(ctx context.Context, page Evaluator) (*PageSnapshot, error) {
	title, err := page.Title()
	if err != nil {
		title = ""
	}

	result, err := page.Evaluate(indexScript, IndexAttr)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения JavaScript: %w", err)
	}

	return &PageSnapshot{
		URL:      page.URL(),
		Title:    title,
		Elements: parseElements(result),
	}, nil
}

// Selector возвращает CSS селектор элемента с номером index.
func Selector(index int) string {
	return fmt.Sprintf("[%s='%d']", IndexAttr, index)
}

func parseElements(result interface{}) []ElementInfo {
	items, ok := result.([]interface{})
	if !ok {
		return []ElementInfo{}
	}

	elements := make([]ElementInfo, 0, len(items))
	for _, item := range items {
		data, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		idx, ok := toInt(data["index"])
		if !ok {
			continue
		}

		elem := ElementInfo{Index: idx}
		elem.Tag, _ = data["tag"].(string)
		elem.Type, _ = data["type"].(string)
		elem.Text, _ = data["text"].(string)
		elem.Role, _ = data["role"].(string)
		elem.Label, _ = data["label"].(string)
		elem.InViewport, _ = data["inViewport"].(bool)
		elements = append(elements, elem)
	}
	return elements
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
