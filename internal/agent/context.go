package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"jobAgent/internal/browser"
)

// pageState описывает текущую страницу для модели. Элементы в видимой области
// идут первыми, остальные добавляются, пока не исчерпан лимит.
func (a *Agent) pageState(ctx context.Context, page browser.Page) string {
	snapshot, err := page.Snapshot(ctx)
	if err != nil {
		return fmt.Sprintf("Page state unavailable: %v", err)
	}
	return formatSnapshot(snapshot, a.cfg.MaxElements)
}

func formatSnapshot(snapshot *browser.PageSnapshot, maxElements int) string {
	if snapshot == nil {
		return "Page state unavailable"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current URL: %s\n", snapshot.URL)
	if snapshot.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", snapshot.Title)
	}

	if len(snapshot.Elements) == 0 {
		b.WriteString("No interactive elements. Navigate to a page first.\n")
		return b.String()
	}

	elements := append([]browser.ElementInfo(nil), snapshot.Elements...)
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].InViewport && !elements[j].InViewport
	})

	shown := elements
	if len(shown) > maxElements {
		shown = shown[:maxElements]
	}
	sort.SliceStable(shown, func(i, j int) bool {
		return shown[i].Index < shown[j].Index
	})

	b.WriteString("Interactive elements:\n")
	for _, el := range shown {
		b.WriteString(formatElement(el))
		b.WriteByte('\n')
	}

	hidden := 0
	for _, el := range elements[len(shown):] {
		if !el.InViewport {
			hidden++
		}
	}
	if rest := len(elements) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "... %d more elements not shown (%d outside the viewport), scroll to see them\n", rest, hidden)
	}
	return b.String()
}

func formatElement(el browser.ElementInfo) string {
	var attrs []string
	if el.Type != "" {
		attrs = append(attrs, "type="+el.Type)
	}
	if el.Role != "" {
		attrs = append(attrs, "role="+el.Role)
	}
	if el.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", el.Label))
	}

	open := el.Tag
	if len(attrs) > 0 {
		open += " " + strings.Join(attrs, " ")
	}
	return fmt.Sprintf("[%d]<%s>%s</%s>", el.Index, open, el.Text, el.Tag)
}
