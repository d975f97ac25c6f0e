package agent

import (
	"strings"
	"testing"

	"jobAgent/internal/browser"

	"github.com/stretchr/testify/assert"
)

func TestFormatSnapshot_ViewportFirst(t *testing.T) {
	snap := &browser.PageSnapshot{
		URL: "https://x",
		Elements: []browser.ElementInfo{
			{Index: 0, Tag: "a", Text: "Footer"},
			{Index: 1, Tag: "button", Text: "Apply", InViewport: true},
			{Index: 2, Tag: "input", Type: "file", InViewport: true},
		},
	}

	out := formatSnapshot(snap, 2)
	assert.Contains(t, out, "[1]<button>Apply</button>")
	assert.Contains(t, out, "[2]<input type=file></input>")
	assert.NotContains(t, out, "Footer")
	assert.Contains(t, out, "1 more elements not shown (1 outside the viewport)")
	assert.Less(t, strings.Index(out, "[1]"), strings.Index(out, "[2]"))
}

func TestFormatSnapshot_Empty(t *testing.T) {
	out := formatSnapshot(&browser.PageSnapshot{URL: "about:blank"}, 10)
	assert.Contains(t, out, "about:blank")
	assert.Contains(t, out, "No interactive elements")
	assert.Equal(t, "Page state unavailable", formatSnapshot(nil, 10))
}
