package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct {
	result interface{}
	err    error
	arg    interface{}
}

func (f *fakePage) URL() string            { return "https://careers.google.com" }
func (f *fakePage) Title() (string, error) { return "Careers", nil }
func (f *fakePage) Evaluate(expression string, arg ...interface{}) (interface{}, error) {
	if len(arg) > 0 {
		f.arg = arg[0]
	}
	return f.result, f.err
}

func TestExtractPageSnapshot_ParsesElements(t *testing.T) {
	page := &fakePage{result: []interface{}{
		map[string]interface{}{"index": float64(0), "tag": "a", "text": "ML Intern", "inViewport": true},
		map[string]interface{}{"index": float64(1), "tag": "input", "type": "file", "label": "Resume"},
		map[string]interface{}{"tag": "div"},
		"garbage",
	}}

	snap, err := ExtractPageSnapshot(context.Background(), page)
	require.NoError(t, err)

	assert.Equal(t, IndexAttr, page.arg)
	assert.Equal(t, "Careers", snap.Title)
	require.Len(t, snap.Elements, 2)
	assert.Equal(t, ElementInfo{Index: 0, Tag: "a", Text: "ML Intern", InViewport: true}, snap.Elements[0])
	assert.Equal(t, "file", snap.Elements[1].Type)
	assert.Equal(t, "Resume", snap.Elements[1].Label)
}

func TestExtractPageSnapshot_ScriptError(t *testing.T) {
	_, err := ExtractPageSnapshot(context.Background(), &fakePage{err: errors.New("detached")})
	assert.Error(t, err)
}

func TestSelector(t *testing.T) {
	assert.Equal(t, "[data-agent-index='7']", Selector(7))
}
