package llm

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(name, args string) openai.ToolCall {
	return openai.ToolCall{
		ID:       "call_1",
		Type:     openai.ToolTypeFunction,
		Function: openai.FunctionCall{Name: name, Arguments: args},
	}
}

func TestParseToolCall_SaveJob(t *testing.T) {
	c := ParseToolCall(call(ToolSaveJob,
		`{"title":"ML Intern","link":"https://careers.google.com/1","company":"Google","fit_score":0.8,"location":"Zurich"}`))

	require.NoError(t, c.Err)
	assert.Equal(t, "call_1", c.ID)
	assert.Equal(t, "ML Intern", c.Args.Title)
	assert.Equal(t, "Google", c.Args.Company)
	assert.InDelta(t, 0.8, c.Args.FitScore, 1e-9)
	assert.Equal(t, "Zurich", c.Args.Location)
	assert.Empty(t, c.Args.Salary)
}

func TestParseToolCall_ZeroIndex(t *testing.T) {
	c := ParseToolCall(call(ToolUploadCV, `{"index":0}`))

	idx, err := c.RequireIndex()
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestParseToolCall_MissingIndex(t *testing.T) {
	c := ParseToolCall(call(ToolClick, `{}`))

	_, err := c.RequireIndex()
	assert.Error(t, err)
}

func TestParseToolCall_NoArguments(t *testing.T) {
	c := ParseToolCall(call(ToolReadCV, ""))
	assert.NoError(t, c.Err)
}

func TestParseToolCall_BadJSON(t *testing.T) {
	c := ParseToolCall(call(ToolNavigate, `{"url":`))
	assert.Error(t, c.Err)
	assert.Equal(t, ToolNavigate, c.Name)
}

func TestTools_Names(t *testing.T) {
	names := map[string]bool{}
	for _, tl := range Tools() {
		names[tl.Function.Name] = true
	}
	for _, n := range []string{ToolNavigate, ToolClick, ToolType, ToolScroll, ToolReadCV, ToolReadJobs, ToolSaveJob, ToolUploadCV, ToolDone} {
		assert.True(t, names[n], n)
	}
}

func TestTools_UploadDescription(t *testing.T) {
	for _, tl := range Tools() {
		if tl.Function.Name == ToolUploadCV {
			assert.Contains(t, tl.Function.Description, "different index")
			return
		}
	}
	t.Fatal("upload_cv not found")
}
