package llm

import (
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Args - объединение аргументов всех функций. Index - указатель,
// чтобы отличать отсутствующий номер от нулевого.
type Args struct {
	URL       string  `json:"url,omitempty"`
	Index     *int    `json:"index,omitempty"`
	Text      string  `json:"text,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Title     string  `json:"title,omitempty"`
	Link      string  `json:"link,omitempty"`
	Company   string  `json:"company,omitempty"`
	FitScore  float64 `json:"fit_score,omitempty"`
	Location  string  `json:"location,omitempty"`
	Salary    string  `json:"salary,omitempty"`
	Summary   string  `json:"summary,omitempty"`
}

type ToolCall struct {
	ID   string
	Name string
	Raw  string
	Args Args
	// Err - аргументы не разобрались. Агент возвращает ошибку модели вместо выполнения.
	Err error
}

func ParseToolCall(tc openai.ToolCall) ToolCall {
	call := ToolCall{
		ID:   tc.ID,
		Name: tc.Function.Name,
		Raw:  tc.Function.Arguments,
	}
	if tc.Function.Arguments == "" {
		return call
	}
	if err := json.Unmarshal([]byte(tc.Function.Arguments), &call.Args); err != nil {
		call.Err = fmt.Errorf("invalid arguments for %s: %w", tc.Function.Name, err)
	}
	return call
}

// RequireIndex возвращает номер элемента или ошибку для модели.
func (c ToolCall) RequireIndex() (int, error) {
	if c.Args.Index == nil {
		return 0, fmt.Errorf("%s requires index", c.Name)
	}
	return *c.Args.Index, nil
}
