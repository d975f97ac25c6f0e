// Package llm - клиент OpenAI с вызовом функций для агента поиска вакансий.
// Включает ограничение частоты запросов и журналирование промптов без персональных данных.
package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// Logger сохраняет запросы к LLM в журнал запусков.
type Logger interface {
	LogLLMRequest(ctx context.Context, entry RequestLog) error
}

// RequestLog - одна запись журнала. Текст уже очищен от персональных данных.
type RequestLog struct {
	RunID      string
	StepNo     int
	Role       string
	Prompt     string
	Response   string
	Model      string
	TokensUsed int
}

// ChatClient - то, что нужно агенту от LLM.
type ChatClient interface {
	Complete(ctx context.Context, req Request) (*Reply, error)
}

// Request - один шаг диалога агента.
type Request struct {
	RunID    string
	StepNo   int
	Messages []openai.ChatCompletionMessage
	Tools    []openai.Tool
}

// Reply - ответ модели: текст и/или вызовы функций.
type Reply struct {
	Message    openai.ChatCompletionMessage
	Calls      []ToolCall
	TokensUsed int
}

// Done сообщает, что модель не запросила ни одного действия.
func (r *Reply) Done() bool {
	return len(r.Calls) == 0
}
