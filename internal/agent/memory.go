package agent

import (
	"jobAgent/internal/actions"
	"jobAgent/internal/sanitizer"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are a browser automation agent that finds jobs matching the user's cv.

Each turn you get the current page state: URL, title and interactive elements as [index]<tag>text</tag>.
Refer to elements only by index from the latest page state. Indexes change after every action.

Rules:
- Read the cv with read_cv before judging any job.
- Check read_jobs before saving so you do not save the same posting twice.
- Save every matching job with save_jobs. fit_score is your estimate from 0 to 1 of how well the cv fits.
- If upload_cv reports an error, try a different index of the same upload element.
- Call done with a short summary when the task is complete.`

// memory - история диалога одного вызова. Текущее состояние страницы
// в историю не попадает и добавляется к каждому запросу заново.
type memory struct {
	messages  []openai.ChatCompletionMessage
	maxOutput int
}

func newMemory(task string, maxOutput int) *memory {
	return &memory{
		messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: task},
		},
		maxOutput: maxOutput,
	}
}

func (m *memory) request(state string) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(m.messages), len(m.messages)+1)
	copy(out, m.messages)
	return append(out, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: "Current page state:\n" + state,
	})
}

func (m *memory) addAssistant(msg openai.ChatCompletionMessage) {
	msg.Role = openai.ChatMessageRoleAssistant
	m.messages = append(m.messages, msg)
}

// addResult сохраняет результат действия. Закрепленные результаты (резюме)
// хранятся целиком, остальные обрезаются.
func (m *memory) addResult(callID string, res actions.Result) {
	content := res.Text()
	if !res.IncludeInMemory {
		content = sanitizer.Truncate(content, m.maxOutput)
	}
	m.messages = append(m.messages, openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    content,
		ToolCallID: callID,
	})
}
