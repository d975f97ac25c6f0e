package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobAgent/internal/config"
	"jobAgent/internal/sanitizer"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Длина промпта в журнале. Полный текст резюме в каждой записи не нужен.
const maxLoggedPrompt = 4000

type Client struct {
	client    *openai.Client
	model     string
	maxTokens int
	logger    Logger
	sanitizer *sanitizer.DataSanitizer
	requests  *rate.Limiter
	tokens    *rate.Limiter
}

var _ ChatClient = (*Client)(nil)

func NewClient(cfg config.OpenAI, logger Logger) *Client {
	return newClient(openai.NewClient(cfg.KeyAI), cfg, logger)
}

// NewClientWithConfig позволяет подменить адрес API, например на совместимый прокси.
func NewClientWithConfig(oc openai.ClientConfig, cfg config.OpenAI, logger Logger) *Client {
	return newClient(openai.NewClientWithConfig(oc), cfg, logger)
}

func newClient(oc *openai.Client, cfg config.OpenAI, logger Logger) *Client {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	tph := cfg.TokensPerHour
	if tph <= 0 {
		tph = 90000
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}

	return &Client{
		client:    oc,
		model:     model,
		maxTokens: cfg.MaxTokens,
		logger:    logger,
		sanitizer: sanitizer.New(),
		requests:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		tokens:    rate.NewLimiter(rate.Limit(float64(tph)/3600), tph),
	}
}

func (c *Client) Model() string {
	return c.model
}

// Complete отправляет историю диалога вместе с описанием функций.
// Ждет лимитов запросов и токенов, если они исчерпаны.
func (c *Client) Complete(ctx context.Context, req Request) (*Reply, error) {
	if err := c.requests.Wait(ctx); err != nil {
		return nil, fmt.Errorf("ожидание лимита запросов: %w", err)
	}

	// Грубая оценка: ~4 символа на токен
	estimated := c.maxTokens
	for _, msg := range req.Messages {
		estimated += len(msg.Content) / 4
	}
	if estimated > c.tokens.Burst() {
		estimated = c.tokens.Burst()
	}
	if err := c.tokens.WaitN(ctx, estimated); err != nil {
		return nil, fmt.Errorf("ожидание лимита токенов: %w", err)
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    req.Messages,
		Tools:       req.Tools,
		MaxTokens:   c.maxTokens,
		Temperature: 0.2,
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		c.log(ctx, req, "error", err.Error(), 0)
		return nil, fmt.Errorf("ошибка запроса к OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.log(ctx, req, "empty", "", resp.Usage.TotalTokens)
		return nil, fmt.Errorf("пустой ответ от OpenAI")
	}

	msg := resp.Choices[0].Message
	reply := &Reply{
		Message:    msg,
		TokensUsed: resp.Usage.TotalTokens,
	}
	for _, tc := range msg.ToolCalls {
		reply.Calls = append(reply.Calls, ParseToolCall(tc))
	}

	c.log(ctx, req, openai.ChatMessageRoleAssistant, describeReply(reply), resp.Usage.TotalTokens)
	return reply, nil
}

func (c *Client) log(ctx context.Context, req Request, role, response string, tokens int) {
	if c.logger == nil {
		return
	}
	prompt := ""
	if n := len(req.Messages); n > 0 {
		prompt = req.Messages[n-1].Content
	}
	_ = c.logger.LogLLMRequest(ctx, RequestLog{
		RunID:      req.RunID,
		StepNo:     req.StepNo,
		Role:       role,
		Prompt:     sanitizer.Truncate(c.sanitizer.Sanitize(prompt), maxLoggedPrompt),
		Response:   sanitizer.Truncate(c.sanitizer.Sanitize(response), maxLoggedPrompt),
		Model:      c.model,
		TokensUsed: tokens,
	})
}

func describeReply(r *Reply) string {
	if r.Done() {
		return r.Message.Content
	}
	parts := make([]string, 0, len(r.Calls))
	for _, call := range r.Calls {
		parts = append(parts, call.Name+" "+call.Raw)
	}
	return strings.Join(parts, "\n")
}
