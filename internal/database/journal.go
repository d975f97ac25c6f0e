package database

import (
	"context"
	"errors"

	"jobAgent/internal/llm"
)

var ErrRunNotFound = errors.New("запуск не найден")

// Journal - журнал запусков: сами запуски, шаги агента и запросы к LLM.
type Journal interface {
	llm.Logger
	StartRun(ctx context.Context, run *Run) error
	FinishRun(ctx context.Context, id, status, summary, errMsg string) error
	RecordStep(ctx context.Context, step *Step) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	GetRun(ctx context.Context, id string) (*Run, []Step, error)
}
