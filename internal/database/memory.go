package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"jobAgent/internal/llm"
)

// MemoryJournal хранит журнал в памяти процесса. Используется без PostgreSQL.
type MemoryJournal struct {
	mu    sync.RWMutex
	runs  map[string]*Run
	steps map[string][]Step
	llm   []LlmLog
}

var _ Journal = (*MemoryJournal)(nil)

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{
		runs:  make(map[string]*Run),
		steps: make(map[string][]Step),
	}
}

func (m *MemoryJournal) StartRun(ctx context.Context, run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if run.Status == "" {
		run.Status = StatusRunning
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	cp := *run
	m.runs[run.ID] = &cp
	return nil
}

func (m *MemoryJournal) FinishRun(ctx context.Context, id, status, summary, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	now := time.Now()
	run.Status = status
	run.Summary = summary
	run.Error = errMsg
	run.FinishedAt = &now
	return nil
}

func (m *MemoryJournal) RecordStep(ctx context.Context, step *Step) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if step.CreatedAt.IsZero() {
		step.CreatedAt = time.Now()
	}
	step.ID = uint(len(m.steps[step.RunID]) + 1)
	m.steps[step.RunID] = append(m.steps[step.RunID], *step)
	return nil
}

func (m *MemoryJournal) LogLLMRequest(ctx context.Context, entry llm.RequestLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.llm = append(m.llm, LlmLog{
		ID:           uint(len(m.llm) + 1),
		RunID:        entry.RunID,
		StepNo:       entry.StepNo,
		Role:         entry.Role,
		PromptText:   entry.Prompt,
		ResponseText: entry.Response,
		Model:        entry.Model,
		TokensUsed:   entry.TokensUsed,
		CreatedAt:    time.Now(),
	})
	return nil
}

func (m *MemoryJournal) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]Run, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, *r)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *MemoryJournal) GetRun(ctx context.Context, id string) (*Run, []Step, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	cp := *run
	steps := append([]Step(nil), m.steps[id]...)
	return &cp, steps, nil
}

// LLMLogs возвращает копию записей о запросах к LLM.
func (m *MemoryJournal) LLMLogs() []LlmLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]LlmLog(nil), m.llm...)
}
