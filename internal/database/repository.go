package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobAgent/internal/llm"

	"gorm.io/gorm"
)

type RunRepository struct {
	db *gorm.DB
}

var _ Journal = (*RunRepository)(nil)

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) StartRun(ctx context.Context, run *Run) error {
	if run.Status == "" {
		run.Status = StatusRunning
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *RunRepository) FinishRun(ctx context.Context, id, status, summary, errMsg string) error {
	res := r.db.WithContext(ctx).Model(&Run{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      status,
			"summary":     summary,
			"error":       errMsg,
			"finished_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

func (r *RunRepository) RecordStep(ctx context.Context, step *Step) error {
	return r.db.WithContext(ctx).Create(step).Error
}

func (r *RunRepository) LogLLMRequest(ctx context.Context, entry llm.RequestLog) error {
	return r.db.WithContext(ctx).Create(&LlmLog{
		RunID:        entry.RunID,
		StepNo:       entry.StepNo,
		Role:         entry.Role,
		PromptText:   entry.Prompt,
		ResponseText: entry.Response,
		Model:        entry.Model,
		TokensUsed:   entry.TokensUsed,
	}).Error
}

func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	if err := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *RunRepository) GetRun(ctx context.Context, id string) (*Run, []Step, error) {
	var run Run
	if err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, nil, err
	}

	var steps []Step
	if err := r.db.WithContext(ctx).Where("run_id = ?", id).Order("step_no ASC, id ASC").Find(&steps).Error; err != nil {
		return nil, nil, err
	}
	return &run, steps, nil
}
