// Package actions - фиксированный набор действий, которые агент может вызвать:
// прочитать резюме, сохранить вакансию, прочитать сохраненные вакансии, загрузить резюме.
package actions

import (
	"context"
	"errors"
	"fmt"

	"jobAgent/internal/browser"
	"jobAgent/internal/document"
	"jobAgent/internal/ledger"
	"jobAgent/internal/logger"

	"go.uber.org/zap"
)

// PipelineActions - действия одного запуска пайплайна.
type PipelineActions interface {
	ReadCV(ctx context.Context) Result
	SaveJob(ctx context.Context, job ledger.Job) Result
	ReadJobs(ctx context.Context) Result
	UploadCV(ctx context.Context, index int) Result
}

// Result возвращается агенту вместо паники или голой ошибки,
// чтобы он мог скорректировать следующее действие.
type Result struct {
	Content         string
	Err             error
	IncludeInMemory bool // Агент держит результат в истории до конца запуска
}

// Text - то, что уходит обратно в LLM.
func (r Result) Text() string {
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	return r.Content
}

// Ledger - часть хранилища вакансий, нужная действиям.
type Ledger interface {
	Append(ctx context.Context, job ledger.Job) (ledger.Ack, error)
	ReadAll(ctx context.Context) (ledger.Contents, error)
}

type Actions struct {
	cv       *document.Text
	store    Ledger
	uploader *Uploader
	log      *logger.Zap
}

var _ PipelineActions = (*Actions)(nil)

// New собирает действия запуска. cv извлекается один раз до старта
// и здесь только отдается агенту.
func New(cv *document.Text, store Ledger, resolver browser.ElementResolver, log *logger.Zap) *Actions {
	if log == nil {
		log = logger.Nop()
	}
	return &Actions{
		cv:       cv,
		store:    store,
		uploader: NewUploader(resolver, log),
		log:      log.Named("actions"),
	}
}

func (a *Actions) ReadCV(ctx context.Context) Result {
	a.log.Info("Резюме передано агенту", zap.Int("chars", a.cv.Chars))
	return Result{Content: a.cv.Content, IncludeInMemory: true}
}

func (a *Actions) SaveJob(ctx context.Context, job ledger.Job) Result {
	ack, err := a.store.Append(ctx, job)
	if err != nil {
		var storageErr *ledger.StorageError
		if errors.As(err, &storageErr) {
			a.log.Error("Ошибка записи вакансии", zap.Error(err))
		} else {
			a.log.Warn("Вакансия отклонена", zap.Error(err))
		}
		return Result{Err: err}
	}
	if ack.Duplicate {
		return Result{Content: "Job already saved, skipped"}
	}
	return Result{Content: "Saved job to file"}
}

func (a *Actions) ReadJobs(ctx context.Context) Result {
	contents, err := a.store.ReadAll(ctx)
	if err != nil {
		a.log.Error("Ошибка чтения вакансий", zap.Error(err))
		return Result{Err: err}
	}
	if contents.Fresh {
		return Result{Content: "New jobs file created."}
	}
	return Result{Content: contents.Raw}
}

func (a *Actions) UploadCV(ctx context.Context, index int) Result {
	ack, err := a.uploader.Upload(ctx, index, a.cv.Path)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Content: fmt.Sprintf("Successfully uploaded file %q to index %d", ack.Path, ack.Index)}
}
