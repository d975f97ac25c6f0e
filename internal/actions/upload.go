package actions

import (
	"context"
	"fmt"
	"path/filepath"

	"jobAgent/internal/browser"
	"jobAgent/internal/logger"

	"go.uber.org/zap"
)

type UploadState int

const (
	StateResolving UploadState = iota
	StateValidating
	StateAttaching
	StateSucceeded
	StateFailed
)

func (s UploadState) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateValidating:
		return "validating"
	case StateAttaching:
		return "attaching"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// UploadAck - подтверждение загрузки для аудита.
type UploadAck struct {
	Path  string
	Index int
}

// Uploader прикрепляет локальный файл к полю загрузки по номеру элемента.
// Повторов нет: при ошибке агент сам выбирает другой номер.
type Uploader struct {
	resolver browser.ElementResolver
	log      *logger.Zap
}

func NewUploader(resolver browser.ElementResolver, log *logger.Zap) *Uploader {
	if log == nil {
		log = logger.Nop()
	}
	return &Uploader{
		resolver: resolver,
		log:      log.Named("upload"),
	}
}

func (u *Uploader) transition(from, to UploadState, index int) {
	u.log.Debug("upload", zap.Int("index", index), zap.Stringer("from", from), zap.Stringer("to", to))
}

func (u *Uploader) Upload(ctx context.Context, index int, path string) (UploadAck, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return UploadAck{}, fmt.Errorf("путь %s: %w", path, err)
	}

	// Resolving
	el, err := u.resolver.Resolve(ctx, index)
	if err != nil {
		u.log.Debug("Ошибка поиска элемента", zap.Int("index", index), zap.Error(err))
	}
	if el == nil {
		u.transition(StateResolving, StateFailed, index)
		return UploadAck{}, &ElementNotFoundError{Index: index}
	}
	u.transition(StateResolving, StateValidating, index)

	// Validating
	input, err := el.FileInput(ctx)
	if err != nil {
		u.log.Debug("Ошибка поиска поля загрузки", zap.Int("index", index), zap.Error(err))
	}
	if input == nil {
		u.transition(StateValidating, StateFailed, index)
		u.log.Info("Поле загрузки не найдено", zap.Int("index", index))
		return UploadAck{}, &NotUploadableError{Index: index}
	}
	u.transition(StateValidating, StateAttaching, index)

	// Attaching
	if err := input.SetInputFiles(ctx, absPath); err != nil {
		u.transition(StateAttaching, StateFailed, index)
		u.log.Debug("Ошибка в SetInputFiles", zap.Int("index", index), zap.Error(err))
		return UploadAck{}, &AttachFailedError{Index: index, Path: absPath, cause: err}
	}
	u.transition(StateAttaching, StateSucceeded, index)

	u.log.Info("Файл загружен", zap.String("path", absPath), zap.Int("index", index))
	return UploadAck{Path: absPath, Index: index}, nil
}
