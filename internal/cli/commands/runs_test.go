package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"jobAgent/internal/database"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// uuidJournal ведет себя как колонка uuid в postgres: не-UUID id дает ошибку запроса.
type uuidJournal struct {
	*database.MemoryJournal
	lookups int
}

func (j *uuidJournal) GetRun(ctx context.Context, id string) (*database.Run, []database.Step, error) {
	j.lookups++
	return nil, nil, errors.New("invalid input syntax for type uuid")
}

func TestShow_InvalidIDIsNotFound(t *testing.T) {
	journal := &uuidJournal{MemoryJournal: database.NewMemoryJournal()}
	out := &bytes.Buffer{}

	NewRunsHandler(journal, zap.NewNop(), out).Show(context.Background(), "missing")

	assert.Contains(t, out.String(), "Запуск не найден")
	assert.NotContains(t, out.String(), "Ошибка чтения журнала")
	assert.Zero(t, journal.lookups)
}

func TestShow_UnknownRun(t *testing.T) {
	out := &bytes.Buffer{}

	NewRunsHandler(database.NewMemoryJournal(), zap.NewNop(), out).
		Show(context.Background(), "6f1c1f7e-6b3a-4a4f-9a55-0d8f3c1e2b11")

	assert.Contains(t, out.String(), "Запуск не найден")
}
