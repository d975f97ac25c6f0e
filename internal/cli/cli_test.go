package cli

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"jobAgent/internal/database"
	"jobAgent/internal/document"
	"jobAgent/internal/ledger"
	"jobAgent/internal/logger"
	"jobAgent/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePipeline struct {
	journal *database.MemoryJournal
	store   *ledger.Store
	cv      *document.Text
}

func (f *fakePipeline) RunOne(ctx context.Context, company string) pipeline.Result {
	runID := "11111111-2222-3333-4444-555555555555"
	_ = f.journal.StartRun(ctx, &database.Run{ID: runID, Company: company, Task: "find"})
	_ = f.journal.RecordStep(ctx, &database.Step{RunID: runID, StepNo: 1, Action: "save_jobs", Result: "Saved job to file"})
	_ = f.journal.FinishRun(ctx, runID, database.StatusCompleted, "saved 1 job", "")
	_, _ = f.store.Append(ctx, ledger.Job{Title: "ML Intern", Company: company, Link: "https://jobs/1", FitScore: 0.8})
	return pipeline.Result{RunID: runID, Company: company, Status: database.StatusCompleted, Summary: "saved 1 job", Steps: 1}
}

func (f *fakePipeline) CV() *document.Text { return f.cv }
func (f *fakePipeline) Journal() database.Journal { return f.journal }

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.csv")
	p := &fakePipeline{
		journal: database.NewMemoryJournal(),
		store:   ledger.New(path, ledger.Options{}, nil),
		cv:      &document.Text{Path: "cv.pdf", Content: "Python. Contact: jane@example.com", Pages: 1, Chars: 33},
	}
	out := &bytes.Buffer{}
	c := newCLI(p, p.store, path, logger.Nop(), out)
	c.in = bufio.NewReader(strings.NewReader(input))
	return c, out
}

func TestRun_SearchThenJobsAndRuns(t *testing.T) {
	c, out := newTestCLI(t, "search Google\njobs\nruns\nshow 11111111-2222-3333-4444-555555555555\nexit\nsearch Meta\n")

	c.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Поиск вакансий:")
	assert.Contains(t, text, "saved 1 job")
	assert.Contains(t, text, "ML Intern")
	assert.Contains(t, text, "https://jobs/1")
	assert.Contains(t, text, "[Шаг 1]")
	assert.Contains(t, text, "До свидания!")
	assert.NotContains(t, text, "Meta")
}

func TestRun_CVMasksContacts(t *testing.T) {
	c, out := newTestCLI(t, "cv\n")

	c.Run(context.Background())

	assert.Contains(t, out.String(), "Python.")
	assert.NotContains(t, out.String(), "jane@example.com")
}

func TestRun_UnknownCommandPrintsHelp(t *testing.T) {
	c, out := newTestCLI(t, "apply everywhere\nshow missing\n")

	c.Run(context.Background())

	assert.Contains(t, out.String(), "Доступные команды")
	assert.Contains(t, out.String(), "Запуск не найден")
}

func TestRun_StopsOnCancelledContext(t *testing.T) {
	c, out := newTestCLI(t, "jobs\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c.Run(ctx)
	require.Contains(t, out.String(), "Получен сигнал завершения")
	assert.NotContains(t, out.String(), "Вакансий пока нет")
}
