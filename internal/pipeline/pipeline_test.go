package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobAgent/internal/browser"
	"jobAgent/internal/config"
	"jobAgent/internal/database"
	"jobAgent/internal/document"
	"jobAgent/internal/ledger"
	"jobAgent/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct{ closed atomic.Bool }

func (p *fakePage) Navigate(ctx context.Context, url string) error { return nil }
func (p *fakePage) Click(ctx context.Context, index int) error { return nil }
func (p *fakePage) Type(ctx context.Context, index int, text string) error { return nil }
func (p *fakePage) Scroll(ctx context.Context, down bool) error { return nil }
func (p *fakePage) Snapshot(ctx context.Context) (*browser.PageSnapshot, error) {
	return &browser.PageSnapshot{}, nil
}
func (p *fakePage) Resolve(ctx context.Context, index int) (browser.Element, error) {
	return nil, nil
}
func (p *fakePage) Close() error {
	p.closed.Store(true)
	return nil
}

type fakeBrowser struct {
	mu       sync.Mutex
	launched int
	closed   int
	pages    []*fakePage
}

func (b *fakeBrowser) Launch(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.launched++
	return nil
}

func (b *fakeBrowser) NewPage(ctx context.Context) (browser.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := &fakePage{}
	b.pages = append(b.pages, p)
	return p, nil
}

func (b *fakeBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed++
	return nil
}

// savingCollaborator сохраняет одну вакансию на компанию, для "Broken" возвращает ошибку.
type savingCollaborator struct {
	active    atomic.Int32
	maxActive atomic.Int32
	delay     time.Duration
}

func (s *savingCollaborator) Evaluate(ctx context.Context, a scoring.Assignment) (scoring.Outcome, error) {
	n := s.active.Add(1)
	defer s.active.Add(-1)
	for {
		m := s.maxActive.Load()
		if n <= m || s.maxActive.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(s.delay)

	if a.Company == "Broken" {
		return scoring.Outcome{Steps: 1}, errors.New("llm unavailable")
	}
	if res := a.Actions.ReadCV(ctx); res.Err != nil || res.Content == "" {
		return scoring.Outcome{}, errors.New("cv not available")
	}
	if res := a.Actions.SaveJob(ctx, ledger.Job{Title: "ML Intern", Company: a.Company, Link: "https://jobs/" + a.Company, FitScore: 0.7}); res.Err != nil {
		return scoring.Outcome{}, res.Err
	}
	return scoring.Outcome{Summary: "saved", Steps: 2}, nil
}

func testConfig(t *testing.T) *config.Cfg {
	t.Helper()
	dir := t.TempDir()
	cv := filepath.Join(dir, "cv.pdf")
	require.NoError(t, os.WriteFile(cv, []byte("%PDF"), 0o644))

	return &config.Cfg{Pipeline: config.Pipeline{
		CVFile:      cv,
		LedgerPath:  filepath.Join(dir, "jobs.csv"),
		Dedup:       "none",
		ScorePolicy: "accept",
		GroundTask:  "Find ml internships at company:",
		Concurrency: 2,
	}}
}

func newTestContext(cfg *config.Cfg, br browser.Browser, collab scoring.Collaborator, journal database.Journal) *Context {
	c := NewContext(cfg, nil, br, collab, journal)
	c.extract = func(path string) (*document.Text, error) {
		return &document.Text{Path: path, Content: "Python, PyTorch", Pages: 1, Chars: 15}, nil
	}
	return c
}

func TestStart_MissingCVIsConfigurationError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pipeline.CVFile = filepath.Join(t.TempDir(), "absent.pdf")
	br := &fakeBrowser{}

	err := newTestContext(cfg, br, &savingCollaborator{}, nil).Start(context.Background())

	var cfgErr *config.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "CV_FILE", cfgErr.Key)
	var nf *document.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Zero(t, br.launched)
}

func TestStart_UnreadableCVIsConfigurationError(t *testing.T) {
	cfg := testConfig(t)
	br := &fakeBrowser{}
	c := newTestContext(cfg, br, &savingCollaborator{}, nil)
	c.extract = func(string) (*document.Text, error) { return nil, errors.New("malformed PDF") }

	err := c.Start(context.Background())

	var cfgErr *config.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Zero(t, br.launched)
}

func TestLoadCV_MissingIsConfigurationError(t *testing.T) {
	cv, err := LoadCV(config.Pipeline{CVFile: filepath.Join(t.TempDir(), "absent.pdf")}, nil)

	assert.Nil(t, cv)
	var cfgErr *config.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "CV_FILE", cfgErr.Key)
}

func TestStart_WithCVSkipsExtraction(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pipeline.CVFile = filepath.Join(t.TempDir(), "absent.pdf")
	br := &fakeBrowser{}
	c := newTestContext(cfg, br, &savingCollaborator{}, nil)
	c.extract = func(string) (*document.Text, error) {
		t.Fatal("резюме уже загружено")
		return nil, nil
	}

	require.NoError(t, c.WithCV(&document.Text{Content: "Go"}).Start(context.Background()))
	assert.Equal(t, 1, br.launched)
	assert.Equal(t, "Go", c.CV().Content)
}

func TestRun_BeforeStart(t *testing.T) {
	c := newTestContext(testConfig(t), &fakeBrowser{}, &savingCollaborator{}, nil)

	_, err := c.Run(context.Background(), []string{"Google"})
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestRun_ConcurrentCompanies(t *testing.T) {
	cfg := testConfig(t)
	br := &fakeBrowser{}
	collab := &savingCollaborator{delay: 20 * time.Millisecond}
	journal := database.NewMemoryJournal()
	c := newTestContext(cfg, br, collab, journal)
	ctx := context.Background()

	require.NoError(t, c.Start(ctx))
	defer c.Close()

	companies := []string{"Google", "Broken", "Meta", "Apple", "Nvidia"}
	results, err := c.Run(ctx, companies)
	require.NoError(t, err)
	require.Len(t, results, len(companies))

	for i, r := range results {
		assert.Equal(t, companies[i], r.Company)
		assert.NotEmpty(t, r.RunID)
		if r.Company == "Broken" {
			assert.Error(t, r.Err)
			assert.Equal(t, database.StatusFailed, r.Status)
		} else {
			assert.NoError(t, r.Err)
			assert.Equal(t, database.StatusCompleted, r.Status)
		}
	}

	assert.LessOrEqual(t, collab.maxActive.Load(), int32(2))
	assert.Equal(t, 1, br.launched)
	for _, p := range br.pages {
		assert.True(t, p.closed.Load())
	}

	jobs, err := c.Ledger().Jobs(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 4)

	runs, err := journal.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, len(companies))

	run, _, err := journal.GetRun(ctx, results[1].RunID)
	require.NoError(t, err)
	assert.Equal(t, database.StatusFailed, run.Status)
	assert.Contains(t, run.Error, "llm unavailable")
}

func TestRun_CancelledKeepsWrittenRows(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pipeline.Concurrency = 1
	collab := &savingCollaborator{}
	c := newTestContext(cfg, &fakeBrowser{}, collab, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, c.Start(ctx))

	results, err := c.Run(ctx, []string{"Google"})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)

	cancel()
	results, err = c.Run(ctx, []string{"Meta"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, database.StatusCancelled, results[0].Status)

	jobs, err := c.Ledger().Jobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Google", jobs[0].Company)
}

func TestClose_Idempotent(t *testing.T) {
	br := &fakeBrowser{}
	c := newTestContext(testConfig(t), br, &savingCollaborator{}, nil)
	require.NoError(t, c.Start(context.Background()))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, br.closed)

	_, err := c.Run(context.Background(), []string{"Google"})
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestBuildTask(t *testing.T) {
	assert.Equal(t, "Search at company: Google", BuildTask("Search at company: ", "Google"))
	assert.Equal(t, "Google", BuildTask("  ", "Google"))
}
