// Package pipeline связывает резюме, реестр вакансий, браузер и агента
// в один запуск поиска по списку компаний.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"jobAgent/internal/actions"
	"jobAgent/internal/browser"
	"jobAgent/internal/config"
	"jobAgent/internal/database"
	"jobAgent/internal/document"
	"jobAgent/internal/ledger"
	"jobAgent/internal/logger"
	"jobAgent/internal/scoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrNotStarted = errors.New("пайплайн не запущен, вызовите Start")

// Result - итог одного вызова агента для компании.
type Result struct {
	RunID   string
	Company string
	Status  string
	Summary string
	Steps   int
	Err     error
}

// Context владеет общими ресурсами запуска: резюме, реестром и браузером.
// Вызовы для разных компаний работают параллельно в своих вкладках.
type Context struct {
	cfg          *config.Cfg
	log          *logger.Zap
	browser      browser.Browser
	collaborator scoring.Collaborator
	journal      database.Journal
	store        *ledger.Store

	// extract подменяется в тестах
	extract func(path string) (*document.Text, error)

	mu        sync.RWMutex
	cv        *document.Text
	started   bool
	closeOnce sync.Once
	closeErr  error
}

func NewContext(cfg *config.Cfg, log *logger.Zap, br browser.Browser, collaborator scoring.Collaborator, journal database.Journal) *Context {
	if log == nil {
		log = logger.Nop()
	}
	if journal == nil {
		journal = database.NewMemoryJournal()
	}
	return &Context{
		cfg:          cfg,
		log:          log.Named("pipeline"),
		browser:      br,
		collaborator: collaborator,
		journal:      journal,
		store: ledger.New(cfg.Pipeline.LedgerPath, ledger.Options{
			Dedup: ledger.DedupPolicy(cfg.Pipeline.Dedup),
			Score: ledger.ScorePolicy(cfg.Pipeline.ScorePolicy),
		}, log),
		extract: document.ExtractText,
	}
}

// LoadCV находит и читает резюме без браузера и сети.
// Ошибки возвращаются как *config.ConfigurationError.
func LoadCV(cfg config.Pipeline, log *logger.Zap) (*document.Text, error) {
	if log == nil {
		log = logger.Nop()
	}
	return loadCV(cfg, document.ExtractText, log)
}

func loadCV(cfg config.Pipeline, extract func(string) (*document.Text, error), log *logger.Zap) (*document.Text, error) {
	candidates := document.Candidates(cfg.CVFile, cfg.CVSubdir)
	path, err := document.ResolvePath(candidates)
	if err != nil {
		return nil, &config.ConfigurationError{Key: "CV_FILE", Reason: "резюме не найдено", Err: err}
	}

	cv, err := extract(path)
	if err != nil {
		return nil, &config.ConfigurationError{Key: "CV_FILE", Reason: "не удалось прочитать резюме " + path, Err: err}
	}
	if strings.TrimSpace(cv.Content) == "" {
		log.Warn("В резюме не найден текст", zap.String("path", path))
	}
	log.Info("Резюме загружено", zap.String("path", path), zap.Int("pages", cv.Pages), zap.Int("chars", cv.Chars))
	return cv, nil
}

// WithCV передает заранее загруженное резюме, Start тогда его не перечитывает.
func (c *Context) WithCV(cv *document.Text) *Context {
	c.mu.Lock()
	c.cv = cv
	c.mu.Unlock()
	return c
}

// Start читает резюме, если оно не передано через WithCV, затем запускает браузер.
// Ошибки резюме возвращаются как *config.ConfigurationError до любых действий в браузере.
func (c *Context) Start(ctx context.Context) error {
	cv := c.CV()
	if cv == nil {
		var err error
		if cv, err = loadCV(c.cfg.Pipeline, c.extract, c.log); err != nil {
			return err
		}
	}

	if err := c.browser.Launch(ctx); err != nil {
		return fmt.Errorf("ошибка запуска браузера: %w", err)
	}

	c.mu.Lock()
	c.cv = cv
	c.started = true
	c.mu.Unlock()
	return nil
}

// Run запускает по одному вызову на компанию, не больше Pipeline.Concurrency одновременно.
// Ошибка одного вызова не останавливает остальные. Уже записанные вакансии при отмене остаются.
func (c *Context) Run(ctx context.Context, companies []string) ([]Result, error) {
	if !c.isStarted() {
		return nil, ErrNotStarted
	}

	results := make([]Result, len(companies))

	var g errgroup.Group
	if n := c.cfg.Pipeline.Concurrency; n > 0 {
		g.SetLimit(n)
	}
	for i, company := range companies {
		g.Go(func() error {
			results[i] = c.RunOne(ctx, company)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	c.log.Info("Запуск завершен", zap.Int("companies", len(companies)), zap.Int("failed", failed))

	return results, ctx.Err()
}

// RunOne - один вызов агента для компании в отдельной вкладке.
func (c *Context) RunOne(ctx context.Context, company string) Result {
	return c.RunWithID(ctx, uuid.NewString(), company)
}

// RunWithID как RunOne, но с заранее выданным идентификатором запуска.
func (c *Context) RunWithID(ctx context.Context, runID, company string) Result {
	res := Result{RunID: runID, Company: company}
	if !c.isStarted() {
		res.Status, res.Err = database.StatusFailed, ErrNotStarted
		return res
	}

	log := c.log.With(zap.String("run_id", res.RunID), zap.String("company", company))
	task := BuildTask(c.cfg.Pipeline.GroundTask, company)

	if err := c.journal.StartRun(ctx, &database.Run{ID: res.RunID, Company: company, Task: task}); err != nil {
		log.Error("Ошибка записи запуска в журнал", zap.Error(err))
	}
	log.Info("Поиск по компании начат")

	res.Summary, res.Steps, res.Err = c.evaluate(ctx, res.RunID, company, task)

	switch {
	case res.Err == nil:
		res.Status = database.StatusCompleted
		log.Info("Поиск по компании завершен", zap.Int("steps", res.Steps))
	case ctx.Err() != nil:
		res.Status = database.StatusCancelled
		log.Warn("Поиск по компании отменен", zap.Error(res.Err))
	default:
		res.Status = database.StatusFailed
		log.Error("Поиск по компании завершился ошибкой", zap.Error(res.Err))
	}

	errMsg := ""
	if res.Err != nil {
		errMsg = res.Err.Error()
	}
	if err := c.journal.FinishRun(context.WithoutCancel(ctx), res.RunID, res.Status, res.Summary, errMsg); err != nil {
		log.Error("Ошибка записи итога в журнал", zap.Error(err))
	}
	return res
}

func (c *Context) evaluate(ctx context.Context, runID, company, task string) (string, int, error) {
	page, err := c.browser.NewPage(ctx)
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if err := page.Close(); err != nil {
			c.log.Debug("Ошибка закрытия вкладки", zap.String("run_id", runID), zap.Error(err))
		}
	}()

	cv := c.CV()
	acts := actions.New(cv, c.store, page, c.log.With(zap.String("run_id", runID)))

	out, err := c.collaborator.Evaluate(ctx, scoring.Assignment{
		RunID:   runID,
		Company: company,
		Task:    task,
		CV:      *cv,
		Page:    page,
		Actions: acts,
	})
	return out.Summary, out.Steps, err
}

// Close освобождает браузер. Повторные вызовы возвращают результат первого.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.started = false
		c.mu.Unlock()
		c.closeErr = c.browser.Close()
		if c.closeErr != nil {
			c.log.Error("Ошибка закрытия браузера", zap.Error(c.closeErr))
		}
	})
	return c.closeErr
}

func (c *Context) isStarted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.started
}

// CV возвращает прочитанное резюме или nil до Start.
func (c *Context) CV() *document.Text {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cv
}

func (c *Context) Ledger() *ledger.Store {
	return c.store
}

func (c *Context) Journal() database.Journal {
	return c.journal
}

// BuildTask дописывает компанию к базовой задаче. Текст дальше не разбирается.
func BuildTask(ground, company string) string {
	ground = strings.TrimSpace(ground)
	if ground == "" {
		return company
	}
	return ground + " " + company
}
