package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobAgent/internal/actions"
	"jobAgent/internal/database"
	"jobAgent/internal/ledger"
	"jobAgent/internal/llm"
	"jobAgent/internal/logger"
	"jobAgent/internal/sanitizer"
	"jobAgent/internal/scoring"

	"go.uber.org/zap"
)

// Длина результата шага в журнале.
const maxJournalResult = 2000

var _ scoring.Collaborator = (*Agent)(nil)

// New создает агента. journal может быть nil, тогда шаги не журналируются.
func New(client llm.ChatClient, journal database.Journal, log *logger.Zap, cfg Config) *Agent {
	if log == nil {
		log = logger.Nop()
	}
	return &Agent{
		llm:       client,
		journal:   journal,
		log:       log.Named("agent"),
		sanitizer: sanitizer.New(),
		breaker:   NewCircuitBreaker(5, 30*time.Second),
		cfg:       cfg.withDefaults(),
	}
}

// Evaluate ведет диалог с моделью: состояние страницы -> вызовы функций -> результаты,
// пока модель не вызовет done или не кончатся шаги.
func (a *Agent) Evaluate(ctx context.Context, as scoring.Assignment) (scoring.Outcome, error) {
	log := a.log.With(zap.String("run_id", as.RunID), zap.String("company", as.Company))
	mem := newMemory(as.Task, a.cfg.MaxToolOutput)

	for stepNo := 1; stepNo <= a.cfg.MaxSteps; stepNo++ {
		if err := ctx.Err(); err != nil {
			log.Info("Выполнение отменено через контекст", zap.Int("step", stepNo))
			return scoring.Outcome{Steps: stepNo - 1}, err
		}

		state := a.pageState(ctx, as.Page)

		reply, err := a.complete(ctx, llm.Request{
			RunID:    as.RunID,
			StepNo:   stepNo,
			Messages: mem.request(state),
			Tools:    llm.Tools(),
		})
		if err != nil {
			log.Error("Ошибка запроса к LLM", zap.Int("step", stepNo), zap.Error(err))
			return scoring.Outcome{Steps: stepNo - 1}, fmt.Errorf("шаг %d: %w", stepNo, err)
		}
		mem.addAssistant(reply.Message)

		if reply.Done() {
			// Модель ответила текстом без действий: считаем это завершением
			a.record(ctx, as.RunID, stepNo, llm.ToolDone, "", actions.Result{Content: reply.Message.Content})
			log.Info("Агент завершил работу", zap.Int("steps", stepNo))
			return scoring.Outcome{Summary: reply.Message.Content, Steps: stepNo}, nil
		}

		var (
			finished bool
			summary  string
		)
		for _, call := range reply.Calls {
			res := a.execute(ctx, as, call)
			a.record(ctx, as.RunID, stepNo, call.Name, call.Raw, res)
			mem.addResult(call.ID, res)

			if res.Err != nil {
				log.Info("Действие вернуло ошибку", zap.Int("step", stepNo), zap.String("action", call.Name), zap.Error(res.Err))
			} else {
				log.Debug("Действие выполнено", zap.Int("step", stepNo), zap.String("action", call.Name))
			}

			if call.Name == llm.ToolDone {
				finished = true
				summary = call.Args.Summary
			}
		}
		if finished {
			log.Info("Агент завершил работу", zap.Int("steps", stepNo), zap.String("summary", summary))
			return scoring.Outcome{Summary: summary, Steps: stepNo}, nil
		}
	}

	log.Warn("Достигнут лимит шагов", zap.Int("max_steps", a.cfg.MaxSteps))
	return scoring.Outcome{Steps: a.cfg.MaxSteps}, fmt.Errorf("%w (%d)", ErrStepLimit, a.cfg.MaxSteps)
}

func (a *Agent) complete(ctx context.Context, req llm.Request) (*llm.Reply, error) {
	var reply *llm.Reply
	err := a.breaker.Call(ctx, func() error {
		return retryAction(ctx, a.cfg.Retries, a.cfg.RetryDelay, func() error {
			r, err := a.llm.Complete(ctx, req)
			if err != nil {
				return err
			}
			reply = r
			return nil
		})
	})
	return reply, err
}

// execute выполняет один вызов функции. Ошибки возвращаются модели как значения.
func (a *Agent) execute(ctx context.Context, as scoring.Assignment, call llm.ToolCall) actions.Result {
	if call.Err != nil {
		return actions.Result{Err: call.Err}
	}

	switch call.Name {
	case llm.ToolNavigate:
		if call.Args.URL == "" {
			return actions.Result{Err: errors.New("navigate requires url")}
		}
		if err := a.pageAction(ctx, call.Name, func() error { return as.Page.Navigate(ctx, call.Args.URL) }); err != nil {
			return actions.Result{Err: err}
		}
		return actions.Result{Content: "Navigated to " + call.Args.URL}

	case llm.ToolClick:
		idx, err := call.RequireIndex()
		if err != nil {
			return actions.Result{Err: err}
		}
		if err := a.logPageError(call.Name, as.Page.Click(ctx, idx)); err != nil {
			return actions.Result{Err: err}
		}
		return actions.Result{Content: fmt.Sprintf("Clicked element %d", idx)}

	case llm.ToolType:
		idx, err := call.RequireIndex()
		if err != nil {
			return actions.Result{Err: err}
		}
		if err := a.logPageError(call.Name, as.Page.Type(ctx, idx, call.Args.Text)); err != nil {
			return actions.Result{Err: err}
		}
		return actions.Result{Content: fmt.Sprintf("Typed into element %d", idx)}

	case llm.ToolScroll:
		down := call.Args.Direction != "up"
		if err := a.pageAction(ctx, call.Name, func() error { return as.Page.Scroll(ctx, down) }); err != nil {
			return actions.Result{Err: err}
		}
		if down {
			return actions.Result{Content: "Scrolled down"}
		}
		return actions.Result{Content: "Scrolled up"}

	case llm.ToolReadCV:
		return as.Actions.ReadCV(ctx)

	case llm.ToolReadJobs:
		return as.Actions.ReadJobs(ctx)

	case llm.ToolSaveJob:
		company := call.Args.Company
		if company == "" {
			company = as.Company
		}
		job, err := ledger.NewJob(call.Args.Title, call.Args.Link, company, call.Args.FitScore, call.Args.Location, call.Args.Salary)
		if err != nil {
			return actions.Result{Err: err}
		}
		return as.Actions.SaveJob(ctx, job)

	case llm.ToolUploadCV:
		idx, err := call.RequireIndex()
		if err != nil {
			return actions.Result{Err: err}
		}
		return as.Actions.UploadCV(ctx, idx)

	case llm.ToolDone:
		return actions.Result{Content: call.Args.Summary}

	default:
		return actions.Result{Err: fmt.Errorf("unknown action %q", call.Name)}
	}
}

// pageAction повторяет только переход и прокрутку. Клик и ввод выполняются один раз.
func (a *Agent) pageAction(ctx context.Context, action string, fn func() error) error {
	return a.logPageError(action, retryAction(ctx, a.cfg.Retries, a.cfg.RetryDelay, fn))
}

func (a *Agent) logPageError(action string, err error) error {
	if err != nil {
		actionErr := classifyError(action, err)
		a.log.Debug("Ошибка действия в браузере", zap.String("action", action), zap.String("error_type", actionErr.Type.String()), zap.Error(err))
	}
	return err
}

func (a *Agent) record(ctx context.Context, runID string, stepNo int, action, args string, res actions.Result) {
	if a.journal == nil {
		return
	}
	step := &database.Step{
		RunID:     runID,
		StepNo:    stepNo,
		Action:    action,
		Arguments: a.sanitizer.Sanitize(args),
		Result:    sanitizer.Truncate(a.sanitizer.Sanitize(res.Text()), maxJournalResult),
		IsError:   res.Err != nil,
	}
	if err := a.journal.RecordStep(ctx, step); err != nil {
		a.log.Error("Ошибка сохранения шага", zap.String("run_id", runID), zap.Int("step", stepNo), zap.Error(err))
	}
}
