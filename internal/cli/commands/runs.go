package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"jobAgent/internal/cli/ui"
	"jobAgent/internal/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunsHandler показывает журнал запусков
type RunsHandler struct {
	journal database.Journal
	log     *zap.Logger
	out     io.Writer
}

func NewRunsHandler(journal database.Journal, log *zap.Logger, out io.Writer) *RunsHandler {
	return &RunsHandler{journal: journal, log: log, out: out}
}

func (h *RunsHandler) List(ctx context.Context) {
	runs, err := h.journal.ListRuns(ctx, 20)
	if err != nil {
		h.log.Error("Ошибка чтения журнала", zap.Error(err))
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Ошибка чтения журнала"+ui.ColorReset)
		return
	}
	if len(runs) == 0 {
		fmt.Fprintln(h.out, ui.ColorGray+"Запусков пока не было"+ui.ColorReset)
		return
	}

	fmt.Fprintln(h.out, "\n"+ui.ColorBold+ui.IconList+" Запуски:"+ui.ColorReset)
	fmt.Fprintln(h.out)
	for _, r := range runs {
		icon, color, text := ui.FormatStatus(r.Status)
		fmt.Fprintf(h.out, "  "+ui.ColorBold+"%s"+ui.ColorReset+" %s%s %s"+ui.ColorReset+"\n", r.ID, color, icon, text)
		fmt.Fprintf(h.out, "  "+ui.ColorGray+"└─"+ui.ColorReset+" %s, %s\n", r.Company, r.StartedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintln(h.out)
	}
}

// Show выводит запуск со всеми шагами
func (h *RunsHandler) Show(ctx context.Context, id string) {
	if _, err := uuid.Parse(id); err != nil {
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Запуск не найден"+ui.ColorReset)
		return
	}

	run, steps, err := h.journal.GetRun(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrRunNotFound) {
			fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Запуск не найден"+ui.ColorReset)
			return
		}
		h.log.Error("Ошибка чтения журнала", zap.Error(err))
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Ошибка чтения журнала"+ui.ColorReset)
		return
	}

	_, _, statusText := ui.FormatStatus(run.Status)
	fmt.Fprintf(h.out, "\n"+ui.ColorBold+"=== Запуск %s ==="+ui.ColorReset+"\n", run.ID)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconDocument+" Компания:"+ui.ColorReset+" %s\n", run.Company)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconClock+" Статус:"+ui.ColorReset+" %s\n", statusText)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconTime+" Начат:"+ui.ColorReset+" %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if run.Summary != "" {
		fmt.Fprintf(h.out, ui.ColorCyan+ui.IconChat+" Итог:"+ui.ColorReset+" %s\n", run.Summary)
	}
	if run.Error != "" {
		fmt.Fprintf(h.out, ui.ColorRed+ui.IconCross+" Ошибка:"+ui.ColorReset+" %s\n", run.Error)
	}

	if len(steps) == 0 {
		fmt.Fprintln(h.out, "\n"+ui.ColorGray+"Шаги не найдены"+ui.ColorReset)
		fmt.Fprintln(h.out)
		return
	}

	fmt.Fprintf(h.out, "\n"+ui.ColorYellow+ui.IconLoop+" Шаги (%d):"+ui.ColorReset+"\n", len(steps))
	for _, step := range steps {
		fmt.Fprintf(h.out, "\n"+ui.ColorBold+"[Шаг %d]"+ui.ColorReset+" "+ui.ColorCyan+"%s"+ui.ColorReset+"\n", step.StepNo, step.Action)
		if step.Arguments != "" {
			fmt.Fprintf(h.out, "  "+ui.ColorGray+"Аргументы:"+ui.ColorReset+" %s\n", step.Arguments)
		}
		if step.Result != "" {
			resultColor := ui.ColorGreen
			if step.IsError {
				resultColor = ui.ColorRed
			}
			fmt.Fprintf(h.out, "  %sРезультат:"+ui.ColorReset+" %s\n", resultColor, step.Result)
		}
	}
	fmt.Fprintln(h.out)
}
