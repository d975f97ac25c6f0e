package commands

import (
	"context"
	"fmt"
	"io"

	"jobAgent/internal/cli/ui"
	"jobAgent/internal/document"
	"jobAgent/internal/ledger"
	"jobAgent/internal/sanitizer"

	"go.uber.org/zap"
)

type JobReader interface {
	Jobs(ctx context.Context) ([]ledger.Job, error)
}

// JobsHandler печатает сохраненные вакансии и резюме
type JobsHandler struct {
	jobs JobReader
	cv   func() *document.Text
	log  *zap.Logger
	out  io.Writer
}

func NewJobsHandler(jobs JobReader, cv func() *document.Text, log *zap.Logger, out io.Writer) *JobsHandler {
	return &JobsHandler{jobs: jobs, cv: cv, log: log, out: out}
}

func (h *JobsHandler) List(ctx context.Context) {
	jobs, err := h.jobs.Jobs(ctx)
	if err != nil {
		h.log.Error("Ошибка чтения вакансий", zap.Error(err))
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Ошибка чтения вакансий"+ui.ColorReset)
		return
	}
	if len(jobs) == 0 {
		fmt.Fprintln(h.out, ui.ColorGray+"Вакансий пока нет"+ui.ColorReset)
		return
	}

	fmt.Fprintf(h.out, "\n"+ui.ColorBold+ui.IconList+" Вакансии (%d):"+ui.ColorReset+"\n\n", len(jobs))
	for i, j := range jobs {
		fmt.Fprintf(h.out, "  "+ui.ColorBold+"%d."+ui.ColorReset+" %s "+ui.ColorGray+"@"+ui.ColorReset+" %s\n", i+1, j.Title, j.Company)
		if j.Location != "" || j.Salary != "" {
			fmt.Fprintf(h.out, "     %s %s\n", j.Location, j.Salary)
		}
		fmt.Fprintf(h.out, "     "+ui.ColorGray+"└─"+ui.ColorReset+" %s\n", j.Link)
	}
	fmt.Fprintln(h.out)
}

// ShowCV печатает начало резюме без контактов.
func (h *JobsHandler) ShowCV() {
	cv := h.cv()
	if cv == nil {
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Резюме не загружено"+ui.ColorReset)
		return
	}
	fmt.Fprintf(h.out, "\n"+ui.ColorBold+ui.IconDocument+" %s"+ui.ColorReset+" (страниц: %d, символов: %d)\n\n", cv.Path, cv.Pages, cv.Chars)
	fmt.Fprintln(h.out, sanitizer.Truncate(sanitizer.New().Sanitize(cv.Content), 1500))
	fmt.Fprintln(h.out)
}
