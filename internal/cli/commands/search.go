package commands

import (
	"context"
	"fmt"
	"io"

	"jobAgent/internal/cli/ui"
	"jobAgent/internal/pipeline"
)

// Runner запускает поиск по одной компании.
type Runner interface {
	RunOne(ctx context.Context, company string) pipeline.Result
}

// SearchHandler запускает агента для компании и печатает итог
type SearchHandler struct {
	runner Runner
	out    io.Writer
}

func NewSearchHandler(runner Runner, out io.Writer) *SearchHandler {
	return &SearchHandler{runner: runner, out: out}
}

func (h *SearchHandler) Search(ctx context.Context, company string) {
	if company == "" {
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Укажите компанию: search <компания>"+ui.ColorReset)
		return
	}

	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconPlay+" Поиск вакансий:"+ui.ColorReset+" %s\n", company)
	res := h.runner.RunOne(ctx, company)

	icon, color, text := ui.FormatStatus(res.Status)
	fmt.Fprintf(h.out, "%s%s Запуск %s %s"+ui.ColorReset+" (шагов: %d)\n", color, icon, res.RunID, text, res.Steps)
	if res.Summary != "" {
		fmt.Fprintf(h.out, "  "+ui.ColorCyan+ui.IconChat+ui.ColorReset+" %s\n", res.Summary)
	}
	if res.Err != nil {
		fmt.Fprintf(h.out, "  "+ui.ColorRed+"Ошибка:"+ui.ColorReset+" %v\n", res.Err)
	}
}
