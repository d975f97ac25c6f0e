// Package cli - интерактивная консоль: поиск по компании, просмотр вакансий и журнала.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"jobAgent/internal/cli/commands"
	"jobAgent/internal/cli/ui"
	"jobAgent/internal/database"
	"jobAgent/internal/document"
	"jobAgent/internal/logger"

	"github.com/chzyer/readline"
)

// Pipeline - то, что нужно консоли от запущенного пайплайна.
type Pipeline interface {
	commands.Runner
	CV() *document.Text
	Journal() database.Journal
}

type CLI struct {
	log         *logger.Zap
	out         io.Writer
	ledgerPath  string
	cv          func() *document.Text
	rl          *readline.Instance
	in          *bufio.Reader
	search      *commands.SearchHandler
	jobsHandler *commands.JobsHandler
	runsHandler *commands.RunsHandler
}

func New(p Pipeline, jobs commands.JobReader, ledgerPath string, log *logger.Zap) *CLI {
	c := newCLI(p, jobs, ledgerPath, log, os.Stdout)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".job-agent-history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Warn("Не удалось инициализировать readline, будет использован fallback режим")
		c.in = bufio.NewReader(os.Stdin)
	} else {
		c.rl = rl
	}
	return c
}

func newCLI(p Pipeline, jobs commands.JobReader, ledgerPath string, log *logger.Zap, out io.Writer) *CLI {
	return &CLI{
		log:         log,
		out:         out,
		ledgerPath:  ledgerPath,
		cv:          p.CV,
		search:      commands.NewSearchHandler(p, out),
		jobsHandler: commands.NewJobsHandler(jobs, p.CV, log.Logger, out),
		runsHandler: commands.NewRunsHandler(p.Journal(), log.Logger, out),
	}
}

func (c *CLI) readLine() (string, error) {
	if c.rl != nil {
		return c.rl.Readline()
	}
	fmt.Fprint(c.out, ui.ColorCyan+"> "+ui.ColorReset)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *CLI) Run(ctx context.Context) {
	cvPath := ""
	if cv := c.cv(); cv != nil {
		cvPath = cv.Path
	}
	ui.PrintWelcome(c.out, cvPath, c.ledgerPath)
	defer func() {
		if c.rl != nil {
			c.rl.Close()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out, "\n"+ui.ColorCyan+ui.IconWave+" Получен сигнал завершения..."+ui.ColorReset)
			return
		default:
		}

		line, err := c.readLine()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !c.handleCommand(ctx, line) {
			return
		}
	}
}

// handleCommand возвращает false, когда консоль нужно закрыть.
func (c *CLI) handleCommand(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "exit", "quit":
		fmt.Fprintln(c.out, ui.ColorCyan+ui.IconWave+" До свидания!"+ui.ColorReset)
		return false
	case "clear":
		ui.ClearScreen()
	case "search":
		c.search.Search(ctx, arg)
	case "jobs":
		c.jobsHandler.List(ctx)
	case "cv":
		c.jobsHandler.ShowCV()
	case "runs":
		c.runsHandler.List(ctx)
	case "show":
		c.runsHandler.Show(ctx, arg)
	default:
		ui.PrintHelp(c.out)
	}
	return true
}
