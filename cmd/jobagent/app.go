package main

import (
	"context"
	"fmt"

	"jobAgent/internal/agent"
	"jobAgent/internal/browser"
	"jobAgent/internal/config"
	"jobAgent/internal/database"
	"jobAgent/internal/llm"
	"jobAgent/internal/logger"
	"jobAgent/internal/migrations"
	"jobAgent/internal/pipeline"

	"go.uber.org/zap"
)

// app - собранный пайплайн со всеми зависимостями.
type app struct {
	cfg          *config.Cfg
	log          *logger.Zap
	pipe         *pipeline.Context
	journal      database.Journal
	closeJournal func()
}

func bootstrap(ctx context.Context, override func(*config.Cfg)) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level, cfg.Logger.File)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации логгера: %w", err)
	}

	// Резюме проверяется до подключения к базе и запуска браузера.
	cv, err := pipeline.LoadCV(cfg.Pipeline, log)
	if err != nil {
		log.Error("Ошибка загрузки резюме", zap.Error(err))
		_ = log.Sync()
		return nil, err
	}

	if err := migrations.Run(cfg, log); err != nil {
		_ = log.Sync()
		return nil, err
	}

	journal, closeJournal, err := database.OpenJournal(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	client := llm.NewClient(cfg.OpenAI, journal)
	ag := agent.New(client, journal, log, agent.Config{MaxSteps: cfg.Pipeline.MaxSteps})

	br := browser.New(browser.Config{
		Headless:    cfg.Browser.Headless,
		UserDataDir: cfg.Browser.UserDataDir,
		Display:     cfg.Browser.Display,
		Timeout:     cfg.Browser.Timeout,
	})

	pipe := pipeline.NewContext(cfg, log, br, ag, journal).WithCV(cv)
	if err := pipe.Start(ctx); err != nil {
		log.Error("Ошибка запуска пайплайна", zap.Error(err))
		_ = pipe.Close()
		closeJournal()
		_ = log.Sync()
		return nil, err
	}

	log.Info("Пайплайн запущен",
		zap.String("model", cfg.OpenAI.Model),
		zap.String("ledger", cfg.Pipeline.LedgerPath),
		zap.Bool("journal_db", cfg.Database.Enabled()),
	)

	return &app{
		cfg:          cfg,
		log:          log,
		pipe:         pipe,
		journal:      journal,
		closeJournal: closeJournal,
	}, nil
}

func (a *app) close() {
	_ = a.pipe.Close()
	a.closeJournal()
	_ = a.log.Sync()
}
