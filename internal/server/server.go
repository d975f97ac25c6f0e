// Package server - HTTP API над реестром вакансий и журналом запусков.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"jobAgent/internal/config"
	"jobAgent/internal/database"
	"jobAgent/internal/ledger"
	"jobAgent/internal/logger"
	"jobAgent/internal/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Runner запускает поиск по одной компании.
type Runner interface {
	RunWithID(ctx context.Context, runID, company string) pipeline.Result
}

// JobReader отдает сохраненные вакансии.
type JobReader interface {
	Jobs(ctx context.Context) ([]ledger.Job, error)
}

type Server struct {
	cfg     *config.Cfg
	log     *logger.Zap
	runner  Runner
	jobs    JobReader
	journal database.Journal

	// Запуски живут дольше HTTP запроса
	wg      sync.WaitGroup
	baseCtx context.Context
	// slots ограничивает одновременные запуски, nil - без ограничения
	slots chan struct{}
}

func New(cfg *config.Cfg, log *logger.Zap, runner Runner, jobs JobReader, journal database.Journal) *Server {
	var slots chan struct{}
	if n := cfg.Pipeline.Concurrency; n > 0 {
		slots = make(chan struct{}, n)
	}
	return &Server{
		slots:   slots,
		cfg:     cfg,
		log:     log.Named("server"),
		runner:  runner,
		jobs:    jobs,
		journal: journal,
		baseCtx: context.Background(),
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("HTTP",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/jobs", s.listJobs)
	api.POST("/runs", s.createRun)
	api.GET("/runs", s.listRuns)
	api.GET("/runs/:id", s.getRun)

	return r
}

func (s *Server) listJobs(c *gin.Context) {
	jobs, err := s.jobs.Jobs(c.Request.Context())
	if err != nil {
		s.log.Error("Ошибка чтения вакансий", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ledger error"})
		return
	}
	if jobs == nil {
		jobs = []ledger.Job{}
	}
	c.JSON(http.StatusOK, jobs)
}

// createRun стартует поиск в фоне и сразу возвращает идентификатор запуска.
func (s *Server) createRun(c *gin.Context) {
	var req struct {
		Company string `json:"company" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	company := strings.TrimSpace(req.Company)
	if company == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company is empty"})
		return
	}

	if !s.acquire() {
		s.log.Warn("Нет свободных слотов для запуска", zap.String("company", company))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "too many active runs"})
		return
	}

	runID := uuid.NewString()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.release()
		s.runner.RunWithID(s.baseCtx, runID, company)
	}()

	c.JSON(http.StatusAccepted, gin.H{"run_id": runID})
}

func (s *Server) acquire() bool {
	if s.slots == nil {
		return true
	}
	select {
	case s.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *Server) release() {
	if s.slots != nil {
		<-s.slots
	}
}

func (s *Server) listRuns(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad limit"})
			return
		}
		limit = n
	}

	runs, err := s.journal.ListRuns(c.Request.Context(), limit)
	if err != nil {
		s.log.Error("Ошибка чтения журнала", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "journal error"})
		return
	}
	if runs == nil {
		runs = []database.Run{}
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) getRun(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}

	run, steps, err := s.journal.GetRun(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		s.log.Error("Ошибка чтения журнала", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "journal error"})
		return
	}
	if steps == nil {
		steps = []database.Step{}
	}
	c.JSON(http.StatusOK, gin.H{"run": run, "steps": steps})
}

// Run слушает адрес из конфигурации до отмены ctx, затем ждет активные запуски.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Сервер запущен", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Ошибка остановки сервера", zap.Error(err))
	}
	s.Wait()
	s.log.Info("Сервер остановлен")
	return nil
}

// Wait ждет завершения фоновых запусков.
func (s *Server) Wait() {
	s.wg.Wait()
}
