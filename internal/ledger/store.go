package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"jobAgent/internal/logger"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

type DedupPolicy string

const (
	DedupNone   DedupPolicy = "none" // Каждая вакансия дописывается, повторы остаются как журнал
	DedupByLink DedupPolicy = "link" // Вакансия с уже записанной ссылкой пропускается
)

type ScorePolicy string

const (
	ScoreAccept ScorePolicy = "accept"
	ScoreClamp  ScorePolicy = "clamp"
	ScoreReject ScorePolicy = "reject"
)

type Options struct {
	Dedup DedupPolicy
	Score ScorePolicy
}

// Ack подтверждает обработку Append.
type Ack struct {
	Row       []string
	Duplicate bool // Строка не записана, ссылка уже есть в файле
	Clamped   bool // fit_score был приведен к [0,1]
}

// Contents - сырое содержимое файла вместе с шапкой.
type Contents struct {
	Raw   string
	Fresh bool // Файла не было, он только что создан с одной шапкой
}

// Store - CSV ledger. Запись сериализуется мьютексом внутри процесса
// и advisory lock файлом между процессами.
type Store struct {
	path string
	opts Options
	log  *logger.Zap

	mu   sync.Mutex
	lock *flock.Flock
}

func New(path string, opts Options, log *logger.Zap) *Store {
	if opts.Dedup == "" {
		opts.Dedup = DedupNone
	}
	if opts.Score == "" {
		opts.Score = ScoreAccept
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		path: path,
		opts: opts,
		log:  log.Named("ledger"),
		lock: flock.New(path + ".lock"),
	}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) acquire(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	s.mu.Lock()
	ok, err := s.lock.TryLockContext(ctx, 20*time.Millisecond)
	if err != nil || !ok {
		s.mu.Unlock()
		if err == nil {
			err = ctx.Err()
		}
		return nil, &StorageError{Op: "lock", Path: s.lock.Path(), Err: err}
	}

	return func() {
		if err := s.lock.Unlock(); err != nil {
			s.log.Warn("Ошибка снятия блокировки", zap.Error(err))
		}
		s.mu.Unlock()
	}, nil
}

// Append дописывает одну строку и закрывает файл до возврата.
// Если файла нет или он пуст, сначала пишется шапка.
func (s *Store) Append(ctx context.Context, job Job) (Ack, error) {
	if err := job.Validate(); err != nil {
		return Ack{}, err
	}

	ack := Ack{}
	switch s.opts.Score {
	case ScoreReject:
		if job.FitScore < 0 || job.FitScore > 1 {
			return Ack{}, &InvalidScoreError{Score: job.FitScore}
		}
	case ScoreClamp:
		if job.FitScore < 0 {
			job.FitScore, ack.Clamped = 0, true
		} else if job.FitScore > 1 {
			job.FitScore, ack.Clamped = 1, true
		}
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return Ack{}, err
	}
	defer release()

	if s.opts.Dedup == DedupByLink {
		exists, err := s.hasLink(job.Link)
		if err != nil {
			return Ack{}, err
		}
		if exists {
			s.log.Info("Вакансия уже есть в файле, пропускаем", zap.String("link", job.Link))
			return Ack{Row: job.Row(), Duplicate: true}, nil
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Ack{}, &StorageError{Op: "open", Path: s.path, Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return Ack{}, &StorageError{Op: "stat", Path: s.path, Err: err}
	}

	// Буферизуем строки и пишем одним вызовом Write.
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		_ = w.Write(Header)
	}
	_ = w.Write(job.Row())
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return Ack{}, &StorageError{Op: "encode", Path: s.path, Err: err}
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return Ack{}, &StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return Ack{}, &StorageError{Op: "sync", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return Ack{}, &StorageError{Op: "close", Path: s.path, Err: err}
	}

	s.log.Info("Вакансия сохранена",
		zap.String("title", job.Title),
		zap.String("company", job.Company),
		zap.Float64("fit_score", job.FitScore))

	ack.Row = job.Row()
	return ack, nil
}

// ReadAll возвращает файл целиком. Если файла нет или он пустой, записывает в него одну шапку.
func (s *Store) ReadAll(ctx context.Context) (Contents, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return Contents{}, err
	}
	defer release()

	data, err := os.ReadFile(s.path)
	if err == nil && len(data) > 0 {
		return Contents{Raw: string(data)}, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Contents{}, &StorageError{Op: "read", Path: s.path, Err: err}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(Header)
	w.Flush()

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return Contents{}, &StorageError{Op: "create", Path: s.path, Err: err}
	}
	s.log.Info("Создан новый файл вакансий", zap.String("path", s.path))

	return Contents{Raw: buf.String(), Fresh: true}, nil
}

// Jobs разбирает строки файла обратно в вакансии. Строки с неверным числом полей пропускаются.
func (s *Store) Jobs(ctx context.Context) ([]Job, error) {
	contents, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := parseRows(contents.Raw)
	if err != nil {
		return nil, &StorageError{Op: "parse", Path: s.path, Err: err}
	}

	jobs := make([]Job, 0, len(rows))
	for _, row := range rows {
		if j, ok := jobFromRow(row); ok {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

func (s *Store) hasLink(link string) (bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &StorageError{Op: "read", Path: s.path, Err: err}
	}

	rows, err := parseRows(string(data))
	if err != nil {
		return false, &StorageError{Op: "parse", Path: s.path, Err: err}
	}
	for _, row := range rows {
		if len(row) > 2 && row[2] == link {
			return true, nil
		}
	}
	return false, nil
}

// parseRows возвращает строки данных без шапки.
func parseRows(raw string) ([][]string, error) {
	r := csv.NewReader(bytes.NewBufferString(raw))
	r.FieldsPerRecord = -1

	var rows [][]string
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			if len(rec) > 0 && rec[0] == Header[0] {
				continue
			}
		}
		rows = append(rows, rec)
	}
	return rows, nil
}
