// Package config загружает настройки пайплайна из окружения и .env файла.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultGroundTask = "You are a professional job finder. " +
	"1. Read my cv with read_cv. " +
	"2. Read the saved jobs file with read_jobs. " +
	"3. Find ml internships and save each of them with save_jobs. " +
	"Search at company:"

type Cfg struct {
	Database   Database
	Logger     Logger
	OpenAI     OpenAI
	Browser    Browser
	Migrations Migrations
	Pipeline   Pipeline
	Server     Server
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Enabled сообщает, настроен ли журнал запусков в PostgreSQL.
func (d Database) Enabled() bool {
	return d.Host != ""
}

// DSN собирает строку подключения для gorm postgres драйвера.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// URL собирает строку подключения для golang-migrate.
func (d Database) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type Migrations struct {
	Path string
}

type Logger struct {
	Env   string
	Level string
	File  string
}

type OpenAI struct {
	KeyAI             string
	Model             string
	MaxTokens         int
	RequestsPerMinute int
	TokensPerHour     int
}

type Browser struct {
	Display     string
	Headless    bool
	UserDataDir string
	Timeout     time.Duration
}

type Pipeline struct {
	CVFile      string   // Имя файла резюме
	CVSubdir    string   // Подкаталог, в котором резюме ищется последним
	LedgerPath  string   // CSV файл с найденными вакансиями
	Dedup       string   // Политика дедупликации: none | link
	ScorePolicy string   // Политика fit_score вне [0,1]: accept | clamp | reject
	Companies   []string // Компании по умолчанию для команды run
	GroundTask  string   // Базовый текст задачи, к нему дописывается компания
	MaxSteps    int
	Concurrency int
}

type Server struct {
	Addr string
}

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	cfg := &Cfg{
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		OpenAI: OpenAI{
			KeyAI:             os.Getenv("OPENAI_API_KEY"),
			Model:             env("OPENAI_MODEL", "gpt-4o"),
			MaxTokens:         envInt("OPENAI_MAX_TOKENS", 4000),
			RequestsPerMinute: envInt("OPENAI_RPM", 60),
			TokensPerHour:     envInt("OPENAI_TPH", 90000),
		},
		Browser: Browser{
			Display:     env("DISPLAY", ":0"),
			Headless:    envBool("PW_HEADLESS"),
			UserDataDir: os.Getenv("PW_USER_DATA_DIR"),
			Timeout:     time.Duration(envInt("PW_TIMEOUT_SEC", 30)) * time.Second,
		},
		Migrations: Migrations{
			Path: env("MIGRATIONS_PATH", "file://migrations"),
		},
		Pipeline: Pipeline{
			CVFile:      env("CV_FILE", "Vikas_CV_1.pdf"),
			CVSubdir:    env("CV_SUBDIR", "jira_task_creation_results"),
			LedgerPath:  env("JOBS_FILE", "jobs.csv"),
			Dedup:       strings.ToLower(env("JOBS_DEDUP", "none")),
			ScorePolicy: strings.ToLower(env("JOBS_SCORE_POLICY", "accept")),
			Companies:   envList("COMPANIES", []string{"Google"}),
			GroundTask:  env("GROUND_TASK", defaultGroundTask),
			MaxSteps:    envInt("AGENT_MAX_STEPS", 50),
			Concurrency: envInt("PIPELINE_CONCURRENCY", 4),
		},
		Server: Server{
			Addr: env("HTTP_ADDR", ":8080"),
		},
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры. Любая ошибка здесь фатальна при старте.
func (c *Cfg) Validate() error {
	if c.OpenAI.KeyAI == "" {
		return &ConfigurationError{Key: "OPENAI_API_KEY", Reason: "не задан, добавьте его в переменные окружения"}
	}
	switch c.Pipeline.Dedup {
	case "none", "link":
	default:
		return &ConfigurationError{Key: "JOBS_DEDUP", Reason: fmt.Sprintf("неизвестная политика %q", c.Pipeline.Dedup)}
	}
	switch c.Pipeline.ScorePolicy {
	case "accept", "clamp", "reject":
	default:
		return &ConfigurationError{Key: "JOBS_SCORE_POLICY", Reason: fmt.Sprintf("неизвестная политика %q", c.Pipeline.ScorePolicy)}
	}
	if c.Pipeline.CVFile == "" {
		return &ConfigurationError{Key: "CV_FILE", Reason: "пустое имя файла"}
	}
	return nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}

func envList(key string, defaultValue []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
