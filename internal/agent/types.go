// Package agent - LLM агент, который ищет вакансии в браузере и сохраняет
// подходящие под резюме через действия пайплайна.
package agent

import (
	"time"

	"jobAgent/internal/database"
	"jobAgent/internal/llm"
	"jobAgent/internal/logger"
	"jobAgent/internal/sanitizer"
)

// Agent реализует scoring.Collaborator. Один Agent обслуживает параллельные
// вызовы: состояние диалога живет внутри Evaluate.
type Agent struct {
	llm       llm.ChatClient
	journal   database.Journal
	log       *logger.Zap
	sanitizer *sanitizer.DataSanitizer
	breaker   *CircuitBreaker
	cfg       Config
}

type Config struct {
	MaxSteps      int           // Лимит шагов одного вызова
	Retries       int           // Попытки запроса к LLM и действия браузера
	RetryDelay    time.Duration // Базовая задержка между попытками
	MaxElements   int           // Сколько элементов страницы показывать модели
	MaxToolOutput int           // Длина результата действия в истории, если он не закреплен
}

func (c Config) withDefaults() Config {
	if c.MaxSteps <= 0 {
		c.MaxSteps = 50
	}
	if c.Retries <= 0 {
		c.Retries = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 2 * time.Second
	}
	if c.MaxElements <= 0 {
		c.MaxElements = 150
	}
	if c.MaxToolOutput <= 0 {
		c.MaxToolOutput = 2000
	}
	return c
}
