// Package database - журнал запусков пайплайна в PostgreSQL через GORM.
// Без DB_HOST используется журнал в памяти процесса.
package database

import "time"

const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Run - один вызов агента для одной компании.
type Run struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	Company    string     `gorm:"type:varchar(255);not null" json:"company"`
	Task       string     `gorm:"type:text;not null" json:"task"`
	Status     string     `gorm:"type:varchar(32);not null;default:'running'" json:"status"`
	Error      string     `gorm:"type:text" json:"error,omitempty"`
	Summary    string     `gorm:"type:text" json:"summary,omitempty"`
	StartedAt  time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Step - одно действие агента и его результат.
type Step struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RunID     string    `gorm:"type:uuid;index;not null" json:"run_id"`
	StepNo    int       `gorm:"not null" json:"step_no"`
	Action    string    `gorm:"type:varchar(64);not null" json:"action"`
	Arguments string    `gorm:"type:text" json:"arguments,omitempty"`
	Result    string    `gorm:"type:text" json:"result"`
	IsError   bool      `gorm:"not null;default:false" json:"is_error"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// LlmLog - запрос к LLM. Промпт и ответ уже очищены от персональных данных.
type LlmLog struct {
	ID           uint      `gorm:"primaryKey"`
	RunID        string    `gorm:"type:varchar(64);index"`
	StepNo       int
	Role         string    `gorm:"type:varchar(16);not null"`
	PromptText   string    `gorm:"type:text;not null"`
	ResponseText string    `gorm:"type:text"`
	Model        string    `gorm:"type:varchar(64)"`
	TokensUsed   int
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}
