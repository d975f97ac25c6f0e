package ledger

import (
	"fmt"
	"strings"
)

// StorageError - ошибка файловой системы при работе с ledger. Повторов внутри нет,
// решение о повторе принимает вызывающий.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// InvalidJobError - не заполнены обязательные поля вакансии.
type InvalidJobError struct {
	Fields []string
}

func (e *InvalidJobError) Error() string {
	return "не заполнены обязательные поля: " + strings.Join(e.Fields, ", ")
}

// InvalidScoreError - fit_score вне [0,1] при политике reject.
type InvalidScoreError struct {
	Score float64
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("fit_score %.3f вне диапазона [0, 1]", e.Score)
}
