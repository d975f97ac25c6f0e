// Package scoring описывает границу между пайплайном и тем, кто ищет и оценивает вакансии.
package scoring

import (
	"context"

	"jobAgent/internal/actions"
	"jobAgent/internal/browser"
	"jobAgent/internal/document"
)

// Assignment - вход одного вызова: текст задачи, резюме, вкладка браузера
// и действия, через которые сохраняются найденные вакансии.
type Assignment struct {
	RunID   string
	Company string
	Task    string
	CV      document.Text
	Page    browser.Page
	Actions actions.PipelineActions
}

// Collaborator находит вакансии и сам сохраняет их через Assignment.Actions.SaveJob.
// Пайплайн не интерпретирует ответ: важен только побочный эффект в реестре.
type Collaborator interface {
	Evaluate(ctx context.Context, a Assignment) (Outcome, error)
}

// Outcome - итог вызова для журнала.
type Outcome struct {
	Summary string
	Steps   int
}
