// Package ledger хранит найденные вакансии в CSV файле, который только дописывается.
package ledger

import (
	"fmt"
	"strings"
)

// Header - шапка файла, пишется один раз при создании.
var Header = []string{"Title", "Company", "Link", "Salary", "Location"}

// Job - одна найденная вакансия. Передается по значению и не меняется после создания.
// Location и Salary необязательны, пустая строка означает отсутствие значения.
type Job struct {
	Title    string  `json:"title"`
	Link     string  `json:"link"`
	Company  string  `json:"company"`
	FitScore float64 `json:"fit_score"`
	Location string  `json:"location,omitempty"`
	Salary   string  `json:"salary,omitempty"`
}

// NewJob создает вакансию и проверяет обязательные поля.
func NewJob(title, link, company string, fitScore float64, location, salary string) (Job, error) {
	j := Job{
		Title:    strings.TrimSpace(title),
		Link:     strings.TrimSpace(link),
		Company:  strings.TrimSpace(company),
		FitScore: fitScore,
		Location: strings.TrimSpace(location),
		Salary:   strings.TrimSpace(salary),
	}
	if err := j.Validate(); err != nil {
		return Job{}, err
	}
	return j, nil
}

// Validate проверяет только обязательные поля. Диапазон fit_score здесь не проверяется,
// это решает ScorePolicy хранилища.
func (j Job) Validate() error {
	var missing []string
	if strings.TrimSpace(j.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(j.Link) == "" {
		missing = append(missing, "link")
	}
	if strings.TrimSpace(j.Company) == "" {
		missing = append(missing, "company")
	}
	if len(missing) > 0 {
		return &InvalidJobError{Fields: missing}
	}
	return nil
}

// Row возвращает строку ledger в порядке колонок Header.
func (j Job) Row() []string {
	return []string{j.Title, j.Company, j.Link, j.Salary, j.Location}
}

func (j Job) String() string {
	return fmt.Sprintf("%s @ %s (%.2f) %s", j.Title, j.Company, j.FitScore, j.Link)
}

func jobFromRow(row []string) (Job, bool) {
	if len(row) != len(Header) {
		return Job{}, false
	}
	return Job{
		Title:    row[0],
		Company:  row[1],
		Link:     row[2],
		Salary:   row[3],
		Location: row[4],
	}, true
}
