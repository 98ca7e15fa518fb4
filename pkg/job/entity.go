package job

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/match"
)

// Status вакансии. Соискатели видят только Active.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "In-Active"
)

// ParseStatus принимает ровно два значения статуса.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusInactive:
		return st, nil
	}
	return "", apperr.Invalid("Invalid status")
}

// Job описывает вакансию на доске объявлений.
type Job struct {
	ID           uuid.UUID  `json:"id"`
	PostedBy     uuid.UUID  `json:"postedBy"`
	PostedByRole string     `json:"postedByRole"`
	Title        string     `json:"title"`
	CompanyName  string     `json:"companyName"`
	Location     string     `json:"location"`
	SalaryRange  string     `json:"salaryRange"`
	JobType      string     `json:"jobType"`
	MinExp       int        `json:"minExp"`
	MaxExp       int        `json:"maxExp"`
	KeySkills    []string   `json:"keySkills"`
	IndustryType string     `json:"industryType"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Openings     int        `json:"openings"`
	ApplyBy      *time.Time `json:"applyBy,omitempty"`
	Status       Status     `json:"status"`
	PostedAt     time.Time  `json:"postedAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Matchable отдаёт то, что читает оценка совпадения.
func (j Job) Matchable() match.Job {
	return match.Job{
		KeySkills:   j.KeySkills,
		Location:    j.Location,
		MinExp:      j.MinExp,
		MaxExp:      j.MaxExp,
		SalaryRange: j.SalaryRange,
		JobType:     j.JobType,
	}
}

// Update — поля, которые может менять автор. Nil-поля не трогаются.
type Update struct {
	Title        *string
	CompanyName  *string
	Location     *string
	SalaryRange  *string
	JobType      *string
	MinExp       *int
	MaxExp       *int
	KeySkills    *[]string
	IndustryType *string
	Category     *string
	Description  *string
	Openings     *int
	ApplyBy      *time.Time
}

// Apply возвращает копию j с применёнными не-nil полями u.
func (u Update) Apply(j Job) Job {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&j.Title, u.Title)
	set(&j.CompanyName, u.CompanyName)
	set(&j.Location, u.Location)
	set(&j.SalaryRange, u.SalaryRange)
	set(&j.JobType, u.JobType)
	set(&j.IndustryType, u.IndustryType)
	set(&j.Category, u.Category)
	set(&j.Description, u.Description)
	if u.MinExp != nil {
		j.MinExp = *u.MinExp
	}
	if u.MaxExp != nil {
		j.MaxExp = *u.MaxExp
	}
	if u.Openings != nil {
		j.Openings = *u.Openings
	}
	if u.KeySkills != nil {
		j.KeySkills = append([]string(nil), (*u.KeySkills)...)
	}
	if u.ApplyBy != nil {
		t := *u.ApplyBy
		j.ApplyBy = &t
	}
	return j
}

// BoardFilter сужает публичную доску. Пустые поля не фильтруют.
type BoardFilter struct {
	Title        string
	Location     string
	CompanyName  string
	IndustryType string
	Category     string
	JobType      string
	// MaxExperience оставляет вакансии, чей диапазон опыта целиком не выше него.
	MaxExperience *int
	KeySkills     []string
}

// FacetCount — значение атрибута вакансии и число активных вакансий с ним.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type Facets struct {
	Locations     []FacetCount `json:"locations"`
	JobTypes      []FacetCount `json:"workModes"`
	IndustryTypes []FacetCount `json:"industryTypes"`
}

// Repository — порт для работы с вакансиями.
type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	Update(ctx context.Context, j Job) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	ListBoard(ctx context.Context, f BoardFilter, limit, offset int) ([]Job, int, error)
	Facets(ctx context.Context) (Facets, error)
	// IndustryStats считает вакансии по отраслям без фильтра статуса.
	IndustryStats(ctx context.Context) ([]FacetCount, error)
	ActiveKeySkills(ctx context.Context) ([]string, error)
}
