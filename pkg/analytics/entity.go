// Package analytics собирает сводки для панелей работодателя и администратора.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/relation"
)

// Range — полуинтервал [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

// EmployerCounts — счётчики по вакансиям одного автора.
type EmployerCounts struct {
	ActiveJobs      int
	TotalApplicants int
	Shortlisted     int
	AppliedToday    int
	Interviews      int
}

// AdminCounts — счётчики для сводки администратора за текущий и прошлый месяц.
type AdminCounts struct {
	ActiveJobs            int
	ActiveClosingCurrent  int
	ActiveClosingPrevious int
	CandidatesCurrent     int
	CandidatesPrevious    int
}

// Tile — карточка панели работодателя.
type Tile struct {
	Title string `json:"title"`
	Value int    `json:"value"`
	Trend string `json:"trend"`
}

// AdminTile — карточка панели администратора с изменением к прошлому месяцу.
type AdminTile struct {
	Title      string `json:"title"`
	Value      int    `json:"value"`
	Change     string `json:"change"`
	ChangeType string `json:"changeType"`
}

// Applicant — отклик на вакансию работодателя вместе с данными соискателя.
type Applicant struct {
	ID          uuid.UUID          `json:"id"`
	ApplicantID uuid.UUID          `json:"applicantId"`
	Name        string             `json:"name"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
	Position    string             `json:"position"`
	Experience  string             `json:"experience"`
	Skills      []string           `json:"skills"`
	ResumeURL   string             `json:"resumeUrl"`
	AppliedAt   time.Time          `json:"appliedAt"`
	Applied     string             `json:"applied"`
	Status      relation.AppStatus `json:"status"`
}

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
	PerPage     int `json:"perPage"`
}

type ApplicantPage struct {
	Applicants []Applicant `json:"applicants"`
	Pagination Pagination  `json:"pagination"`
}

// PosterJobFilter сужает список вакансий автора. Пустые поля не фильтруют;
// Location и JobType сравниваются без учёта регистра.
type PosterJobFilter struct {
	Status   job.Status
	JobType  string
	Location string
}

type PosterJobsPage struct {
	Jobs       []job.Job  `json:"jobs"`
	Pagination Pagination `json:"pagination"`
}

// PosterFacets — различные значения полей вакансий автора.
type PosterFacets struct {
	Locations []string `json:"locations"`
	Statuses  []string `json:"statuses"`
	JobTypes  []string `json:"jobTypes"`
}

type AdminJobsPage struct {
	Jobs      []job.BoardItem `json:"data"`
	TotalJobs int             `json:"totalJobs"`
}

// Repository — порт счётчиков и выборок по откликам.
type Repository interface {
	PosterExists(ctx context.Context, id uuid.UUID) (bool, error)
	EmployerCounts(ctx context.Context, posterID uuid.UUID, todayStart time.Time) (EmployerCounts, error)
	// MonthlyApplications возвращает число откликов по номеру месяца (1..12) внутри r.
	MonthlyApplications(ctx context.Context, posterID uuid.UUID, r Range) (map[int]int, error)
	RecentApplicants(ctx context.Context, posterID uuid.UUID, limit, offset int) ([]Applicant, int, error)
	AdminCounts(ctx context.Context, current, previous Range) (AdminCounts, error)
}

// JobReader — порт выборок вакансий для панелей.
type JobReader interface {
	ListByPoster(ctx context.Context, posterID uuid.UUID, f PosterJobFilter, limit, offset int) ([]job.Job, int, error)
	PosterFacets(ctx context.Context, posterID uuid.UUID) (PosterFacets, error)
	// ListByStatus отдаёт активные вакансии по дате публикации, снятые — по дате изменения.
	ListByStatus(ctx context.Context, status job.Status, limit, offset int) ([]job.Job, int, error)
}
