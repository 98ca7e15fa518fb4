// Package relation управляет связями соискателей с вакансиями: сохранёнными и откликами.
//
// Переходы статусов отклика:
//
//	new ──► shortlisted ──► interview ──► hired
//	 │           │              │
//	 └───────────┴──────────────┴──► rejected
//
// hired и rejected конечные.
package relation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
)

type AppStatus string

const (
	StatusNew         AppStatus = "new"
	StatusShortlisted AppStatus = "shortlisted"
	StatusInterview   AppStatus = "interview"
	StatusHired       AppStatus = "hired"
	StatusRejected    AppStatus = "rejected"
)

var validTransitions = map[AppStatus][]AppStatus{
	StatusNew:         {StatusShortlisted, StatusRejected},
	StatusShortlisted: {StatusInterview, StatusRejected},
	StatusInterview:   {StatusHired, StatusRejected},
}

func ParseAppStatus(s string) (AppStatus, error) {
	switch st := AppStatus(s); st {
	case StatusNew, StatusShortlisted, StatusInterview, StatusHired, StatusRejected:
		return st, nil
	}
	return "", apperr.Invalid(fmt.Sprintf("unknown application status %q", s))
}

// IsTransitionAllowed reports whether an application may move from → to.
func IsTransitionAllowed(from, to AppStatus) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type SavedJob struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidateId"`
	JobID       uuid.UUID `json:"jobId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Application struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidateId"`
	JobID       uuid.UUID `json:"jobId"`
	Status      AppStatus `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// JobRef — вакансия, найденная через связь, и время создания связи.
type JobRef struct {
	Job job.Job
	At  time.Time
}

// ApplicationView — отклик со сводками соискателя и вакансии для работодателя.
type ApplicationView struct {
	Application
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	JobTitle       string `json:"jobTitle"`
	CompanyName    string `json:"companyName"`
}

// ApplicationFilter сужает список откликов работодателя. Нулевые значения не фильтруют.
type ApplicationFilter struct {
	PostedBy uuid.UUID
	JobID    uuid.UUID
	Status   AppStatus
}

// SavedRepository хранит сохранённые вакансии. Create вернёт Conflict, если пара уже есть.
type SavedRepository interface {
	Create(ctx context.Context, s SavedJob) error
	Delete(ctx context.Context, candidateID, jobID uuid.UUID) error
	Exists(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error)
}

// ApplicationRepository хранит отклики. Create вернёт Conflict, если пара уже есть.
type ApplicationRepository interface {
	Create(ctx context.Context, a Application) error
	Exists(ctx context.Context, candidateID, jobID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status AppStatus, at time.Time) error
	List(ctx context.Context, f ApplicationFilter, limit, offset int) ([]ApplicationView, int, error)
}

// JobLookup находит вакансию, к которой привязывается связь.
type JobLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
}

// CandidateAccess подтверждает, что профиль существует и вызывающий может действовать от его имени.
type CandidateAccess interface {
	Authorize(ctx context.Context, p auth.Principal, candidateID uuid.UUID) error
}
