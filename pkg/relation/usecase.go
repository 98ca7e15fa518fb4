package relation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/events"
	"github.com/artem13815/jobboard/pkg/job"
)

// ApplicationsPageSize — размер страницы списка откликов работодателя.
const ApplicationsPageSize = 10

var (
	ErrAlreadySaved   = apperr.Conflict("You have already saved this job")
	ErrAlreadyApplied = apperr.Conflict("You have already applied for this job")
)

// UseCase — сохранение вакансий, отклики и смена их статусов.
type UseCase interface {
	Save(ctx context.Context, p auth.Principal, candidateID, jobID uuid.UUID) (SavedJob, error)
	Unsave(ctx context.Context, p auth.Principal, candidateID, jobID uuid.UUID) error
	IsSaved(ctx context.Context, p auth.Principal, candidateID, jobID uuid.UUID) (bool, error)
	Apply(ctx context.Context, p auth.Principal, candidateID, jobID uuid.UUID) (Application, error)
	HasApplied(ctx context.Context, p auth.Principal, candidateID, jobID uuid.UUID) (bool, error)
	SetApplicationStatus(ctx context.Context, p auth.Principal, applicationID uuid.UUID, status string) (Application, error)
	ListApplications(ctx context.Context, p auth.Principal, f ApplicationFilter, page int) (ApplicationPage, error)
}

type ApplicationPage struct {
	Applications []ApplicationView `json:"applications"`
	Total        int               `json:"total"`
	CurrentPage  int               `json:"currentPage"`
	TotalPages   int               `json:"totalPages"`
}

type service struct {
	saved      SavedRepository
	apps       ApplicationRepository
	jobs       JobLookup
	candidates CandidateAccess
	pub        events.Publisher
	log        *zap.Logger
	now        func() time.Time
}

func NewService(saved SavedRepository, apps ApplicationRepository, jobs JobLookup, candidates CandidateAccess, pub events.Publisher, log *zap.Logger) UseCase {
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		saved:      saved,
		apps:       apps,
		jobs:       jobs,
		candidates: candidates,
		pub:        pub,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Save(ctx context.Context, p auth.Principal, candidateID, jobID uuid.UUID) (SavedJob, error) {
	if err := s.checkPair(ctx, p, candidateID, jobID); err != nil {
		return SavedJob{}, err
	}
	sj := SavedJob{ID: uuid.New(), CandidateID: candidateID, JobID: jobID, CreatedAt: s.now()}
	if err := s.saved.Create(ctx, sj); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return SavedJob{}, ErrAlreadySaved
		}
		return SavedJob{}, err
	}
	s.publish(ctx, events.Event{Type: events.JobSaved, CandidateID: candidateID, JobID: jobID})
	return sj, nil
}

func (s *service) Unsave(ctx context.Context, p auth.Principal, candidateID, jobID uuid.UUID) error {
	if err := s.candidates.Authorize(ctx, p, candidateID); err != nil {
		return err
	}
	if err := s.saved.Delete(ctx, candidateID, jobID); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Type: events.JobUnsaved, CandidateID: candidateID, JobID: jobID})
	return nil
}

func (s *service) IsSaved(ctx context.Context, p auth.Principal, candidateID, jobID uuid.UUID) (bool, error) {
	if err := s.candidates.Authorize(ctx, p, candidateID); err != nil {
		return false, err
	}
	return s.saved.Exists(ctx, candidateID, jobID)
}

func (s *service) Apply(ctx context.Context, p auth.Principal, candidateID, jobID uuid.UUID) (Application, error) {
	if err := s.checkPair(ctx, p, candidateID, jobID); err != nil {
		return Application{}, err
	}
	now := s.now()
	a := Application{ID: uuid.New(), CandidateID: candidateID, JobID: jobID, Status: StatusNew, CreatedAt: now, UpdatedAt: now}
	if err := s.apps.Create(ctx, a); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return Application{}, ErrAlreadyApplied
		}
		return Application{}, err
	}
	s.publish(ctx, events.Event{Type: events.JobApplied, CandidateID: candidateID, JobID: jobID, ApplicationID: &a.ID, To: string(a.Status)})
	return a, nil
}

func (s *service) HasApplied(ctx context.Context, p auth.Principal, candidateID, jobID uuid.UUID) (bool, error) {
	if err := s.candidates.Authorize(ctx, p, candidateID); err != nil {
		return false, err
	}
	return s.apps.Exists(ctx, candidateID, jobID)
}

func (s *service) SetApplicationStatus(ctx context.Context, p auth.Principal, applicationID uuid.UUID, status string) (Application, error) {
	if !p.CanPostJobs() {
		return Application{}, apperr.Forbidden("only employers, recruiters and admins can change application status")
	}
	to, err := ParseAppStatus(status)
	if err != nil {
		return Application{}, err
	}
	a, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return Application{}, err
	}
	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return Application{}, err
	}
	if !p.IsAdmin() && j.PostedBy != p.UserID {
		return Application{}, apperr.Forbidden("you can only manage applications to your own postings")
	}
	if !IsTransitionAllowed(a.Status, to) {
		return Application{}, apperr.Invalid(fmt.Sprintf("transition %s → %s is not allowed", a.Status, to))
	}
	from := a.Status
	a.Status, a.UpdatedAt = to, s.now()
	if err := s.apps.UpdateStatus(ctx, a.ID, a.Status, a.UpdatedAt); err != nil {
		return Application{}, err
	}
	s.publish(ctx, events.Event{
		Type:          events.ApplicationStatusChanged,
		CandidateID:   a.CandidateID,
		JobID:         a.JobID,
		ApplicationID: &a.ID,
		From:          string(from),
		To:            string(to),
	})
	return a, nil
}

func (s *service) ListApplications(ctx context.Context, p auth.Principal, f ApplicationFilter, page int) (ApplicationPage, error) {
	if !p.CanPostJobs() {
		return ApplicationPage{}, apperr.Forbidden("only employers, recruiters and admins can list applications")
	}
	if page < 1 {
		return ApplicationPage{}, apperr.Invalid("page must be a positive integer")
	}
	if f.Status != "" {
		if _, err := ParseAppStatus(string(f.Status)); err != nil {
			return ApplicationPage{}, err
		}
	}
	if !p.IsAdmin() {
		f.PostedBy = p.UserID
	}
	views, total, err := s.apps.List(ctx, f, ApplicationsPageSize, (page-1)*ApplicationsPageSize)
	if err != nil {
		return ApplicationPage{}, err
	}
	if views == nil {
		views = []ApplicationView{}
	}
	return ApplicationPage{
		Applications: views,
		Total:        total,
		CurrentPage:  page,
		TotalPages:   (total + ApplicationsPageSize - 1) / ApplicationsPageSize,
	}, nil
}

// checkPair проверяет права вызывающего и существование обеих сторон перед созданием связи.
func (s *service) checkPair(ctx context.Context, p auth.Principal, candidateID, jobID uuid.UUID) error {
	if err := s.candidates.Authorize(ctx, p, candidateID); err != nil {
		return err
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if j.Status != job.StatusActive {
		return apperr.NotFound("Job not found")
	}
	return nil
}

// publish не гарантирует доставку: недоступный брокер не ломает запрос.
func (s *service) publish(ctx context.Context, e events.Event) {
	e.OccurredAt = s.now()
	if err := s.pub.Publish(ctx, e); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("publish event failed", zap.String("type", string(e.Type)), zap.Error(err))
	}
}
