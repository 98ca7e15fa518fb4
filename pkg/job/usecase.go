package job

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/auth"
)

// DefaultBoardPageSize — фиксированный размер страницы публичной доски.
const DefaultBoardPageSize = 9

// UseCase инкапсулирует приложение для работы с вакансиями.
type UseCase interface {
	Create(ctx context.Context, p auth.Principal, j Job) (Job, error)
	Get(ctx context.Context, id uuid.UUID) (Job, error)
	Update(ctx context.Context, p auth.Principal, id uuid.UUID, u Update) (Job, error)
	SetStatus(ctx context.Context, p auth.Principal, id uuid.UUID, status string) (Job, error)
	// Delete снимает вакансию с публикации; запись остаётся.
	Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error
	Board(ctx context.Context, f BoardFilter, page int) (BoardPage, error)
	Facets(ctx context.Context) (Facets, error)
	IndustryStats(ctx context.Context) ([]FacetCount, error)
}

// BoardItem — вакансия в виде для публичной доски.
type BoardItem struct {
	Job
	Posted string `json:"posted"`
}

type BoardPage struct {
	Jobs        []BoardItem `json:"data"`
	TotalJobs   int         `json:"totalJobs"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
}

type service struct {
	repo     Repository
	pageSize int
	now      func() time.Time
}

func NewService(repo Repository, pageSize int) UseCase {
	if pageSize <= 0 {
		pageSize = DefaultBoardPageSize
	}
	return &service{repo: repo, pageSize: pageSize, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Create(ctx context.Context, p auth.Principal, j Job) (Job, error) {
	if !p.CanPostJobs() {
		return Job{}, apperr.Forbidden("only employers, recruiters and admins can post jobs")
	}
	j = normalize(j)
	if err := validate(j); err != nil {
		return Job{}, err
	}
	now := s.now()
	j.ID = uuid.New()
	j.PostedBy = p.UserID
	j.PostedByRole = string(p.Role)
	j.Status = StatusActive
	j.PostedAt = now
	j.UpdatedAt = now
	if err := s.repo.Create(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, p auth.Principal, id uuid.UUID, u Update) (Job, error) {
	j, err := s.owned(ctx, p, id)
	if err != nil {
		return Job{}, err
	}
	j = normalize(u.Apply(j))
	if err := validate(j); err != nil {
		return Job{}, err
	}
	j.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) SetStatus(ctx context.Context, p auth.Principal, id uuid.UUID, status string) (Job, error) {
	st, err := ParseStatus(status)
	if err != nil {
		return Job{}, err
	}
	j, err := s.owned(ctx, p, id)
	if err != nil {
		return Job{}, err
	}
	if err := s.repo.SetStatus(ctx, id, st); err != nil {
		return Job{}, err
	}
	j.Status = st
	return j, nil
}

func (s *service) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	_, err := s.SetStatus(ctx, p, id, string(StatusInactive))
	return err
}

func (s *service) Board(ctx context.Context, f BoardFilter, page int) (BoardPage, error) {
	if page < 1 {
		return BoardPage{}, apperr.Invalid("page must be a positive integer")
	}
	jobs, total, err := s.repo.ListBoard(ctx, f, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return BoardPage{}, err
	}
	now := s.now()
	items := make([]BoardItem, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, BoardItem{Job: j, Posted: PostedAgo(j.PostedAt, now)})
	}
	return BoardPage{
		Jobs:        items,
		TotalJobs:   total,
		CurrentPage: page,
		TotalPages:  (total + s.pageSize - 1) / s.pageSize,
	}, nil
}

func (s *service) Facets(ctx context.Context) (Facets, error) {
	return s.repo.Facets(ctx)
}

func (s *service) IndustryStats(ctx context.Context) ([]FacetCount, error) {
	return s.repo.IndustryStats(ctx)
}

// owned загружает вакансию, которую вызывающий вправе менять: автор или админ.
func (s *service) owned(ctx context.Context, p auth.Principal, id uuid.UUID) (Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Job{}, err
	}
	if !p.IsAdmin() && j.PostedBy != p.UserID {
		return Job{}, apperr.Forbidden("you can only change your own postings")
	}
	return j, nil
}

func validate(j Job) error {
	switch {
	case strings.TrimSpace(j.Title) == "":
		return apperr.Invalid("title is required")
	case strings.TrimSpace(j.CompanyName) == "":
		return apperr.Invalid("companyName is required")
	case j.MinExp < 0 || j.MaxExp < j.MinExp:
		return apperr.Invalid("experience range is invalid")
	case j.Openings < 0:
		return apperr.Invalid("openings must not be negative")
	}
	return nil
}
