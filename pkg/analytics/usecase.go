package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
)

const (
	ApplicantsPageSize = 10
	DefaultJobsLimit   = 10
	MaxJobsLimit       = 100
)

// UseCase отдаёт аналитику работодателю по его вакансиям и администратору по всей доске.
type UseCase interface {
	EmployerStats(ctx context.Context, p auth.Principal, posterID uuid.UUID) ([]Tile, error)
	// ApplicationTrends — отклики на вакансии автора по месяцам текущего года (UTC).
	ApplicationTrends(ctx context.Context, p auth.Principal, posterID uuid.UUID) ([]int, error)
	RecentApplicants(ctx context.Context, p auth.Principal, posterID uuid.UUID, page int) (ApplicantPage, error)
	PosterJobs(ctx context.Context, p auth.Principal, posterID uuid.UUID, f PosterJobFilter, page, limit int) (PosterJobsPage, error)
	PosterFacets(ctx context.Context, p auth.Principal, posterID uuid.UUID) (PosterFacets, error)
	AdminJobs(ctx context.Context, p auth.Principal, status job.Status, offset, limit int) (AdminJobsPage, error)
	AdminStats(ctx context.Context, p auth.Principal) ([]AdminTile, error)
}

type service struct {
	repo Repository
	jobs JobReader
	now  func() time.Time
}

func NewService(repo Repository, jobs JobReader) UseCase {
	return &service{repo: repo, jobs: jobs, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) EmployerStats(ctx context.Context, p auth.Principal, posterID uuid.UUID) ([]Tile, error) {
	if err := posterScope(p, posterID); err != nil {
		return nil, err
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	c, err := s.repo.EmployerCounts(ctx, posterID, today)
	if err != nil {
		return nil, err
	}
	return []Tile{
		tile("Active Jobs", c.ActiveJobs, "+%d jobs active", "No active jobs"),
		tile("Total Applicants", c.TotalApplicants, "%d applications received", "No applicants"),
		tile("Shortlisted", c.Shortlisted, "%d candidates shortlisted", "No shortlisted candidates"),
		tile("Today's Applications", c.AppliedToday, "%d applied today", "No applications today"),
		tile("Interviews", c.Interviews, "%d scheduled interviews", "No interviews scheduled"),
	}, nil
}

func tile(title string, n int, format, none string) Tile {
	t := Tile{Title: title, Value: n, Trend: none}
	if n > 0 {
		t.Trend = fmt.Sprintf(format, n)
	}
	return t
}

func (s *service) ApplicationTrends(ctx context.Context, p auth.Principal, posterID uuid.UUID) ([]int, error) {
	if err := posterScope(p, posterID); err != nil {
		return nil, err
	}
	year := s.now().Year()
	r := Range{
		From: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	byMonth, err := s.repo.MonthlyApplications(ctx, posterID, r)
	if err != nil {
		return nil, err
	}
	out := make([]int, 12)
	for m, n := range byMonth {
		if m >= 1 && m <= 12 {
			out[m-1] = n
		}
	}
	return out, nil
}

func (s *service) RecentApplicants(ctx context.Context, p auth.Principal, posterID uuid.UUID, page int) (ApplicantPage, error) {
	if err := posterScope(p, posterID); err != nil {
		return ApplicantPage{}, err
	}
	if page < 1 {
		return ApplicantPage{}, apperr.Invalid("Invalid page or limit")
	}
	rows, total, err := s.repo.RecentApplicants(ctx, posterID, ApplicantsPageSize, (page-1)*ApplicantsPageSize)
	if err != nil {
		return ApplicantPage{}, err
	}
	now := s.now()
	out := make([]Applicant, 0, len(rows))
	for _, a := range rows {
		a.Applied = AppliedText(a.AppliedAt, now)
		if a.Skills == nil {
			a.Skills = []string{}
		}
		out = append(out, a)
	}
	return ApplicantPage{Applicants: out, Pagination: paginate(page, total, ApplicantsPageSize)}, nil
}

// AppliedText показывает дату отклика: "Today", "Yesterday", "N days ago" в пределах недели,
// дальше M/D/YYYY.
func AppliedText(at, now time.Time) string {
	days := int(now.Sub(at) / (24 * time.Hour))
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return at.UTC().Format("1/2/2006")
	}
}

func (s *service) PosterJobs(ctx context.Context, p auth.Principal, posterID uuid.UUID, f PosterJobFilter, page, limit int) (PosterJobsPage, error) {
	if err := posterScope(p, posterID); err != nil {
		return PosterJobsPage{}, err
	}
	if limit == 0 {
		limit = DefaultJobsLimit
	}
	if page < 1 || limit < 1 || limit > MaxJobsLimit {
		return PosterJobsPage{}, apperr.Invalid("Invalid page or limit")
	}
	if f.Status != "" {
		if _, err := job.ParseStatus(string(f.Status)); err != nil {
			return PosterJobsPage{}, err
		}
	}
	ok, err := s.repo.PosterExists(ctx, posterID)
	if err != nil {
		return PosterJobsPage{}, err
	}
	if !ok {
		return PosterJobsPage{}, apperr.NotFound("Employer not found")
	}
	jobs, total, err := s.jobs.ListByPoster(ctx, posterID, f, limit, (page-1)*limit)
	if err != nil {
		return PosterJobsPage{}, err
	}
	if jobs == nil {
		jobs = []job.Job{}
	}
	return PosterJobsPage{Jobs: jobs, Pagination: paginate(page, total, limit)}, nil
}

func (s *service) PosterFacets(ctx context.Context, p auth.Principal, posterID uuid.UUID) (PosterFacets, error) {
	if err := posterScope(p, posterID); err != nil {
		return PosterFacets{}, err
	}
	f, err := s.jobs.PosterFacets(ctx, posterID)
	if err != nil {
		return PosterFacets{}, err
	}
	return PosterFacets{
		Locations: sortedSet(f.Locations, capitalizeFirst),
		Statuses:  sortedSet(f.Statuses, nil),
		JobTypes:  sortedSet(f.JobTypes, nil),
	}, nil
}

// capitalizeFirst поднимает регистр только первой буквы.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func sortedSet(in []string, mapFn func(string) string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if mapFn != nil {
			v = mapFn(v)
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s *service) AdminJobs(ctx context.Context, p auth.Principal, status job.Status, offset, limit int) (AdminJobsPage, error) {
	if !p.IsAdmin() {
		return AdminJobsPage{}, apperr.Forbidden("admin access required")
	}
	if limit == 0 {
		limit = DefaultJobsLimit
	}
	if offset < 0 || limit < 1 || limit > MaxJobsLimit {
		return AdminJobsPage{}, apperr.Invalid("Invalid offset or limit")
	}
	jobs, total, err := s.jobs.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return AdminJobsPage{}, err
	}
	now := s.now()
	items := make([]job.BoardItem, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, job.BoardItem{Job: j, Posted: job.PostedAgo(j.PostedAt, now)})
	}
	return AdminJobsPage{Jobs: items, TotalJobs: total}, nil
}

func (s *service) AdminStats(ctx context.Context, p auth.Principal) ([]AdminTile, error) {
	if !p.IsAdmin() {
		return nil, apperr.Forbidden("admin access required")
	}
	now := s.now()
	curStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	cur := Range{From: curStart, To: curStart.AddDate(0, 1, 0)}
	prev := Range{From: curStart.AddDate(0, -1, 0), To: curStart}
	c, err := s.repo.AdminCounts(ctx, cur, prev)
	if err != nil {
		return nil, err
	}
	// общее число активных вакансий сравнивается с активными, закрывавшими приём в прошлом месяце
	return []AdminTile{
		adminTile("Total Jobs", c.ActiveJobs, c.ActiveClosingPrevious),
		adminTile("Active Jobs", c.ActiveClosingCurrent, c.ActiveClosingPrevious),
		adminTile("Registered Candidates", c.CandidatesCurrent, c.CandidatesPrevious),
	}, nil
}

func adminTile(title string, current, previous int) AdminTile {
	change := ChangePercent(current, previous)
	t := AdminTile{Title: title, Value: current, Change: FormatChange(change), ChangeType: "positive"}
	if change < 0 {
		t.ChangeType = "negative"
	}
	return t
}

// ChangePercent — изменение к прошлому периоду в процентах; без базы это 100 при росте и 0 иначе.
func ChangePercent(current, previous int) float64 {
	switch {
	case previous > 0:
		return float64(current-previous) / float64(previous) * 100
	case current > 0:
		return 100
	default:
		return 0
	}
}

// FormatChange печатает изменение с одним знаком после запятой и явным плюсом.
func FormatChange(change float64) string {
	s := fmt.Sprintf("%.1f%%", change)
	if change >= 0 {
		return "+" + s
	}
	return s
}

func paginate(page, total, perPage int) Pagination {
	return Pagination{
		CurrentPage: page,
		TotalPages:  (total + perPage - 1) / perPage,
		Total:       total,
		PerPage:     perPage,
	}
}

func posterScope(p auth.Principal, posterID uuid.UUID) error {
	if !p.ActsForPoster(posterID) {
		return apperr.Forbidden("you can only view analytics for your own postings")
	}
	return nil
}
