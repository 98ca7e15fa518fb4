package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/relation"
)

var now = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

type stubRepo struct {
	posters    map[uuid.UUID]bool
	employer   EmployerCounts
	gotToday   time.Time
	months     map[int]int
	gotRange   Range
	applicants []Applicant
	total      int
	gotLimit   int
	gotOffset  int
	admin      AdminCounts
	gotCur     Range
	gotPrev    Range
}

func (s *stubRepo) PosterExists(_ context.Context, id uuid.UUID) (bool, error) {
	return s.posters[id], nil
}

func (s *stubRepo) EmployerCounts(_ context.Context, _ uuid.UUID, today time.Time) (EmployerCounts, error) {
	s.gotToday = today
	return s.employer, nil
}

func (s *stubRepo) MonthlyApplications(_ context.Context, _ uuid.UUID, r Range) (map[int]int, error) {
	s.gotRange = r
	return s.months, nil
}

func (s *stubRepo) RecentApplicants(_ context.Context, _ uuid.UUID, limit, offset int) ([]Applicant, int, error) {
	s.gotLimit, s.gotOffset = limit, offset
	return s.applicants, s.total, nil
}

func (s *stubRepo) AdminCounts(_ context.Context, cur, prev Range) (AdminCounts, error) {
	s.gotCur, s.gotPrev = cur, prev
	return s.admin, nil
}

type stubJobs struct {
	jobs      []job.Job
	total     int
	facets    PosterFacets
	gotFilter PosterJobFilter
	gotStatus job.Status
	gotLimit  int
	gotOffset int
}

func (s *stubJobs) ListByPoster(_ context.Context, _ uuid.UUID, f PosterJobFilter, limit, offset int) ([]job.Job, int, error) {
	s.gotFilter, s.gotLimit, s.gotOffset = f, limit, offset
	return s.jobs, s.total, nil
}

func (s *stubJobs) PosterFacets(context.Context, uuid.UUID) (PosterFacets, error) {
	return s.facets, nil
}

func (s *stubJobs) ListByStatus(_ context.Context, st job.Status, limit, offset int) ([]job.Job, int, error) {
	s.gotStatus, s.gotLimit, s.gotOffset = st, limit, offset
	return s.jobs, s.total, nil
}

type fixture struct {
	svc      UseCase
	repo     *stubRepo
	jobs     *stubJobs
	employer auth.Principal
	admin    auth.Principal
}

func newFixture() *fixture {
	f := &fixture{
		repo:     &stubRepo{posters: map[uuid.UUID]bool{}},
		jobs:     &stubJobs{},
		employer: auth.Principal{UserID: uuid.New(), Role: auth.RoleEmployer},
		admin:    auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin},
	}
	f.repo.posters[f.employer.UserID] = true
	f.svc = &service{repo: f.repo, jobs: f.jobs, now: func() time.Time { return now }}
	return f
}

func TestEmployerStatsTiles(t *testing.T) {
	f := newFixture()
	f.repo.employer = EmployerCounts{ActiveJobs: 3, TotalApplicants: 12, Shortlisted: 0, AppliedToday: 2, Interviews: 1}

	tiles, err := f.svc.EmployerStats(context.Background(), f.employer, f.employer.UserID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), f.repo.gotToday)
	assert.Equal(t, []Tile{
		{Title: "Active Jobs", Value: 3, Trend: "+3 jobs active"},
		{Title: "Total Applicants", Value: 12, Trend: "12 applications received"},
		{Title: "Shortlisted", Value: 0, Trend: "No shortlisted candidates"},
		{Title: "Today's Applications", Value: 2, Trend: "2 applied today"},
		{Title: "Interviews", Value: 1, Trend: "1 scheduled interviews"},
	}, tiles)
}

func TestEmployerEndpointsAreScopedToPoster(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	other := uuid.New()

	tests := []struct {
		name string
		p    auth.Principal
		ok   bool
	}{
		{"poster", f.employer, true},
		{"admin", f.admin, true},
		{"other employer", auth.Principal{UserID: other, Role: auth.RoleEmployer}, false},
		{"candidate", auth.Principal{UserID: f.employer.UserID, Role: auth.RoleCandidate}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.EmployerStats(ctx, tt.p, f.employer.UserID)
			_, err2 := f.svc.ApplicationTrends(ctx, tt.p, f.employer.UserID)
			_, err3 := f.svc.RecentApplicants(ctx, tt.p, f.employer.UserID, 1)
			_, err4 := f.svc.PosterFacets(ctx, tt.p, f.employer.UserID)
			for _, e := range []error{err, err2, err3, err4} {
				if tt.ok {
					assert.NoError(t, e)
				} else {
					assert.Equal(t, apperr.KindForbidden, apperr.KindOf(e))
				}
			}
		})
	}
}

func TestApplicationTrendsFillsTwelveMonths(t *testing.T) {
	f := newFixture()
	f.repo.months = map[int]int{1: 4, 3: 7, 13: 99}

	got, err := f.svc.ApplicationTrends(context.Background(), f.employer, f.employer.UserID)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 0, 7, 0, 0, 0, 0, 0, 0, 0, 0, 0}, got)
	assert.Equal(t, Range{
		From: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}, f.repo.gotRange)

	f.repo.months = nil
	got, err = f.svc.ApplicationTrends(context.Background(), f.employer, f.employer.UserID)
	require.NoError(t, err)
	assert.Len(t, got, 12)
}

func TestRecentApplicantsPaginatesAndFormats(t *testing.T) {
	f := newFixture()
	f.repo.total = 23
	f.repo.applicants = []Applicant{
		{Name: "Asha", AppliedAt: now.Add(-2 * time.Hour), Status: relation.StatusNew},
		{Name: "Ravi", AppliedAt: now.Add(-30 * time.Hour), Skills: []string{"go"}},
	}

	page, err := f.svc.RecentApplicants(context.Background(), f.employer, f.employer.UserID, 3)
	require.NoError(t, err)
	assert.Equal(t, 10, f.repo.gotLimit)
	assert.Equal(t, 20, f.repo.gotOffset)
	assert.Equal(t, Pagination{CurrentPage: 3, TotalPages: 3, Total: 23, PerPage: 10}, page.Pagination)
	require.Len(t, page.Applicants, 2)
	assert.Equal(t, "Today", page.Applicants[0].Applied)
	assert.Equal(t, []string{}, page.Applicants[0].Skills)
	assert.Equal(t, "Yesterday", page.Applicants[1].Applied)

	_, err = f.svc.RecentApplicants(context.Background(), f.employer, f.employer.UserID, 0)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestAppliedText(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"same day", now.Add(-time.Minute), "Today"},
		{"future", now.Add(time.Hour), "Today"},
		{"one day", now.Add(-25 * time.Hour), "Yesterday"},
		{"three days", now.AddDate(0, 0, -3), "3 days ago"},
		{"a week", now.AddDate(0, 0, -7), "7 days ago"},
		{"older", now.AddDate(0, 0, -8), "3/7/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AppliedText(tt.at, now))
		})
	}
}

func TestPosterJobs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.jobs.total = 11

	page, err := f.svc.PosterJobs(ctx, f.employer, f.employer.UserID, PosterJobFilter{Status: job.StatusInactive, Location: "pune"}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultJobsLimit, f.jobs.gotLimit)
	assert.Equal(t, 10, f.jobs.gotOffset)
	assert.Equal(t, PosterJobFilter{Status: job.StatusInactive, Location: "pune"}, f.jobs.gotFilter)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, []job.Job{}, page.Jobs)

	tests := []struct {
		name        string
		f           PosterJobFilter
		page, limit int
	}{
		{"bad status", PosterJobFilter{Status: "Closed"}, 1, 10},
		{"zero page", PosterJobFilter{}, 0, 10},
		{"limit too large", PosterJobFilter{}, 1, MaxJobsLimit + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.PosterJobs(ctx, f.employer, f.employer.UserID, tt.f, tt.page, tt.limit)
			assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
		})
	}

	ghost := uuid.New()
	_, err = f.svc.PosterJobs(ctx, f.admin, ghost, PosterJobFilter{}, 1, 10)
	assert.Equal(t, "Employer not found", apperr.Message(err))
}

func TestPosterFacetsAreSortedAndCapitalized(t *testing.T) {
	f := newFixture()
	f.jobs.facets = PosterFacets{
		Locations: []string{"pune", "", "new delhi", "Pune"},
		Statuses:  []string{"In-Active", "Active"},
		JobTypes:  []string{"Remote", "Full-time"},
	}

	got, err := f.svc.PosterFacets(context.Background(), f.employer, f.employer.UserID)
	require.NoError(t, err)
	assert.Equal(t, PosterFacets{
		Locations: []string{"", "New delhi", "Pune"},
		Statuses:  []string{"Active", "In-Active"},
		JobTypes:  []string{"Full-time", "Remote"},
	}, got)
}

func TestAdminJobs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.jobs.jobs = []job.Job{{Title: "Go Developer", PostedAt: now.AddDate(0, 0, -2)}}
	f.jobs.total = 31

	page, err := f.svc.AdminJobs(ctx, f.admin, job.StatusInactive, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, job.StatusInactive, f.jobs.gotStatus)
	assert.Equal(t, 20, f.jobs.gotOffset)
	assert.Equal(t, DefaultJobsLimit, f.jobs.gotLimit)
	assert.Equal(t, 31, page.TotalJobs)
	require.Len(t, page.Jobs, 1)
	assert.Equal(t, "2 days ago", page.Jobs[0].Posted)

	_, err = f.svc.AdminJobs(ctx, f.employer, job.StatusActive, 0, 10)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	_, err = f.svc.AdminJobs(ctx, f.admin, job.StatusActive, -1, 10)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestAdminStats(t *testing.T) {
	f := newFixture()
	f.repo.admin = AdminCounts{
		ActiveJobs:            30,
		ActiveClosingCurrent:  6,
		ActiveClosingPrevious: 8,
		CandidatesCurrent:     5,
		CandidatesPrevious:    0,
	}

	tiles, err := f.svc.AdminStats(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Equal(t, Range{
		From: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
	}, f.repo.gotCur)
	assert.Equal(t, Range{
		From: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}, f.repo.gotPrev)
	assert.Equal(t, []AdminTile{
		{Title: "Total Jobs", Value: 30, Change: "+275.0%", ChangeType: "positive"},
		{Title: "Active Jobs", Value: 6, Change: "-25.0%", ChangeType: "negative"},
		{Title: "Registered Candidates", Value: 5, Change: "+100.0%", ChangeType: "positive"},
	}, tiles)

	_, err = f.svc.AdminStats(context.Background(), f.employer)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestChangePercent(t *testing.T) {
	tests := []struct {
		cur, prev int
		want      string
	}{
		{0, 0, "+0.0%"},
		{4, 0, "+100.0%"},
		{0, 4, "-100.0%"},
		{3, 2, "+50.0%"},
		{2, 3, "-33.3%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatChange(ChangePercent(tt.cur, tt.prev)), "%d vs %d", tt.cur, tt.prev)
	}
}
