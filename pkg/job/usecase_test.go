package job

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/auth"
)

type memJobs struct {
	jobs map[uuid.UUID]Job
}

func newMemJobs() *memJobs { return &memJobs{jobs: map[uuid.UUID]Job{}} }

func (m *memJobs) Create(_ context.Context, j Job) error { m.jobs[j.ID] = j; return nil }

func (m *memJobs) GetByID(_ context.Context, id uuid.UUID) (Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return Job{}, apperr.NotFound("job not found")
	}
	return j, nil
}

func (m *memJobs) Update(_ context.Context, j Job) error { m.jobs[j.ID] = j; return nil }

func (m *memJobs) SetStatus(_ context.Context, id uuid.UUID, st Status) error {
	j := m.jobs[id]
	j.Status = st
	m.jobs[id] = j
	return nil
}

func (m *memJobs) ListBoard(_ context.Context, _ BoardFilter, limit, offset int) ([]Job, int, error) {
	var all []Job
	for _, j := range m.jobs {
		if j.Status == StatusActive {
			all = append(all, j)
		}
	}
	sort.Slice(all, func(a, b int) bool { return all[a].Title < all[b].Title })
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

func (m *memJobs) Facets(context.Context) (Facets, error)               { return Facets{}, nil }
func (m *memJobs) IndustryStats(context.Context) ([]FacetCount, error) { return nil, nil }
func (m *memJobs) ActiveKeySkills(context.Context) ([]string, error)   { return nil, nil }

func fixedService(repo Repository, now time.Time) *service {
	s := NewService(repo, 2).(*service)
	s.now = func() time.Time { return now }
	return s
}

var (
	employer  = auth.Principal{UserID: uuid.New(), Role: auth.RoleEmployer}
	candidate = auth.Principal{UserID: uuid.New(), Role: auth.RoleCandidate}
	admin     = auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin}
)

func TestCreateNormalizesAndActivates(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := newMemJobs()
	s := fixedService(repo, now)

	j, err := s.Create(context.Background(), employer, Job{
		Title: "backend engineer", CompanyName: "acme corp", Location: "remote",
		Description: "build things. ship them.", MinExp: 1, MaxExp: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", j.Title)
	assert.Equal(t, "Acme Corp", j.CompanyName)
	assert.Equal(t, "Remote", j.Location)
	assert.Equal(t, "Build things. Ship them.", j.Description)
	assert.Equal(t, StatusActive, j.Status)
	assert.Equal(t, employer.UserID, j.PostedBy)
	assert.Equal(t, "employer", j.PostedByRole)
	assert.Equal(t, now, j.PostedAt)
	assert.Contains(t, repo.jobs, j.ID)
}

func TestCreateRejects(t *testing.T) {
	s := fixedService(newMemJobs(), time.Now())
	ctx := context.Background()

	_, err := s.Create(ctx, candidate, Job{Title: "x", CompanyName: "y"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = s.Create(ctx, employer, Job{Title: " ", CompanyName: "y"})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = s.Create(ctx, employer, Job{Title: "x", CompanyName: "y", MinExp: 5, MaxExp: 2})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestUpdateOnlyByPosterOrAdmin(t *testing.T) {
	s := fixedService(newMemJobs(), time.Now())
	ctx := context.Background()
	j, err := s.Create(ctx, employer, Job{Title: "a", CompanyName: "b", MaxExp: 2})
	require.NoError(t, err)

	title := "platform engineer"
	other := auth.Principal{UserID: uuid.New(), Role: auth.RoleRecruiter}
	_, err = s.Update(ctx, other, j.ID, Update{Title: &title})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	got, err := s.Update(ctx, admin, j.ID, Update{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", got.Title)
	assert.Equal(t, "B", got.CompanyName)

	_, err = s.Update(ctx, admin, uuid.New(), Update{Title: &title})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSetStatusAndDelete(t *testing.T) {
	repo := newMemJobs()
	s := fixedService(repo, time.Now())
	ctx := context.Background()
	j, err := s.Create(ctx, employer, Job{Title: "a", CompanyName: "b"})
	require.NoError(t, err)

	_, err = s.SetStatus(ctx, employer, j.ID, "active")
	assert.EqualError(t, err, "Invalid status")

	got, err := s.SetStatus(ctx, employer, j.ID, "In-Active")
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, got.Status)

	_, err = s.SetStatus(ctx, employer, j.ID, "Active")
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, employer, j.ID))
	assert.Equal(t, StatusInactive, repo.jobs[j.ID].Status)
}

func TestBoardPaginates(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := newMemJobs()
	for i, title := range []string{"a", "b", "c"} {
		id := uuid.New()
		repo.jobs[id] = Job{ID: id, Title: title, Status: StatusActive, PostedAt: now.Add(-time.Duration(i+1) * 24 * time.Hour)}
	}
	s := fixedService(repo, now)

	p, err := s.Board(context.Background(), BoardFilter{}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalJobs)
	assert.Equal(t, 2, p.TotalPages)
	require.Len(t, p.Jobs, 1)
	assert.Equal(t, "c", p.Jobs[0].Title)
	assert.Equal(t, "3 days ago", p.Jobs[0].Posted)

	_, err = s.Board(context.Background(), BoardFilter{}, 0)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("Active")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, st)
	_, err = ParseStatus("Inactive")
	assert.Error(t, err)
}

func TestUpdateApplyCopiesSlices(t *testing.T) {
	skills := []string{"go"}
	j := Update{KeySkills: &skills}.Apply(Job{KeySkills: []string{"java"}})
	skills[0] = "rust"
	assert.Equal(t, []string{"go"}, j.KeySkills)
}
