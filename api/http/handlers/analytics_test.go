package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/artem13815/jobboard/pkg/analytics"
	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/security/jwt"
)

type fakeAnalytics struct {
	analytics.UseCase
	gotFilter analytics.PosterJobFilter
	gotPage   int
	gotLimit  int
	gotStatus job.Status
	gotOffset int
}

func (f *fakeAnalytics) EmployerStats(_ context.Context, p auth.Principal, posterID uuid.UUID) ([]analytics.Tile, error) {
	if !p.ActsForPoster(posterID) {
		return nil, apperr.Forbidden("you can only view analytics for your own postings")
	}
	return []analytics.Tile{{Title: "Active Jobs", Value: 2, Trend: "+2 jobs active"}}, nil
}

func (f *fakeAnalytics) PosterJobs(_ context.Context, _ auth.Principal, _ uuid.UUID, flt analytics.PosterJobFilter, page, limit int) (analytics.PosterJobsPage, error) {
	f.gotFilter, f.gotPage, f.gotLimit = flt, page, limit
	return analytics.PosterJobsPage{Jobs: []job.Job{}}, nil
}

func (f *fakeAnalytics) AdminJobs(_ context.Context, p auth.Principal, status job.Status, offset, limit int) (analytics.AdminJobsPage, error) {
	if !p.IsAdmin() {
		return analytics.AdminJobsPage{}, apperr.Forbidden("admin access required")
	}
	f.gotStatus, f.gotOffset, f.gotLimit = status, offset, limit
	return analytics.AdminJobsPage{Jobs: []job.BoardItem{}, TotalJobs: 7}, nil
}

func newAnalyticsEnv(t *testing.T) (*testEnv, *fakeAnalytics) {
	t.Helper()
	fake := &fakeAnalytics{}
	h := NewAnalyticsHandler(fake, zap.NewNop())
	app := fiber.New()
	mw := jwt.NewAuthMiddleware(testSecret, testIssuer)
	e := app.Group("/employers", mw)
	e.Get("/:id/stats", h.EmployerStats)
	e.Get("/:id/jobs", h.PosterJobs)
	adm := app.Group("/admin", mw)
	adm.Get("/jobs", h.ActiveJobs)
	adm.Get("/jobs/inactive", h.InactiveJobs)
	return &testEnv{app: app}, fake
}

func TestEmployerStatsScope(t *testing.T) {
	env, _ := newAnalyticsEnv(t)
	employer := auth.User{ID: uuid.New(), Role: auth.RoleEmployer}

	tests := []struct {
		name   string
		target string
		user   auth.User
		status int
		msg    string
	}{
		{"own postings", "/employers/" + employer.ID.String() + "/stats", employer, http.StatusOK, ""},
		{"admin", "/employers/" + employer.ID.String() + "/stats", auth.User{ID: uuid.New(), Role: auth.RoleAdmin}, http.StatusOK, ""},
		{"other employer", "/employers/" + uuid.NewString() + "/stats", employer, http.StatusForbidden, ""},
		{"candidate", "/employers/" + employer.ID.String() + "/stats", auth.User{ID: uuid.New(), Role: auth.RoleCandidate}, http.StatusForbidden, ""},
		{"bad id", "/employers/nope/stats", employer, http.StatusBadRequest, "Invalid employer ID"},
		{"anonymous", "/employers/" + employer.ID.String() + "/stats", auth.User{}, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.do(t, http.MethodGet, tt.target, "", tt.user)
			assert.Equal(t, tt.status, status)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, body["message"])
			}
			if tt.status == http.StatusOK {
				require.Len(t, body["stats"], 1)
			}
		})
	}
}

func TestPosterJobsPassesFilter(t *testing.T) {
	env, fake := newAnalyticsEnv(t)
	employer := auth.User{ID: uuid.New(), Role: auth.RoleEmployer}
	base := "/employers/" + employer.ID.String() + "/jobs"

	status, body := env.do(t, http.MethodGet, base+"?page=2&limit=5&status=Active&jobType=Remote&location=berlin", "", employer)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["jobs"])
	assert.Equal(t, 2, fake.gotPage)
	assert.Equal(t, 5, fake.gotLimit)
	assert.Equal(t, analytics.PosterJobFilter{Status: job.StatusActive, JobType: "Remote", Location: "berlin"}, fake.gotFilter)

	status, body = env.do(t, http.MethodGet, base+"?limit=abc", "", employer)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid page or limit", body["message"])
}

func TestAdminJobLists(t *testing.T) {
	env, fake := newAnalyticsEnv(t)
	admin := auth.User{ID: uuid.New(), Role: auth.RoleAdmin}

	status, body := env.do(t, http.MethodGet, "/admin/jobs/inactive?offset=20&limit=5", "", admin)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, job.StatusInactive, fake.gotStatus)
	assert.Equal(t, 20, fake.gotOffset)
	assert.Equal(t, 5, fake.gotLimit)
	assert.EqualValues(t, 7, body["totalJobs"])

	status, _ = env.do(t, http.MethodGet, "/admin/jobs", "", admin)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, job.StatusActive, fake.gotStatus)
	assert.Equal(t, analytics.DefaultJobsLimit, fake.gotLimit)

	for _, q := range []string{"?offset=-1", "?offset=x", "?limit=0"} {
		t.Run(q, func(t *testing.T) {
			status, body := env.do(t, http.MethodGet, "/admin/jobs"+q, "", admin)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "Invalid offset or limit", body["message"])
		})
	}

	employer := auth.User{ID: uuid.New(), Role: auth.RoleEmployer}
	status, _ = env.do(t, http.MethodGet, "/admin/jobs", "", employer)
	assert.Equal(t, http.StatusForbidden, status)
}
