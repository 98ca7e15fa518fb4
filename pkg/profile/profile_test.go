package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/candidate"
)

func TestTasksEmptyProfile(t *testing.T) {
	got := Tasks(candidate.Candidate{})
	assert.Equal(t, 0, got.CompletedTasks)
	assert.Equal(t, 7, got.TotalTasks)
	assert.Equal(t, 0, got.CompletionPercentage)
	require.Len(t, got.Tasks, 7)
	assert.Equal(t, Task{ID: 1, Label: "Upload resume"}, got.Tasks[0])
	assert.Equal(t, Task{ID: 7, Label: "Add projects"}, got.Tasks[6])
}

func TestTasksPartialProfile(t *testing.T) {
	c := candidate.Candidate{
		ResumeURL: "/uploads/cv.pdf",
		Skills:    []string{"go"},
		About:     "   ",
		Education: []candidate.EducationItem{{Degree: "BSc"}},
	}
	got := Tasks(c)
	assert.Equal(t, 3, got.CompletedTasks)
	assert.Equal(t, 43, got.CompletionPercentage)

	done := map[string]bool{}
	for _, task := range got.Tasks {
		done[task.Label] = task.Completed
	}
	assert.True(t, done["Upload resume"])
	assert.True(t, done["Add education"])
	assert.False(t, done["Complete about section"])
	assert.False(t, done["Add work experience"])
}

func TestTasksFullProfile(t *testing.T) {
	c := candidate.Candidate{
		ResumeURL:    "r",
		Experience:   []candidate.ExperienceItem{{CompanyName: "Acme"}},
		Education:    []candidate.EducationItem{{Degree: "BSc"}},
		Skills:       []string{"go"},
		About:        "hi",
		ProfileImage: "img.png",
		Projects:     []candidate.Project{{ProjectName: "p"}},
	}
	assert.Equal(t, 100, Tasks(c).CompletionPercentage)
}

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		cur, prev int
		want      string
	}{
		{0, 0, "+0% from last month"},
		{3, 0, "+100% from last month"},
		{0, 4, "-100% from last month"},
		{9, 8, "+12.50% from last month"},
		{1, 3, "-66.67% from last month"},
		{5, 5, "+0.00% from last month"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PercentageChange(tt.cur, tt.prev))
	}
}

func TestProfileStrength(t *testing.T) {
	assert.Equal(t, 0, ProfileStrength(candidate.Candidate{}))
	c := candidate.Candidate{FullName: "Ann", Email: "a@x.io", Phone: "1", Skills: []string{"go"}}
	assert.Equal(t, 33, ProfileStrength(c))
}

type window struct{ from, to time.Time }

type countByWindow struct {
	counts map[time.Time]int
	calls  []window
	err    error
}

func (c *countByWindow) CountCreatedBetween(_ context.Context, _ uuid.UUID, from, to time.Time) (int, error) {
	c.calls = append(c.calls, window{from, to})
	return c.counts[from], c.err
}

type oneCandidate candidate.Candidate

func (o oneCandidate) GetByID(_ context.Context, id uuid.UUID) (candidate.Candidate, error) {
	if id != o.ID {
		return candidate.Candidate{}, apperr.NotFound("Candidate not found")
	}
	return candidate.Candidate(o), nil
}

func TestStatsUsesCalendarMonths(t *testing.T) {
	c := candidate.Candidate{ID: uuid.New(), FullName: "Ann", Email: "a@x.io", ResumeURL: "r"}
	mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	applied := &countByWindow{counts: map[time.Time]int{mar: 9, feb: 8}}
	saved := &countByWindow{counts: map[time.Time]int{mar: 0, feb: 2}}

	s := NewStatsService(oneCandidate(c), applied, saved)
	s.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }

	st, err := s.Stats(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, Stats{
		JobsApplied:                 9,
		SavedJobs:                   0,
		ProfileStrength:             25,
		JobsAppliedPercentageChange: "+12.50% from last month",
		SavedJobsPercentageChange:   "-100% from last month",
	}, st)
	require.Len(t, applied.calls, 2)
	assert.Equal(t, mar, applied.calls[0].from)
	assert.Equal(t, mar, applied.calls[1].to)
	assert.Equal(t, feb, applied.calls[1].from)
}

func TestStatsErrors(t *testing.T) {
	c := candidate.Candidate{ID: uuid.New()}
	s := NewStatsService(oneCandidate(c), &countByWindow{}, &countByWindow{})
	_, err := s.Stats(context.Background(), uuid.New())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	down := apperr.Transient(errors.New("timeout"))
	s = NewStatsService(oneCandidate(c), &countByWindow{err: down}, &countByWindow{})
	_, err = s.Stats(context.Background(), c.ID)
	assert.Equal(t, apperr.KindTransient, apperr.KindOf(err))
}
