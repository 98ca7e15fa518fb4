package profile

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/candidate"
)

// ActivityCounter считает связи соискателя, созданные в [from, to).
type ActivityCounter interface {
	CountCreatedBetween(ctx context.Context, candidateID uuid.UUID, from, to time.Time) (int, error)
}

type CandidateRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error)
}

type Stats struct {
	JobsApplied                 int    `json:"jobsApplied"`
	SavedJobs                   int    `json:"savedJobs"`
	ProfileStrength             int    `json:"profileStrength"`
	JobsAppliedPercentageChange string `json:"jobsAppliedPercentageChange"`
	SavedJobsPercentageChange   string `json:"savedJobsPercentageChange"`
}

type StatsService struct {
	candidates CandidateRepository
	applied    ActivityCounter
	saved      ActivityCounter
	now        func() time.Time
}

func NewStatsService(candidates CandidateRepository, applied, saved ActivityCounter) *StatsService {
	return &StatsService{candidates: candidates, applied: applied, saved: saved, now: time.Now}
}

// Stats отдаёт отклики и сохранения за текущий месяц, их изменение к прошлому
// и полноту профиля. Месяцы берутся в UTC.
func (s *StatsService) Stats(ctx context.Context, candidateID uuid.UUID) (Stats, error) {
	c, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return Stats{}, err
	}
	now := s.now().UTC()
	curStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevStart := curStart.AddDate(0, -1, 0)
	// текущее окно включает сам now
	curEnd := now.Add(time.Nanosecond)

	appliedCur, appliedPrev, err := monthPair(ctx, s.applied, candidateID, prevStart, curStart, curEnd)
	if err != nil {
		return Stats{}, err
	}
	savedCur, savedPrev, err := monthPair(ctx, s.saved, candidateID, prevStart, curStart, curEnd)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		JobsApplied:                 appliedCur,
		SavedJobs:                   savedCur,
		ProfileStrength:             ProfileStrength(c),
		JobsAppliedPercentageChange: PercentageChange(appliedCur, appliedPrev),
		SavedJobsPercentageChange:   PercentageChange(savedCur, savedPrev),
	}, nil
}

func monthPair(ctx context.Context, counter ActivityCounter, id uuid.UUID, prevStart, curStart, curEnd time.Time) (cur, prev int, err error) {
	if cur, err = counter.CountCreatedBetween(ctx, id, curStart, curEnd); err != nil {
		return 0, 0, err
	}
	if prev, err = counter.CountCreatedBetween(ctx, id, prevStart, curStart); err != nil {
		return 0, 0, err
	}
	return cur, prev, nil
}

// PercentageChange форматирует изменение к прошлому месяцу, например "+12.50% from last month".
func PercentageChange(current, previous int) string {
	switch {
	case previous == 0 && current == 0:
		return "+0% from last month"
	case previous == 0:
		return "+100% from last month"
	case current == 0:
		return "-100% from last month"
	}
	change := float64(current-previous) / float64(previous) * 100
	sign := "+"
	if change < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%.2f%% from last month", sign, math.Abs(change))
}

// ProfileStrength — доля заполненных из двенадцати полей профиля, в процентах.
func ProfileStrength(c candidate.Candidate) int {
	fields := []bool{
		filled(c.FullName),
		filled(c.Email),
		filled(c.Phone),
		len(c.Education) > 0,
		len(c.Experience) > 0,
		len(c.Skills) > 0,
		filled(c.ExpectedSalary),
		filled(c.PreferredJobType),
		filled(c.PreferredLocation),
		filled(c.ResumeURL),
		filled(c.TotalExperience),
		filled(c.NoticePeriod),
	}
	n := 0
	for _, ok := range fields {
		if ok {
			n++
		}
	}
	return percent(n, len(fields))
}
