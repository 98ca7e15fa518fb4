package listing

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/candidate"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/match"
	"github.com/artem13815/jobboard/pkg/relation"
)

// MinRecommendedMatches — сколько критериев должно совпасть, чтобы вакансию рекомендовать.
const MinRecommendedMatches = 2

// JobRepository отдаёт страницу активных вакансий под фильтр и их общее число.
type JobRepository interface {
	FindActive(ctx context.Context, f JobFilter, offset, limit int) ([]job.Job, int, error)
}

type CandidateRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error)
}

// RelationRepository отдаёт страницу связей соискателя с активными вакансиями под фильтр,
// свежие первыми, и общее число таких связей.
type RelationRepository interface {
	FindByCandidate(ctx context.Context, candidateID uuid.UUID, f JobFilter, offset, limit int) ([]relation.JobRef, int, error)
}

type Service struct {
	jobs       JobRepository
	candidates CandidateRepository
	saved      RelationRepository
	applied    RelationRepository
}

func NewService(jobs JobRepository, candidates CandidateRepository, saved, applied RelationRepository) *Service {
	return &Service{jobs: jobs, candidates: candidates, saved: saved, applied: applied}
}

type scoredRef struct {
	relation.JobRef
	result match.Result
}

// List загружает соискателя, читает страницу в режиме запроса и оценивает каждую вакансию.
//
// В режиме рекомендаций вакансии с числом совпадений меньше MinRecommendedMatches отбрасываются,
// остальные сортируются по оценке. TotalJobs и TotalPages описывают нефильтрованную выборку
// хранилища, поэтому страница может быть короче Limit, хотя дальше есть ещё.
func (s *Service) List(ctx context.Context, candidateID uuid.UUID, q Query) (Page, error) {
	c, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return Page{}, err
	}
	mc := c.Matchable()

	var (
		items []Item
		total int
	)
	switch q.Mode {
	case ModeRecommended:
		items, total, err = s.recommended(ctx, mc, q)
	case ModeSaved:
		items, total, err = s.related(ctx, s.saved, candidateID, mc, q)
	case ModeApplied:
		items, total, err = s.related(ctx, s.applied, candidateID, mc, q)
	default:
		return Page{}, fmt.Errorf("listing: unexpected mode %q", q.Mode)
	}
	if err != nil {
		return Page{}, err
	}
	if items == nil {
		items = []Item{}
	}
	return Page{
		Jobs:        items,
		TotalJobs:   total,
		CurrentPage: q.Page,
		TotalPages:  TotalPages(total, q.Limit),
	}, nil
}

func (s *Service) recommended(ctx context.Context, mc match.Candidate, q Query) ([]Item, int, error) {
	jobs, total, err := s.jobs.FindActive(ctx, q.Filter, q.Offset, q.Limit)
	if err != nil {
		return nil, 0, err
	}
	scored := make([]scoredRef, 0, len(jobs))
	for _, j := range jobs {
		r := match.Score(j.Matchable(), mc)
		if r.MatchCount < MinRecommendedMatches {
			continue
		}
		scored = append(scored, scoredRef{JobRef: relation.JobRef{Job: j}, result: r})
	}
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].result.Score > scored[b].result.Score })

	items := make([]Item, 0, len(scored))
	for _, sr := range scored {
		items = append(items, formatItem(sr.Job, sr.result))
	}
	return items, total, nil
}

func (s *Service) related(ctx context.Context, repo RelationRepository, candidateID uuid.UUID, mc match.Candidate, q Query) ([]Item, int, error) {
	refs, total, err := repo.FindByCandidate(ctx, candidateID, q.Filter, q.Offset, q.Limit)
	if err != nil {
		return nil, 0, err
	}
	items := make([]Item, 0, len(refs))
	for _, ref := range refs {
		sr := scoredRef{JobRef: ref, result: match.Score(ref.Job.Matchable(), mc)}
		items = append(items, formatRelationItem(q.Mode, sr))
	}
	return items, total, nil
}
