package candidate

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/match"
)

// Candidate — профиль соискателя.
type Candidate struct {
	ID                uuid.UUID        `json:"id"`
	CreatedBy         uuid.UUID        `json:"createdBy"`
	FullName          string           `json:"fullName"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	City              string           `json:"city"`
	About             string           `json:"about"`
	ProfileImage      string           `json:"profileImage"`
	Skills            []string         `json:"skills"`
	PreferredLocation string           `json:"preferredLocation"`
	TotalExperience   string           `json:"totalExperience"`
	ExpectedSalary    string           `json:"expectedSalary"`
	PreferredJobType  string           `json:"preferredJobType"`
	NoticePeriod      string           `json:"noticePeriod"`
	ResumeURL         string           `json:"resumeUrl"`
	Experience        []ExperienceItem `json:"experience"`
	Education         []EducationItem  `json:"education"`
	Projects          []Project        `json:"projects"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

type ExperienceItem struct {
	CompanyName      string     `json:"companyName"`
	JobTitle         string     `json:"jobTitle"`
	Location         string     `json:"location,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	CurrentlyWorking bool       `json:"currentlyWorking"`
	Description      string     `json:"description,omitempty"`
}

type EducationItem struct {
	Degree      string `json:"degree"`
	Stream      string `json:"stream,omitempty"`
	Institute   string `json:"institute"`
	PassingYear int    `json:"passingYear,omitempty"`
	Score       string `json:"score,omitempty"`
}

type Project struct {
	ProjectName  string   `json:"projectName"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty"`
}

// Matchable отдаёт то, что читает оценка совпадения.
func (c Candidate) Matchable() match.Candidate {
	return match.Candidate{
		Skills:            c.Skills,
		PreferredLocation: c.PreferredLocation,
		TotalExperience:   c.TotalExperience,
		ExpectedSalary:    c.ExpectedSalary,
		PreferredJobType:  c.PreferredJobType,
	}
}

// ProfileUpdate — поля, которые соискатель может править. Nil-поля не трогаются,
// не-nil указатель на срез заменяет список целиком.
type ProfileUpdate struct {
	FullName          *string
	Phone             *string
	City              *string
	About             *string
	ProfileImage      *string
	Skills            *[]string
	PreferredLocation *string
	TotalExperience   *string
	ExpectedSalary    *string
	PreferredJobType  *string
	NoticePeriod      *string
	Experience        *[]ExperienceItem
	Education         *[]EducationItem
	Projects          *[]Project
}

// Apply возвращает копию c с применёнными не-nil полями u.
func (u ProfileUpdate) Apply(c Candidate) Candidate {
	for _, f := range []struct {
		dst *string
		src *string
	}{
		{&c.FullName, u.FullName},
		{&c.Phone, u.Phone},
		{&c.City, u.City},
		{&c.About, u.About},
		{&c.ProfileImage, u.ProfileImage},
		{&c.PreferredLocation, u.PreferredLocation},
		{&c.TotalExperience, u.TotalExperience},
		{&c.ExpectedSalary, u.ExpectedSalary},
		{&c.PreferredJobType, u.PreferredJobType},
		{&c.NoticePeriod, u.NoticePeriod},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	if u.Skills != nil {
		c.Skills = append([]string(nil), (*u.Skills)...)
	}
	if u.Experience != nil {
		c.Experience = append([]ExperienceItem(nil), (*u.Experience)...)
	}
	if u.Education != nil {
		c.Education = append([]EducationItem(nil), (*u.Education)...)
	}
	if u.Projects != nil {
		c.Projects = append([]Project(nil), (*u.Projects)...)
	}
	return c
}

// Repository — порт хранения профилей соискателей.
type Repository interface {
	Create(ctx context.Context, c Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (Candidate, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, c Candidate) error
	// SaveResume сохраняет ссылку на файл и извлечённый текст.
	SaveResume(ctx context.Context, id uuid.UUID, url, text string) error
	GetResumeText(ctx context.Context, id uuid.UUID) (string, error)
}

// FileStore хранит загруженные резюме и возвращает их расположение.
type FileStore interface {
	Save(ctx context.Context, candidateID uuid.UUID, ext string, data []byte) (string, error)
}

// SkillSource перечисляет ключевые навыки вакансий, видимых соискателям.
type SkillSource interface {
	ActiveKeySkills(ctx context.Context) ([]string, error)
}
