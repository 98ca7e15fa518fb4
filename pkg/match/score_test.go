package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remoteJavaJob() Job {
	return Job{
		KeySkills:   []string{"java", "sql"},
		Location:    "Remote",
		MinExp:      2,
		MaxExp:      5,
		SalaryRange: "500000-800000",
		JobType:     "Full-time",
	}
}

func TestScoreAllCriteriaRemote(t *testing.T) {
	c := Candidate{
		Skills:            []string{"Java", "Python"},
		PreferredLocation: "Delhi",
		TotalExperience:   "3",
		ExpectedSalary:    "6",
		PreferredJobType:  "Full-time",
	}
	assert.Equal(t, Result{MatchCount: 5, Score: 70}, Score(remoteJavaJob(), c))
}

func TestScoreNothingMatches(t *testing.T) {
	c := Candidate{
		Skills:            []string{"cobol"},
		PreferredLocation: "Mumbai",
		TotalExperience:   "12 years",
		ExpectedSalary:    "40 LPA",
		PreferredJobType:  "Internship",
	}
	j := remoteJavaJob()
	j.Location = "Pune"
	assert.Equal(t, Result{}, Score(j, c))
}

func TestScoreClampsToHundred(t *testing.T) {
	skills := []string{"go", "sql", "docker", "kubernetes", "redis", "kafka"}
	j := Job{KeySkills: skills, Location: "Bengaluru", MinExp: 1, MaxExp: 4, SalaryRange: "x"}
	c := Candidate{
		Skills:            []string{"Go", "SQL", "Docker", "Kubernetes", "Redis", "Kafka"},
		PreferredLocation: "bengaluru",
		TotalExperience:   "2",
	}
	r := Score(j, c)
	assert.Equal(t, 3, r.MatchCount)
	assert.Equal(t, 100, r.Score)
}

func TestScoreCriteriaAreIndependent(t *testing.T) {
	base := Job{Location: "Pune", MinExp: 10, MaxExp: 12, SalaryRange: "1-2", JobType: "Contract"}
	empty := Candidate{PreferredLocation: "Chennai", TotalExperience: "1", ExpectedSalary: "90", PreferredJobType: "Part-time"}
	require.Equal(t, Result{}, Score(base, empty))

	tests := []struct {
		name   string
		mutate func(j *Job, c *Candidate)
		score  int
	}{
		{"one skill", func(j *Job, c *Candidate) { j.KeySkills = []string{"Go"}; c.Skills = []string{"go"} }, 20},
		{"two skills", func(j *Job, c *Candidate) { j.KeySkills = []string{"Go", "SQL"}; c.Skills = []string{"go", "sql"} }, 40},
		{"exact location", func(_ *Job, c *Candidate) { c.PreferredLocation = "PUNE" }, 20},
		{"remote location", func(j *Job, _ *Candidate) { j.Location = "remote" }, 10},
		{"experience lower bound", func(_ *Job, c *Candidate) { c.TotalExperience = "10" }, 15},
		{"experience upper bound", func(_ *Job, c *Candidate) { c.TotalExperience = "12 years" }, 15},
		{"salary", func(j *Job, _ *Candidate) { j.SalaryRange = "8000000-9500000" }, 15},
		{"job type", func(j *Job, _ *Candidate) { j.JobType = "PART-TIME" }, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, c := base, empty
			tt.mutate(&j, &c)
			assert.Equal(t, Result{MatchCount: 1, Score: tt.score}, Score(j, c))
		})
	}
}

func TestScoreLocationNeedsPreference(t *testing.T) {
	j := Job{Location: "Remote", SalaryRange: "1-2", MinExp: 5, MaxExp: 6}
	assert.Equal(t, 0, Score(j, Candidate{}).MatchCount)
	assert.Equal(t, Result{MatchCount: 1, Score: 20}, Score(j, Candidate{PreferredLocation: "remote"}))
}

func TestScoreNonNumericSalary(t *testing.T) {
	c := Candidate{ExpectedSalary: "abc", TotalExperience: "-1"}
	assert.Equal(t, int64(0), ExpectedSalary("abc"))

	withZeroMin := Job{SalaryRange: "0-500000"}
	assert.Equal(t, Result{MatchCount: 1, Score: 15}, Score(withZeroMin, c))

	withPositiveMin := Job{SalaryRange: "300000-500000"}
	assert.Equal(t, Result{}, Score(withPositiveMin, c))
}

func TestScoreDoesNotMutateInputs(t *testing.T) {
	j := remoteJavaJob()
	c := Candidate{Skills: []string{"Java"}, PreferredLocation: "Delhi"}
	Score(j, c)
	assert.Equal(t, []string{"java", "sql"}, j.KeySkills)
	assert.Equal(t, []string{"Java"}, c.Skills)
}

func TestSalaryBounds(t *testing.T) {
	tests := []struct {
		in     string
		lo, hi int64
		ok     bool
	}{
		{"500000-800000", 500000, 800000, true},
		{" 300000 - 600000 ", 300000, 600000, true},
		{"₹20-30 LPA", 0, 30, true},
		{"negotiable", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lo, hi, ok := SalaryBounds(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestExpectedSalaryStripsNonDigits(t *testing.T) {
	assert.Equal(t, int64(500000), ExpectedSalary("5 LPA"))
	assert.Equal(t, int64(1200000), ExpectedSalary("₹12"))
	assert.Equal(t, int64(0), ExpectedSalary(""))
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"3", 3, true},
		{"2 years", 2, true},
		{"  7yrs", 7, true},
		{"-4", -4, true},
		{"Fresher", 0, false},
		{"", 0, false},
		{"+", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, ok := LeadingInt(tt.in)
			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
