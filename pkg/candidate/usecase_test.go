package candidate

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/apperr"
	"github.com/artem13815/jobboard/pkg/auth"
)

type memCandidates struct {
	rows    map[uuid.UUID]Candidate
	resumes map[uuid.UUID]string
}

func newMemCandidates() *memCandidates {
	return &memCandidates{rows: map[uuid.UUID]Candidate{}, resumes: map[uuid.UUID]string{}}
}

func (m *memCandidates) Create(_ context.Context, c Candidate) error {
	if _, ok := m.rows[c.ID]; ok {
		return apperr.Conflict("candidate already exists")
	}
	m.rows[c.ID] = c
	return nil
}

func (m *memCandidates) GetByID(_ context.Context, id uuid.UUID) (Candidate, error) {
	c, ok := m.rows[id]
	if !ok {
		return Candidate{}, apperr.NotFound("Candidate not found")
	}
	return c, nil
}

func (m *memCandidates) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.rows[id]
	return ok, nil
}

func (m *memCandidates) Update(_ context.Context, c Candidate) error { m.rows[c.ID] = c; return nil }

func (m *memCandidates) SaveResume(_ context.Context, id uuid.UUID, url, text string) error {
	c := m.rows[id]
	c.ResumeURL = url
	m.rows[id] = c
	m.resumes[id] = text
	return nil
}

func (m *memCandidates) GetResumeText(_ context.Context, id uuid.UUID) (string, error) {
	return m.resumes[id], nil
}

type memFiles struct{ saved map[string][]byte }

func (f *memFiles) Save(_ context.Context, id uuid.UUID, ext string, data []byte) (string, error) {
	url := "/uploads/" + id.String() + ext
	f.saved[url] = data
	return url, nil
}

type staticSkills []string

func (s staticSkills) ActiveKeySkills(context.Context) ([]string, error) { return s, nil }

func docx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>` + body + `</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestCreateUsesCallerIDForCandidates(t *testing.T) {
	repo := newMemCandidates()
	s := NewService(repo, &memFiles{saved: map[string][]byte{}}, staticSkills(nil))
	me := auth.Principal{UserID: uuid.New(), Role: auth.RoleCandidate}

	c, err := s.Create(context.Background(), me, Candidate{FullName: " Ann ", Email: "Ann@X.io", ResumeURL: "forged"})
	require.NoError(t, err)
	assert.Equal(t, me.UserID, c.ID)
	assert.Equal(t, me.UserID, c.CreatedBy)
	assert.Equal(t, "Ann", c.FullName)
	assert.Equal(t, "ann@x.io", c.Email)
	assert.Empty(t, c.ResumeURL)

	_, err = s.Create(context.Background(), me, Candidate{FullName: "Ann", Email: "a@x.io"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = s.Create(context.Background(), auth.Principal{Role: auth.RoleEmployer}, Candidate{FullName: "B", Email: "b@x.io"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestUpdateProfile(t *testing.T) {
	repo := newMemCandidates()
	s := NewService(repo, &memFiles{saved: map[string][]byte{}}, staticSkills(nil))
	me := auth.Principal{UserID: uuid.New(), Role: auth.RoleCandidate}
	_, err := s.Create(context.Background(), me, Candidate{FullName: "Ann", Email: "a@x.io", City: "Pune"})
	require.NoError(t, err)

	skills := []string{"Go"}
	loc := "Remote"
	got, err := s.Update(context.Background(), me, me.UserID, ProfileUpdate{Skills: &skills, PreferredLocation: &loc})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Skills)
	assert.Equal(t, "Remote", got.PreferredLocation)
	assert.Equal(t, "Pune", got.City)

	empty := ""
	_, err = s.Update(context.Background(), me, me.UserID, ProfileUpdate{FullName: &empty})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	other := auth.Principal{UserID: uuid.New(), Role: auth.RoleCandidate}
	_, err = s.Update(context.Background(), other, me.UserID, ProfileUpdate{City: &loc})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestUploadResumeAndSuggestSkills(t *testing.T) {
	repo := newMemCandidates()
	files := &memFiles{saved: map[string][]byte{}}
	s := NewService(repo, files, staticSkills{"Go", "Kubernetes", "Java", "SQL"})
	me := auth.Principal{UserID: uuid.New(), Role: auth.RoleCandidate}
	_, err := s.Create(context.Background(), me, Candidate{FullName: "Ann", Email: "a@x.io", Skills: []string{"go"}})
	require.NoError(t, err)

	_, err = s.SuggestSkills(context.Background(), me, me.UserID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	c, err := s.UploadResume(context.Background(), me, me.UserID, "CV.DOCX", docx(t, "Golang developer, k8s and SQL"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+me.UserID.String()+".docx", c.ResumeURL)
	assert.Len(t, files.saved, 1)
	assert.Equal(t, "Golang developer, k8s and SQL", repo.resumes[me.UserID])

	sug, err := s.SuggestSkills(context.Background(), me, me.UserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes", "SQL"}, sug.Found)
	assert.Equal(t, []string{"Kubernetes", "SQL"}, sug.Missing)
}

func TestUploadResumeRejectsFormats(t *testing.T) {
	repo := newMemCandidates()
	s := NewService(repo, &memFiles{saved: map[string][]byte{}}, staticSkills(nil))
	me := auth.Principal{UserID: uuid.New(), Role: auth.RoleCandidate}
	_, err := s.Create(context.Background(), me, Candidate{FullName: "Ann", Email: "a@x.io"})
	require.NoError(t, err)

	_, err = s.UploadResume(context.Background(), me, me.UserID, "cv.txt", []byte("hello"))
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = s.UploadResume(context.Background(), me, me.UserID, "cv.docx", []byte("not a zip"))
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestMatchableProjection(t *testing.T) {
	c := Candidate{Skills: []string{"Go"}, PreferredLocation: "Pune", TotalExperience: "3", ExpectedSalary: "6", PreferredJobType: "Full-time"}
	m := c.Matchable()
	assert.Equal(t, c.Skills, m.Skills)
	assert.Equal(t, "Pune", m.PreferredLocation)
	assert.Equal(t, "Full-time", m.PreferredJobType)
}

func TestRecruiterActsOnlyForProfilesTheyCreated(t *testing.T) {
	repo := newMemCandidates()
	s := NewService(repo, &memFiles{saved: map[string][]byte{}}, staticSkills(nil))
	ctx := context.Background()
	rec := auth.Principal{UserID: uuid.New(), Role: auth.RoleRecruiter}
	otherRec := auth.Principal{UserID: uuid.New(), Role: auth.RoleRecruiter}

	c, err := s.Create(ctx, rec, Candidate{FullName: "Ravi", Email: "ravi@x.io"})
	require.NoError(t, err)
	assert.NotEqual(t, rec.UserID, c.ID)
	assert.Equal(t, rec.UserID, c.CreatedBy)

	tests := []struct {
		name string
		p    auth.Principal
		id   uuid.UUID
		want apperr.Kind
		ok   bool
	}{
		{"creator", rec, c.ID, 0, true},
		{"admin", auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin}, c.ID, 0, true},
		{"other recruiter", otherRec, c.ID, apperr.KindForbidden, false},
		{"employer", auth.Principal{UserID: uuid.New(), Role: auth.RoleEmployer}, c.ID, apperr.KindForbidden, false},
		{"another candidate", auth.Principal{UserID: uuid.New(), Role: auth.RoleCandidate}, c.ID, apperr.KindForbidden, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Authorize(ctx, tt.p, tt.id)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, apperr.KindOf(err))
		})
	}

	ghost := auth.Principal{UserID: uuid.New(), Role: auth.RoleCandidate}
	assert.Equal(t, "Candidate not found", apperr.Message(s.Authorize(ctx, ghost, ghost.UserID)))

	city := "Pune"
	got, err := s.Update(ctx, rec, c.ID, ProfileUpdate{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Pune", got.City)
	_, err = s.Update(ctx, otherRec, c.ID, ProfileUpdate{City: &city})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
