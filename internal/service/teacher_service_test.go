package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/pkg/config"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

func errNotFoundStub() error {
	return appErrors.Clone(appErrors.ErrNotFound, "")
}

type teacherUpstreamStub struct {
	teachers []models.Teacher
	schools  map[string]*models.School
	created  []models.Teacher
	updated  []models.Teacher
	deleted  []string
	updateCh chan models.Teacher
}

func (s *teacherUpstreamStub) ListTeachers(ctx context.Context, token string) ([]models.Teacher, error) {
	return s.teachers, nil
}

func (s *teacherUpstreamStub) GetTeacher(ctx context.Context, token, id string) (*models.Teacher, error) {
	for i := range s.teachers {
		if s.teachers[i].ID == id {
			return &s.teachers[i], nil
		}
	}
	return nil, errNotFoundStub()
}

func (s *teacherUpstreamStub) CreateTeacher(ctx context.Context, token string, teacher models.Teacher) (*models.Teacher, error) {
	s.created = append(s.created, teacher)
	return &teacher, nil
}

func (s *teacherUpstreamStub) UpdateTeacher(ctx context.Context, token, id string, teacher models.Teacher) (*models.Teacher, error) {
	s.updated = append(s.updated, teacher)
	if s.updateCh != nil {
		s.updateCh <- teacher
	}
	return &teacher, nil
}

func (s *teacherUpstreamStub) DeleteTeacher(ctx context.Context, token, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *teacherUpstreamStub) GetSchool(ctx context.Context, token, idOrCode string) (*models.School, error) {
	if school, ok := s.schools[idOrCode]; ok {
		return school, nil
	}
	return nil, errNotFoundStub()
}

func teacherFixtures() []models.Teacher {
	return []models.Teacher{
		{ID: "tch-1", TeacherCode: "T001", Name: "Meera", School: &models.SchoolRef{ID: "sch-1", SchoolCode: "SCH001"}},
		{ID: "tch-2", TeacherCode: "T002", Name: "Ravi", School: &models.SchoolRef{ID: "sch-2", SchoolCode: "SCH002"}},
		{ID: "tch-3", TeacherCode: "T003", Name: "Sana", School: &models.SchoolRef{ID: "sch-1", SchoolCode: "SCH001"}},
	}
}

func newTestTeacherService(t *testing.T, up *teacherUpstreamStub) *TeacherService {
	t.Helper()
	autosave := NewAutosaveService(context.Background(), config.AutosaveConfig{
		Debounce:    10 * time.Millisecond,
		Workers:     1,
		SavedExpiry: time.Second,
	}, zap.NewNop())
	t.Cleanup(autosave.Stop)
	return NewTeacherService(up, autosave, nil, zap.NewNop())
}

func TestTeacherListAdminSeesAll(t *testing.T) {
	up := &teacherUpstreamStub{teachers: teacherFixtures()}
	svc := newTestTeacherService(t, up)

	teachers, err := svc.List(context.Background(), testSession(models.RoleAdmin), Scope{Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, teachers, 3)
}

func TestTeacherListSchoolScoped(t *testing.T) {
	up := &teacherUpstreamStub{teachers: teacherFixtures()}
	svc := newTestTeacherService(t, up)

	scope := Scope{Role: models.RoleSchool, SchoolID: "sch-1", SchoolCode: "SCH001"}
	teachers, err := svc.List(context.Background(), testSession(models.RoleSchool), scope)
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	for _, teacher := range teachers {
		assert.Equal(t, "SCH001", teacher.School.SchoolCode)
	}
}

func TestTeacherDetailFlattens(t *testing.T) {
	up := &teacherUpstreamStub{teachers: teacherFixtures()}
	svc := newTestTeacherService(t, up)

	form, err := svc.Detail(context.Background(), testSession(models.RoleAdmin), "tch-1")
	require.NoError(t, err)
	assert.Equal(t, "T001", form.TeacherCode)
	assert.Equal(t, "SCH001", form.SchoolCode)
}

func TestTeacherNewFormPrefillsSchool(t *testing.T) {
	svc := newTestTeacherService(t, &teacherUpstreamStub{})

	form := svc.NewForm(Scope{Role: models.RoleSchool, SchoolCode: "SCH001"})
	assert.Equal(t, "SCH001", form.SchoolCode)

	adminForm := svc.NewForm(Scope{Role: models.RoleAdmin})
	assert.Empty(t, adminForm.SchoolCode)
}

func TestTeacherCreateResolvesSchoolRef(t *testing.T) {
	up := &teacherUpstreamStub{
		schools: map[string]*models.School{
			"SCH001": {ID: "sch-1", SchoolCode: "SCH001", SchoolName: "Govt High School"},
		},
	}
	svc := newTestTeacherService(t, up)

	form := models.TeacherForm{SchoolCode: "SCH001", TeacherCode: "T010", Name: "Nadia"}
	created, err := svc.Create(context.Background(), testSession(models.RoleAdmin), form)
	require.NoError(t, err)
	require.NotNil(t, created.School)
	assert.Equal(t, "sch-1", created.School.ID)
	assert.Equal(t, "Govt High School", created.School.SchoolName)
	require.Len(t, up.created, 1)
}

func TestTeacherScheduleSaveWritesWholeSnapshot(t *testing.T) {
	up := &teacherUpstreamStub{
		schools: map[string]*models.School{
			"SCH001": {ID: "sch-1", SchoolCode: "SCH001"},
		},
		updateCh: make(chan models.Teacher, 1),
	}
	svc := newTestTeacherService(t, up)

	// A single field change still submits the full reconstructed document.
	form := models.TeacherForm{
		ID:          "tch-1",
		SchoolCode:  "SCH001",
		TeacherCode: "T001",
		Name:        "Meera Devi",
		Designation: "PRT",
		Phone:       "9000000000",
	}
	require.NoError(t, svc.ScheduleSave(testSession(models.RoleSchool), form))

	select {
	case updated := <-up.updateCh:
		assert.Equal(t, "Meera Devi", updated.Name)
		assert.Equal(t, "PRT", updated.Designation)
		assert.Equal(t, "9000000000", updated.Phone)
		require.NotNil(t, updated.School)
		assert.Equal(t, "sch-1", updated.School.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for autosave write")
	}
	assert.Len(t, up.updated, 1)
}

func TestTeacherExportCSV(t *testing.T) {
	up := &teacherUpstreamStub{teachers: teacherFixtures()}
	svc := newTestTeacherService(t, up)

	payload, err := svc.ExportCSV(context.Background(), testSession(models.RoleAdmin), Scope{Role: models.RoleAdmin})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "teacherId")
	assert.Contains(t, lines[1], "Meera")
}
