package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/dto"
	"github.com/vidyalink/console-api/internal/models"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/export"
)

type teacherUpstream interface {
	ListTeachers(ctx context.Context, token string) ([]models.Teacher, error)
	GetTeacher(ctx context.Context, token, id string) (*models.Teacher, error)
	CreateTeacher(ctx context.Context, token string, teacher models.Teacher) (*models.Teacher, error)
	UpdateTeacher(ctx context.Context, token, id string, teacher models.Teacher) (*models.Teacher, error)
	DeleteTeacher(ctx context.Context, token, id string) error
	GetSchool(ctx context.Context, token, idOrCode string) (*models.School, error)
}

// TeacherService covers the teacher table and detail dialog.
type TeacherService struct {
	upstream  teacherUpstream
	autosave  *AutosaveService
	validator *validator.Validate
	logger    *zap.Logger
	csv       *export.CSVExporter
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(up teacherUpstream, autosave *AutosaveService, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{
		upstream:  up,
		autosave:  autosave,
		validator: validate,
		logger:    logger,
		csv:       export.NewCSVExporter(),
	}
}

// List returns teachers visible to the scope. The upstream collection has
// no school filter, so school-bound scopes filter here.
func (s *TeacherService) List(ctx context.Context, sess *models.Session, scope Scope) ([]models.Teacher, error) {
	teachers, err := s.upstream.ListTeachers(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	if scope.All() {
		return teachers, nil
	}
	scoped := make([]models.Teacher, 0, len(teachers))
	for _, t := range teachers {
		if t.School != nil && t.School.SchoolCode == scope.SchoolCode {
			scoped = append(scoped, t)
		}
	}
	return scoped, nil
}

// Detail fetches one teacher and flattens it into the editable form shape.
func (s *TeacherService) Detail(ctx context.Context, sess *models.Session, id string) (*models.TeacherForm, error) {
	teacher, err := s.upstream.GetTeacher(ctx, sess.Token, id)
	if err != nil {
		return nil, err
	}
	form := dto.FlattenTeacher(*teacher)
	return &form, nil
}

// NewForm returns the blank create-mode form. School-bound scopes get their
// school code prefilled; Admin picks a school explicitly.
func (s *TeacherService) NewForm(scope Scope) models.TeacherForm {
	return models.TeacherForm{SchoolCode: scope.SchoolCode}
}

// resolveSchoolRef turns a form's school_code into the nested reference the
// upstream documents carry.
func (s *TeacherService) resolveSchoolRef(ctx context.Context, token, schoolCode string) (*models.SchoolRef, error) {
	if schoolCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "school_code required")
	}
	school, err := s.upstream.GetSchool(ctx, token, schoolCode)
	if err != nil {
		return nil, err
	}
	return &models.SchoolRef{ID: school.ID, SchoolCode: school.SchoolCode, SchoolName: school.SchoolName}, nil
}

// Create submits the form exactly once. Create mode never autosaves.
func (s *TeacherService) Create(ctx context.Context, sess *models.Session, form models.TeacherForm) (*models.Teacher, error) {
	if form.TeacherCode == "" || form.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacherId and name are required")
	}
	ref, err := s.resolveSchoolRef(ctx, sess.Token, form.SchoolCode)
	if err != nil {
		return nil, err
	}
	return s.upstream.CreateTeacher(ctx, sess.Token, dto.ReconstructTeacher(form, ref))
}

// ScheduleSave queues a whole-snapshot save for an existing teacher. The
// school reference resolves at write time so a changed school_code takes
// effect in the same save.
func (s *TeacherService) ScheduleSave(sess *models.Session, form models.TeacherForm) error {
	if form.ID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "teacher id required for save")
	}
	token := sess.Token
	snapshot := form
	return s.autosave.Schedule("teacher:"+form.ID, func(ctx context.Context) error {
		ref, err := s.resolveSchoolRef(ctx, token, snapshot.SchoolCode)
		if err != nil {
			return err
		}
		_, err = s.upstream.UpdateTeacher(ctx, token, snapshot.ID, dto.ReconstructTeacher(snapshot, ref))
		return err
	})
}

// SaveStatus reports the autosave state for a teacher.
func (s *TeacherService) SaveStatus(id string) SaveStatus {
	return s.autosave.Status("teacher:" + id)
}

// Delete removes a teacher.
func (s *TeacherService) Delete(ctx context.Context, sess *models.Session, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "teacher id required")
	}
	return s.upstream.DeleteTeacher(ctx, sess.Token, id)
}

// ExportCSV renders the visible teacher table as CSV.
func (s *TeacherService) ExportCSV(ctx context.Context, sess *models.Session, scope Scope) ([]byte, error) {
	teachers, err := s.List(ctx, sess, scope)
	if err != nil {
		return nil, err
	}
	dataset := export.Dataset{
		Headers: []string{"teacherId", "name", "designation", "qualification", "phone", "school_code"},
		Rows:    make([]map[string]string, len(teachers)),
	}
	for i, t := range teachers {
		row := map[string]string{
			"teacherId":     t.TeacherCode,
			"name":          t.Name,
			"designation":   t.Designation,
			"qualification": t.Qualification,
			"phone":         t.Phone,
		}
		if t.School != nil {
			row["school_code"] = t.School.SchoolCode
		}
		dataset.Rows[i] = row
	}
	return s.csv.Render(dataset)
}
