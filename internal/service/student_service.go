package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/dto"
	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/upstream"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/export"
)

type studentUpstream interface {
	ListStudents(ctx context.Context, token string, filter upstream.StudentFilter) ([]models.Student, error)
	GetStudent(ctx context.Context, token, id string) (*models.Student, error)
	CreateStudent(ctx context.Context, token string, student models.Student) (*models.Student, error)
	UpdateStudent(ctx context.Context, token, id string, student models.Student) (*models.Student, error)
	DeleteStudent(ctx context.Context, token, id string) error
	GetSchool(ctx context.Context, token, idOrCode string) (*models.School, error)
}

// StudentService covers the student table and detail dialog.
type StudentService struct {
	upstream  studentUpstream
	autosave  *AutosaveService
	validator *validator.Validate
	logger    *zap.Logger
	csv       *export.CSVExporter
}

// NewStudentService constructs the student service.
func NewStudentService(up studentUpstream, autosave *AutosaveService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		upstream:  up,
		autosave:  autosave,
		validator: validate,
		logger:    logger,
		csv:       export.NewCSVExporter(),
	}
}

// List returns students, filtered server-side by school and class. A
// school-bound scope always pins the school filter to its own school.
func (s *StudentService) List(ctx context.Context, sess *models.Session, scope Scope, class string) ([]models.Student, error) {
	filter := upstream.StudentFilter{Class: class}
	if !scope.All() {
		filter.SchoolCode = scope.SchoolCode
	}
	return s.upstream.ListStudents(ctx, sess.Token, filter)
}

// Detail fetches one student and flattens it into the editable form shape.
func (s *StudentService) Detail(ctx context.Context, sess *models.Session, id string) (*models.StudentForm, error) {
	student, err := s.upstream.GetStudent(ctx, sess.Token, id)
	if err != nil {
		return nil, err
	}
	form := dto.FlattenStudent(*student)
	return &form, nil
}

// NewForm returns the blank create-mode form with the scope's school code
// prefilled when the actor is school-bound.
func (s *StudentService) NewForm(scope Scope) models.StudentForm {
	return models.StudentForm{SchoolCode: scope.SchoolCode}
}

func (s *StudentService) resolveSchoolRef(ctx context.Context, token, schoolCode string) (*models.SchoolRef, error) {
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
func (s *StudentService) Create(ctx context.Context, sess *models.Session, form models.StudentForm) (*models.Student, error) {
	if form.StudentCode == "" || form.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId and name are required")
	}
	ref, err := s.resolveSchoolRef(ctx, sess.Token, form.SchoolCode)
	if err != nil {
		return nil, err
	}
	return s.upstream.CreateStudent(ctx, sess.Token, dto.ReconstructStudent(form, ref))
}

// ScheduleSave queues a whole-snapshot save for an existing student.
func (s *StudentService) ScheduleSave(sess *models.Session, form models.StudentForm) error {
	if form.ID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "student id required for save")
	}
	token := sess.Token
	snapshot := form
	return s.autosave.Schedule("student:"+form.ID, func(ctx context.Context) error {
		ref, err := s.resolveSchoolRef(ctx, token, snapshot.SchoolCode)
		if err != nil {
			return err
		}
		_, err = s.upstream.UpdateStudent(ctx, token, snapshot.ID, dto.ReconstructStudent(snapshot, ref))
		return err
	})
}

// SaveStatus reports the autosave state for a student.
func (s *StudentService) SaveStatus(id string) SaveStatus {
	return s.autosave.Status("student:" + id)
}

// Delete removes a student.
func (s *StudentService) Delete(ctx context.Context, sess *models.Session, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "student id required")
	}
	return s.upstream.DeleteStudent(ctx, sess.Token, id)
}

// Options returns selector entries for a school's students, optionally
// narrowed by class. Labels render "code - name (class)".
func (s *StudentService) Options(ctx context.Context, sess *models.Session, scope Scope, schoolCode, class string) ([]models.StudentOption, error) {
	if !scope.All() {
		schoolCode = scope.SchoolCode
	}
	students, err := s.upstream.ListStudents(ctx, sess.Token, upstream.StudentFilter{SchoolCode: schoolCode, Class: class})
	if err != nil {
		return nil, err
	}
	options := make([]models.StudentOption, len(students))
	for i, st := range students {
		options[i] = models.StudentOption{
			ID:          st.ID,
			StudentCode: st.StudentCode,
			Name:        st.Name,
			Class:       st.Class,
			Label:       fmt.Sprintf("%s - %s (%s)", st.StudentCode, st.Name, st.Class),
		}
	}
	return options, nil
}

// ExportCSV renders the visible student table as CSV.
func (s *StudentService) ExportCSV(ctx context.Context, sess *models.Session, scope Scope, class string) ([]byte, error) {
	students, err := s.List(ctx, sess, scope, class)
	if err != nil {
		return nil, err
	}
	dataset := export.Dataset{
		Headers: []string{"studentId", "name", "class", "section", "fatherName", "phone", "school_code"},
		Rows:    make([]map[string]string, len(students)),
	}
	for i, st := range students {
		row := map[string]string{
			"studentId":  st.StudentCode,
			"name":       st.Name,
			"class":      st.Class,
			"section":    st.Section,
			"fatherName": st.FatherName,
			"phone":      st.Contact.Phone,
		}
		if st.School != nil {
			row["school_code"] = st.School.SchoolCode
		}
		dataset.Rows[i] = row
	}
	return s.csv.Render(dataset)
}
