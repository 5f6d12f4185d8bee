package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/models"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/export"
)

type schoolUpstream interface {
	ListSchools(ctx context.Context, token string) ([]models.School, error)
	GetSchool(ctx context.Context, token, idOrCode string) (*models.School, error)
	CreateSchool(ctx context.Context, token string, school models.School) (*models.School, error)
	UpdateSchool(ctx context.Context, token, id string, school models.School) (*models.School, error)
	DeleteSchool(ctx context.Context, token, id string) error
}

// SchoolService covers the school table, detail dialog and selector options.
type SchoolService struct {
	upstream  schoolUpstream
	autosave  *AutosaveService
	validator *validator.Validate
	logger    *zap.Logger
	csv       *export.CSVExporter
}

// NewSchoolService constructs the school service.
func NewSchoolService(up schoolUpstream, autosave *AutosaveService, validate *validator.Validate, logger *zap.Logger) *SchoolService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolService{
		upstream:  up,
		autosave:  autosave,
		validator: validate,
		logger:    logger,
		csv:       export.NewCSVExporter(),
	}
}

// List returns schools visible to the scope: all of them for Admin, just
// the actor's own school otherwise.
func (s *SchoolService) List(ctx context.Context, sess *models.Session, scope Scope) ([]models.School, error) {
	if !scope.All() {
		school, err := s.upstream.GetSchool(ctx, sess.Token, scope.SchoolID)
		if err != nil {
			return nil, err
		}
		return []models.School{*school}, nil
	}
	return s.upstream.ListSchools(ctx, sess.Token)
}

// Get fetches one school by id or code.
func (s *SchoolService) Get(ctx context.Context, sess *models.Session, idOrCode string) (*models.School, error) {
	if idOrCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "school identifier required")
	}
	return s.upstream.GetSchool(ctx, sess.Token, idOrCode)
}

// Create submits a new school document once. Creation never autosaves;
// nothing exists upstream to patch until this call succeeds.
func (s *SchoolService) Create(ctx context.Context, sess *models.Session, school models.School) (*models.School, error) {
	if school.SchoolCode == "" || school.SchoolName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "school_code and school_name are required")
	}
	return s.upstream.CreateSchool(ctx, sess.Token, school)
}

// ScheduleUpdate queues a whole-document save for an existing school. Edits
// landing within the debounce window coalesce into one PUT.
func (s *SchoolService) ScheduleUpdate(sess *models.Session, school models.School) error {
	if school.ID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "school id required for update")
	}
	token := sess.Token
	snapshot := school
	return s.autosave.Schedule("school:"+school.ID, func(ctx context.Context) error {
		_, err := s.upstream.UpdateSchool(ctx, token, snapshot.ID, snapshot)
		return err
	})
}

// SaveStatus reports the autosave state for a school.
func (s *SchoolService) SaveStatus(id string) SaveStatus {
	return s.autosave.Status("school:" + id)
}

// Delete removes a school.
func (s *SchoolService) Delete(ctx context.Context, sess *models.Session, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "school id required")
	}
	return s.upstream.DeleteSchool(ctx, sess.Token, id)
}

// Options returns the selector entries for the school combobox, labelled
// "code - name" the way the pickers render them.
func (s *SchoolService) Options(ctx context.Context, sess *models.Session, scope Scope) ([]models.SchoolOption, error) {
	schools, err := s.List(ctx, sess, scope)
	if err != nil {
		return nil, err
	}
	options := make([]models.SchoolOption, len(schools))
	for i, school := range schools {
		options[i] = models.SchoolOption{
			ID:         school.ID,
			SchoolCode: school.SchoolCode,
			SchoolName: school.SchoolName,
			Label:      fmt.Sprintf("%s - %s", school.SchoolCode, school.SchoolName),
		}
	}
	return options, nil
}

// ClassOptions returns the class selector entries for one school, read from
// its classes_offered list. School-bound scopes are pinned to their own
// school regardless of the requested code.
func (s *SchoolService) ClassOptions(ctx context.Context, sess *models.Session, scope Scope, schoolCode string) ([]string, error) {
	if !scope.All() {
		schoolCode = scope.SchoolCode
	}
	if schoolCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "school_code required")
	}
	school, err := s.upstream.GetSchool(ctx, sess.Token, schoolCode)
	if err != nil {
		return nil, err
	}
	if school.ClassesOffered == nil {
		return []string{}, nil
	}
	return school.ClassesOffered, nil
}

// ExportCSV renders the visible school table as CSV.
func (s *SchoolService) ExportCSV(ctx context.Context, sess *models.Session, scope Scope) ([]byte, error) {
	schools, err := s.List(ctx, sess, scope)
	if err != nil {
		return nil, err
	}
	dataset := export.Dataset{
		Headers: []string{"school_code", "school_name", "district", "block", "headmaster", "total_students", "total_teachers"},
		Rows:    make([]map[string]string, len(schools)),
	}
	for i, school := range schools {
		dataset.Rows[i] = map[string]string{
			"school_code":    school.SchoolCode,
			"school_name":    school.SchoolName,
			"district":       school.Location.District,
			"block":          school.Location.Block,
			"headmaster":     school.Headmaster.Name,
			"total_students": school.EnrollmentSummary.TotalStudents,
			"total_teachers": school.StaffSummary.TotalTeachers,
		}
	}
	return s.csv.Render(dataset)
}
