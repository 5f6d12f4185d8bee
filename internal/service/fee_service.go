package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/dto"
	"github.com/vidyalink/console-api/internal/models"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

type feeUpstream interface {
	ListFeeStructures(ctx context.Context, token string) ([]models.FeeStructure, error)
	GetFeeStructure(ctx context.Context, token, id string) (*models.FeeStructure, error)
	CreateFeeStructure(ctx context.Context, token string, structure models.FeeStructure) (*models.FeeStructure, error)
	UpdateFeeStructure(ctx context.Context, token, id string, structure models.FeeStructure) (*models.FeeStructure, error)
	DeleteFeeStructure(ctx context.Context, token, id string) error
	GetSchool(ctx context.Context, token, idOrCode string) (*models.School, error)
}

// FeeService covers the fee-structure table and detail dialog.
type FeeService struct {
	upstream  feeUpstream
	autosave  *AutosaveService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeeService constructs the fee service.
func NewFeeService(up feeUpstream, autosave *AutosaveService, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeService{upstream: up, autosave: autosave, validator: validate, logger: logger}
}

// List returns fee structures visible to the scope.
func (s *FeeService) List(ctx context.Context, sess *models.Session, scope Scope) ([]models.FeeStructure, error) {
	structures, err := s.upstream.ListFeeStructures(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	if scope.All() {
		return structures, nil
	}
	scoped := make([]models.FeeStructure, 0, len(structures))
	for _, fs := range structures {
		if fs.School != nil && fs.School.SchoolCode == scope.SchoolCode {
			scoped = append(scoped, fs)
		}
	}
	return scoped, nil
}

// Detail fetches one fee structure and flattens it into the form shape.
func (s *FeeService) Detail(ctx context.Context, sess *models.Session, id string) (*models.FeeStructureForm, error) {
	structure, err := s.upstream.GetFeeStructure(ctx, sess.Token, id)
	if err != nil {
		return nil, err
	}
	form := dto.FlattenFeeStructure(*structure)
	return &form, nil
}

// NewForm returns the blank create-mode form with the scope's school code
// prefilled when the actor is school-bound.
func (s *FeeService) NewForm(scope Scope) models.FeeStructureForm {
	return models.FeeStructureForm{SchoolCode: scope.SchoolCode}
}

func (s *FeeService) resolveSchoolRef(ctx context.Context, token, schoolCode string) (*models.SchoolRef, error) {
	if schoolCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "school_code required")
	}
	school, err := s.upstream.GetSchool(ctx, token, schoolCode)
	if err != nil {
		return nil, err
	}
	return &models.SchoolRef{ID: school.ID, SchoolCode: school.SchoolCode, SchoolName: school.SchoolName}, nil
}

// Create submits the form exactly once.
func (s *FeeService) Create(ctx context.Context, sess *models.Session, form models.FeeStructureForm) (*models.FeeStructure, error) {
	if form.Class == "" || form.AcademicYear == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class and academicYear are required")
	}
	ref, err := s.resolveSchoolRef(ctx, sess.Token, form.SchoolCode)
	if err != nil {
		return nil, err
	}
	return s.upstream.CreateFeeStructure(ctx, sess.Token, dto.ReconstructFeeStructure(form, ref))
}

// ScheduleSave queues a whole-snapshot save for an existing fee structure.
func (s *FeeService) ScheduleSave(sess *models.Session, form models.FeeStructureForm) error {
	if form.ID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "fee structure id required for save")
	}
	token := sess.Token
	snapshot := form
	return s.autosave.Schedule("fee:"+form.ID, func(ctx context.Context) error {
		ref, err := s.resolveSchoolRef(ctx, token, snapshot.SchoolCode)
		if err != nil {
			return err
		}
		_, err = s.upstream.UpdateFeeStructure(ctx, token, snapshot.ID, dto.ReconstructFeeStructure(snapshot, ref))
		return err
	})
}

// SaveStatus reports the autosave state for a fee structure.
func (s *FeeService) SaveStatus(id string) SaveStatus {
	return s.autosave.Status("fee:" + id)
}

// Delete removes a fee structure.
func (s *FeeService) Delete(ctx context.Context, sess *models.Session, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "fee structure id required")
	}
	return s.upstream.DeleteFeeStructure(ctx, sess.Token, id)
}
