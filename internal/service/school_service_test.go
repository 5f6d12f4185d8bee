package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vidyalink/console-api/internal/models"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
)

type schoolUpstreamStub struct {
	schools    map[string]*models.School
	getCodes   []string
	listResult []models.School
}

func (s *schoolUpstreamStub) ListSchools(ctx context.Context, token string) ([]models.School, error) {
	return s.listResult, nil
}

func (s *schoolUpstreamStub) GetSchool(ctx context.Context, token, idOrCode string) (*models.School, error) {
	s.getCodes = append(s.getCodes, idOrCode)
	if school, ok := s.schools[idOrCode]; ok {
		return school, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "")
}

func (s *schoolUpstreamStub) CreateSchool(ctx context.Context, token string, school models.School) (*models.School, error) {
	return &school, nil
}

func (s *schoolUpstreamStub) UpdateSchool(ctx context.Context, token, id string, school models.School) (*models.School, error) {
	return &school, nil
}

func (s *schoolUpstreamStub) DeleteSchool(ctx context.Context, token, id string) error {
	return nil
}

func TestClassOptionsReadsClassesOffered(t *testing.T) {
	up := &schoolUpstreamStub{schools: map[string]*models.School{
		"SCH001": {ID: "sch-1", SchoolCode: "SCH001", ClassesOffered: []string{"1", "2", "3"}},
	}}
	svc := NewSchoolService(up, nil, nil, zap.NewNop())

	classes, err := svc.ClassOptions(context.Background(), testSession(models.RoleAdmin), Scope{Role: models.RoleAdmin}, "SCH001")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, classes)
}

func TestClassOptionsPinsSchoolBoundScope(t *testing.T) {
	up := &schoolUpstreamStub{schools: map[string]*models.School{
		"SCH001": {ID: "sch-1", SchoolCode: "SCH001", ClassesOffered: []string{"1", "2"}},
		"SCH002": {ID: "sch-2", SchoolCode: "SCH002", ClassesOffered: []string{"9", "10"}},
	}}
	svc := NewSchoolService(up, nil, nil, zap.NewNop())
	scope := Scope{Role: models.RoleSchool, SchoolID: "sch-1", SchoolCode: "SCH001"}

	// Requesting another school's code still resolves the actor's own school.
	classes, err := svc.ClassOptions(context.Background(), testSession(models.RoleSchool), scope, "SCH002")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, classes)
	assert.Equal(t, []string{"SCH001"}, up.getCodes)
}

func TestClassOptionsRequiresSchoolCodeForAdmin(t *testing.T) {
	svc := NewSchoolService(&schoolUpstreamStub{}, nil, nil, zap.NewNop())

	_, err := svc.ClassOptions(context.Background(), testSession(models.RoleAdmin), Scope{Role: models.RoleAdmin}, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestClassOptionsEmptyWhenSchoolOffersNone(t *testing.T) {
	up := &schoolUpstreamStub{schools: map[string]*models.School{
		"SCH003": {ID: "sch-3", SchoolCode: "SCH003"},
	}}
	svc := NewSchoolService(up, nil, nil, zap.NewNop())

	classes, err := svc.ClassOptions(context.Background(), testSession(models.RoleAdmin), Scope{Role: models.RoleAdmin}, "SCH003")
	require.NoError(t, err)
	assert.NotNil(t, classes)
	assert.Empty(t, classes)
}
