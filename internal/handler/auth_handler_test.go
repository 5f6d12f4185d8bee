package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyalink/console-api/internal/middleware"
	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/service"
)

type profilePlatformStub struct {
	teacher *models.Teacher
}

func (s *profilePlatformStub) GetSchool(ctx context.Context, token, idOrCode string) (*models.School, error) {
	return nil, nil
}

func (s *profilePlatformStub) GetTeacher(ctx context.Context, token, id string) (*models.Teacher, error) {
	return s.teacher, nil
}

func (s *profilePlatformStub) GetStudent(ctx context.Context, token, id string) (*models.Student, error) {
	return nil, nil
}

func TestProfileEndpointResolvesOwnEntity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	scopes := service.NewScopeResolver(&profilePlatformStub{
		teacher: &models.Teacher{
			ID:     "tch-1",
			Name:   "Asha Verma",
			School: &models.SchoolRef{ID: "sch-1", SchoolCode: "SCH001"},
		},
	})
	h := NewAuthHandler(nil, scopes)

	r := gin.New()
	r.GET("/auth/profile",
		func(c *gin.Context) {
			c.Set(middleware.ContextSessionKey, &models.Session{
				ID: "sess-1", Token: "tok", Role: models.RoleTeacher, SubjectID: "tch-1",
			})
		},
		h.Profile,
	)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data struct {
			Role       models.Role `json:"role"`
			Name       string      `json:"name"`
			SchoolCode string      `json:"school_code"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, models.RoleTeacher, envelope.Data.Role)
	assert.Equal(t, "Asha Verma", envelope.Data.Name)
	assert.Equal(t, "SCH001", envelope.Data.SchoolCode)
}

func TestProfileEndpointWithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(nil, service.NewScopeResolver(&profilePlatformStub{}))

	r := gin.New()
	r.GET("/auth/profile", h.Profile)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
