package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/service"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/response"
)

// SchoolHandler wires school services to HTTP routes.
type SchoolHandler struct {
	schools *service.SchoolService
	scopes  *service.ScopeResolver
}

// NewSchoolHandler constructs a new SchoolHandler.
func NewSchoolHandler(schools *service.SchoolService, scopes *service.ScopeResolver) *SchoolHandler {
	return &SchoolHandler{schools: schools, scopes: scopes}
}

// List godoc
// @Summary List schools visible to the session
// @Tags Schools
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schools [get]
func (h *SchoolHandler) List(c *gin.Context) {
	sess, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	schools, err := h.schools.List(c.Request.Context(), sess, scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schools)
}

// Get godoc
// @Summary Get school detail
// @Tags Schools
// @Produce json
// @Param id path string true "School ID or code"
// @Success 200 {object} response.Envelope
// @Router /schools/{id} [get]
func (h *SchoolHandler) Get(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	school, err := h.schools.Get(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, school)
}

// Create godoc
// @Summary Create school
// @Tags Schools
// @Accept json
// @Produce json
// @Param payload body models.School true "School document"
// @Success 201 {object} response.Envelope
// @Router /schools [post]
func (h *SchoolHandler) Create(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	var school models.School
	if err := c.ShouldBindJSON(&school); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid school payload"))
		return
	}
	created, err := h.schools.Create(c.Request.Context(), sess, school)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Save godoc
// @Summary Queue an autosave of the school document
// @Tags Schools
// @Accept json
// @Produce json
// @Param id path string true "School ID"
// @Param payload body models.School true "Full school snapshot"
// @Success 202 {object} response.Envelope
// @Router /schools/{id}/save [put]
func (h *SchoolHandler) Save(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	var school models.School
	if err := c.ShouldBindJSON(&school); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid school payload"))
		return
	}
	school.ID = c.Param("id")
	if err := h.schools.ScheduleUpdate(sess, school); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, h.schools.SaveStatus(school.ID))
}

// SaveStatus godoc
// @Summary Report the autosave state for a school
// @Tags Schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{id}/save [get]
func (h *SchoolHandler) SaveStatus(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.schools.SaveStatus(c.Param("id")))
}

// Delete godoc
// @Summary Delete school
// @Tags Schools
// @Param id path string true "School ID"
// @Success 204
// @Router /schools/{id} [delete]
func (h *SchoolHandler) Delete(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	if err := h.schools.Delete(c.Request.Context(), sess, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Options godoc
// @Summary School selector options
// @Tags Schools
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /options/schools [get]
func (h *SchoolHandler) Options(c *gin.Context) {
	sess, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	options, err := h.schools.Options(c.Request.Context(), sess, scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}

// ClassOptions godoc
// @Summary Class selector options for one school
// @Tags Schools
// @Produce json
// @Param school_code query string false "School code (ignored for school-bound roles)"
// @Success 200 {object} response.Envelope
// @Router /options/classes [get]
func (h *SchoolHandler) ClassOptions(c *gin.Context) {
	sess, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	classes, err := h.schools.ClassOptions(c.Request.Context(), sess, scope, c.Query("school_code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Export godoc
// @Summary Export the school table as CSV
// @Tags Schools
// @Produce text/csv
// @Success 200 {string} string "CSV payload"
// @Router /schools/export [get]
func (h *SchoolHandler) Export(c *gin.Context) {
	sess, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.schools.ExportCSV(c.Request.Context(), sess, scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="schools.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}
