package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/service"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/response"
)

// TeacherHandler wires teacher services to HTTP routes.
type TeacherHandler struct {
	teachers *service.TeacherService
	scopes   *service.ScopeResolver
}

// NewTeacherHandler constructs a new TeacherHandler.
func NewTeacherHandler(teachers *service.TeacherService, scopes *service.ScopeResolver) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, scopes: scopes}
}

// List godoc
// @Summary List teachers visible to the session
// @Tags Teachers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	sess, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	teachers, err := h.teachers.List(c.Request.Context(), sess, scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers)
}

// Detail godoc
// @Summary Get a teacher as the flat editable form
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Detail(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	form, err := h.teachers.Detail(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form)
}

// NewForm godoc
// @Summary Blank create-mode form, school prefilled for school-bound roles
// @Tags Teachers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teachers/new [get]
func (h *TeacherHandler) NewForm(c *gin.Context) {
	_, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.teachers.NewForm(scope))
}

// Create godoc
// @Summary Create teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body models.TeacherForm true "Teacher form"
// @Success 201 {object} response.Envelope
// @Router /teachers [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	var form models.TeacherForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacher payload"))
		return
	}
	created, err := h.teachers.Create(c.Request.Context(), sess, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Save godoc
// @Summary Queue an autosave of the teacher form
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body models.TeacherForm true "Full form snapshot"
// @Success 202 {object} response.Envelope
// @Router /teachers/{id}/save [put]
func (h *TeacherHandler) Save(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	var form models.TeacherForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacher payload"))
		return
	}
	form.ID = c.Param("id")
	if err := h.teachers.ScheduleSave(sess, form); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, h.teachers.SaveStatus(form.ID))
}

// SaveStatus godoc
// @Summary Report the autosave state for a teacher
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/save [get]
func (h *TeacherHandler) SaveStatus(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.teachers.SaveStatus(c.Param("id")))
}

// Delete godoc
// @Summary Delete teacher
// @Tags Teachers
// @Param id path string true "Teacher ID"
// @Success 204
// @Router /teachers/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	if err := h.teachers.Delete(c.Request.Context(), sess, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export the teacher table as CSV
// @Tags Teachers
// @Produce text/csv
// @Success 200 {string} string "CSV payload"
// @Router /teachers/export [get]
func (h *TeacherHandler) Export(c *gin.Context) {
	sess, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.teachers.ExportCSV(c.Request.Context(), sess, scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="teachers.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}
