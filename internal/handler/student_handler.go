package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/service"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/response"
)

// StudentHandler wires student services to HTTP routes.
type StudentHandler struct {
	students *service.StudentService
	scopes   *service.ScopeResolver
}

// NewStudentHandler constructs a new StudentHandler.
func NewStudentHandler(students *service.StudentService, scopes *service.ScopeResolver) *StudentHandler {
	return &StudentHandler{students: students, scopes: scopes}
}

// List godoc
// @Summary List students visible to the session
// @Tags Students
// @Produce json
// @Param class query string false "Filter by class"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	sess, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	students, err := h.students.List(c.Request.Context(), sess, scope, c.Query("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Detail godoc
// @Summary Get a student as the flat editable form
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Detail(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	form, err := h.students.Detail(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form)
}

// NewForm godoc
// @Summary Blank create-mode form, school prefilled for school-bound roles
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/new [get]
func (h *StudentHandler) NewForm(c *gin.Context) {
	_, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.students.NewForm(scope))
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.StudentForm true "Student form"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	var form models.StudentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}
	created, err := h.students.Create(c.Request.Context(), sess, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Save godoc
// @Summary Queue an autosave of the student form
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body models.StudentForm true "Full form snapshot"
// @Success 202 {object} response.Envelope
// @Router /students/{id}/save [put]
func (h *StudentHandler) Save(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	var form models.StudentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}
	form.ID = c.Param("id")
	if err := h.students.ScheduleSave(sess, form); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, h.students.SaveStatus(form.ID))
}

// SaveStatus godoc
// @Summary Report the autosave state for a student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/save [get]
func (h *StudentHandler) SaveStatus(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.students.SaveStatus(c.Param("id")))
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Param id path string true "Student ID"
// @Success 204
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	if err := h.students.Delete(c.Request.Context(), sess, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Options godoc
// @Summary Student selector options
// @Tags Students
// @Produce json
// @Param school_code query string false "School code (Admin only; school-bound scopes are pinned)"
// @Param class query string false "Filter by class"
// @Success 200 {object} response.Envelope
// @Router /options/students [get]
func (h *StudentHandler) Options(c *gin.Context) {
	sess, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	options, err := h.students.Options(c.Request.Context(), sess, scope, c.Query("school_code"), c.Query("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}

// Export godoc
// @Summary Export the student table as CSV
// @Tags Students
// @Produce text/csv
// @Param class query string false "Filter by class"
// @Success 200 {string} string "CSV payload"
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	sess, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.students.ExportCSV(c.Request.Context(), sess, scope, c.Query("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="students.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}
