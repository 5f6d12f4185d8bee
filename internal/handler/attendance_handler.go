package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/service"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/response"
)

// AttendanceHandler wires the calendar and marking flows to HTTP routes.
type AttendanceHandler struct {
	attendance *service.AttendanceService
	scopes     *service.ScopeResolver
}

// NewAttendanceHandler constructs a new AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService, scopes *service.ScopeResolver) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, scopes: scopes}
}

// Calendar godoc
// @Summary Render the attendance calendar for one student
// @Tags Attendance
// @Produce json
// @Param school_code query string true "School code"
// @Param student_code query string true "Student code"
// @Param view query string false "weekly or monthly (default monthly)"
// @Param date query string false "Anchor date YYYY-MM-DD (default today)"
// @Success 200 {object} response.Envelope
// @Router /attendance/calendar [get]
func (h *AttendanceHandler) Calendar(c *gin.Context) {
	sess, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}

	schoolCode := c.Query("school_code")
	studentCode := c.Query("student_code")
	if !scope.All() {
		schoolCode = scope.SchoolCode
	}
	view := models.CalendarView(c.DefaultQuery("view", string(models.ViewMonthly)))

	days, err := h.attendance.Calendar(c.Request.Context(), sess, schoolCode, studentCode, view, c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days)
}

// Roster godoc
// @Summary Load the marking roster for a school and class
// @Tags Attendance
// @Produce json
// @Param school_code query string true "School code"
// @Param class query string true "Class"
// @Success 200 {object} response.Envelope
// @Router /attendance/roster [get]
func (h *AttendanceHandler) Roster(c *gin.Context) {
	sess, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	schoolCode := c.Query("school_code")
	if !scope.All() {
		schoolCode = scope.SchoolCode
	}
	roster, err := h.attendance.Roster(c.Request.Context(), sess, schoolCode, c.Query("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster)
}

// Mark godoc
// @Summary Submit one batch of attendance records for a date
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body models.MarkRequest true "Marking batch"
// @Success 200 {object} response.Envelope
// @Router /attendance/mark [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	var req models.MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid marking payload"))
		return
	}
	count, err := h.attendance.Mark(c.Request.Context(), sess, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"submitted": count})
}
