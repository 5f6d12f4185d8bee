package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/service"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/response"
)

// FeeHandler wires fee-structure services to HTTP routes.
type FeeHandler struct {
	fees   *service.FeeService
	scopes *service.ScopeResolver
}

// NewFeeHandler constructs a new FeeHandler.
func NewFeeHandler(fees *service.FeeService, scopes *service.ScopeResolver) *FeeHandler {
	return &FeeHandler{fees: fees, scopes: scopes}
}

// List godoc
// @Summary List fee structures visible to the session
// @Tags Fees
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /fees [get]
func (h *FeeHandler) List(c *gin.Context) {
	sess, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	structures, err := h.fees.List(c.Request.Context(), sess, scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, structures)
}

// Detail godoc
// @Summary Get a fee structure as the flat editable form
// @Tags Fees
// @Produce json
// @Param id path string true "Fee structure ID"
// @Success 200 {object} response.Envelope
// @Router /fees/{id} [get]
func (h *FeeHandler) Detail(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	form, err := h.fees.Detail(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form)
}

// NewForm godoc
// @Summary Blank create-mode form, school prefilled for school-bound roles
// @Tags Fees
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /fees/new [get]
func (h *FeeHandler) NewForm(c *gin.Context) {
	_, scope, err := resolveScope(c, h.scopes)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.fees.NewForm(scope))
}

// Create godoc
// @Summary Create fee structure
// @Tags Fees
// @Accept json
// @Produce json
// @Param payload body models.FeeStructureForm true "Fee structure form"
// @Success 201 {object} response.Envelope
// @Router /fees [post]
func (h *FeeHandler) Create(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	var form models.FeeStructureForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid fee payload"))
		return
	}
	created, err := h.fees.Create(c.Request.Context(), sess, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Save godoc
// @Summary Queue an autosave of the fee-structure form
// @Tags Fees
// @Accept json
// @Produce json
// @Param id path string true "Fee structure ID"
// @Param payload body models.FeeStructureForm true "Full form snapshot"
// @Success 202 {object} response.Envelope
// @Router /fees/{id}/save [put]
func (h *FeeHandler) Save(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	var form models.FeeStructureForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid fee payload"))
		return
	}
	form.ID = c.Param("id")
	if err := h.fees.ScheduleSave(sess, form); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, h.fees.SaveStatus(form.ID))
}

// SaveStatus godoc
// @Summary Report the autosave state for a fee structure
// @Tags Fees
// @Produce json
// @Param id path string true "Fee structure ID"
// @Success 200 {object} response.Envelope
// @Router /fees/{id}/save [get]
func (h *FeeHandler) SaveStatus(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.fees.SaveStatus(c.Param("id")))
}

// Delete godoc
// @Summary Delete fee structure
// @Tags Fees
// @Param id path string true "Fee structure ID"
// @Success 204
// @Router /fees/{id} [delete]
func (h *FeeHandler) Delete(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	if err := h.fees.Delete(c.Request.Context(), sess, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
