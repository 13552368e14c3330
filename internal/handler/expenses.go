package handler

import (
	"net/http"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/apierror"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExpensesHandler struct{ svc service.ExpenseService }

func NewExpensesHandler(svc service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{svc: svc}
}

// Create godoc
// @Summary      Record expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaveExpenseRequest true "Expense"
// @Success      201  {object} dto.ExpenseResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/expenses [post]
func (h *ExpensesHandler) Create(c *gin.Context) {
	var req dto.SaveExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Update expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Expense UUID"
// @Param        body body dto.SaveExpenseRequest true "Expense"
// @Success      200  {object} dto.ExpenseResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/expenses/{id} [put]
func (h *ExpensesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.SaveExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "From date YYYY-MM-DD"
// @Param        to   query string false "To date YYYY-MM-DD"
// @Success      200 {array} dto.ExpenseResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/expenses [get]
func (h *ExpensesHandler) List(c *gin.Context) {
	var filter dto.ExpenseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid date filter"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list expenses"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete expense
// @Tags         expenses
// @Security     BearerAuth
// @Param        id path string true "Expense UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/expenses/{id} [delete]
func (h *ExpensesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
