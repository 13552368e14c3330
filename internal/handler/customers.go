package handler

import (
	"net/http"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/apierror"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CustomersHandler struct{ svc service.CustomerService }

func NewCustomersHandler(svc service.CustomerService) *CustomersHandler {
	return &CustomersHandler{svc: svc}
}

// Create godoc
// @Summary      Create customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaveCustomerRequest true "Customer"
// @Success      201  {object} dto.CustomerResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/customers [post]
func (h *CustomersHandler) Create(c *gin.Context) {
	var req dto.SaveCustomerRequest
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
// @Summary      Update customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Customer UUID"
// @Param        body body dto.SaveCustomerRequest true "Customer"
// @Success      200  {object} dto.CustomerResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/customers/{id} [put]
func (h *CustomersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.SaveCustomerRequest
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
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        search           query string false "Name substring filter"
// @Param        include_inactive query bool   false "Include deactivated customers"
// @Success      200 {array} dto.CustomerResponse
// @Router       /v1/customers [get]
func (h *CustomersHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.List(c.Request.Context(), c.Query("search"), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list customers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary      Deactivate customer
// @Tags         customers
// @Security     BearerAuth
// @Param        id path string true "Customer UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/customers/{id} [delete]
func (h *CustomersHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
