package handler

import (
	"net/http"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/apierror"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesBillsHandler struct {
	svc  service.SalesBillService
	docs service.DocumentService
}

func NewSalesBillsHandler(svc service.SalesBillService, docs service.DocumentService) *SalesBillsHandler {
	return &SalesBillsHandler{svc: svc, docs: docs}
}

// Create godoc
// @Summary      Create sales bill
// @Description  Computes all amounts from the line items, carries the customer's outstanding balance forward, assigns the next bill number, and queues PDF generation.
// @Tags         sales-bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaveSalesBillRequest true "Bill draft"
// @Success      201  {object} dto.SalesBillResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales-bills [post]
func (h *SalesBillsHandler) Create(c *gin.Context) {
	var req dto.SaveSalesBillRequest
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
// @Summary      Update sales bill
// @Description  Recomputes the bill and replaces the full line-item set. The bill number never changes.
// @Tags         sales-bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Bill UUID"
// @Param        body body dto.SaveSalesBillRequest true "Bill draft"
// @Success      200  {object} dto.SalesBillResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales-bills/{id} [put]
func (h *SalesBillsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.SaveSalesBillRequest
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

// Get godoc
// @Summary      Get sales bill
// @Tags         sales-bills
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill UUID"
// @Success      200 {object} dto.SalesBillResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sales-bills/{id} [get]
func (h *SalesBillsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List sales bills
// @Tags         sales-bills
// @Produce      json
// @Security     BearerAuth
// @Param        date        query string false "Bill date YYYY-MM-DD"
// @Param        customer_id query string false "Customer UUID"
// @Param        status      query string false "paid | partial | pending"
// @Param        page        query int    false "Page (default 1)"
// @Param        limit       query int    false "Page size (default 50)"
// @Success      200 {object} dto.SalesBillListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/sales-bills [get]
func (h *SalesBillsHandler) List(c *gin.Context) {
	var filter dto.SalesBillFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list bills"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete sales bill
// @Tags         sales-bills
// @Security     BearerAuth
// @Param        id path string true "Bill UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/sales-bills/{id} [delete]
func (h *SalesBillsHandler) Delete(c *gin.Context) {
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

// GetDocument godoc
// @Summary      Get bill document
// @Description  Returns the PDF document row for the bill, queueing generation if none exists yet.
// @Tags         sales-bills
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill UUID"
// @Success      200 {object} dto.DocumentResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sales-bills/{id}/document [get]
func (h *SalesBillsHandler) GetDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.docs.GetForBill(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegenerateDocument godoc
// @Summary      Regenerate bill document
// @Tags         sales-bills
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill UUID"
// @Success      202 {object} dto.DocumentResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sales-bills/{id}/document [post]
func (h *SalesBillsHandler) RegenerateDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.docs.Regenerate(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
