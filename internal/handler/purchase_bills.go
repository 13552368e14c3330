package handler

import (
	"net/http"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/apierror"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PurchaseBillsHandler struct{ svc service.PurchaseBillService }

func NewPurchaseBillsHandler(svc service.PurchaseBillService) *PurchaseBillsHandler {
	return &PurchaseBillsHandler{svc: svc}
}

// Create godoc
// @Summary      Create farmer purchase bill
// @Description  Computes billable weight per line (crate weight minus the standard deduction), adds commission on total billable kg, subtracts named deductions, and settles against the amount paid.
// @Tags         purchase-bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SavePurchaseBillRequest true "Bill draft"
// @Success      201  {object} dto.PurchaseBillResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/purchase-bills [post]
func (h *PurchaseBillsHandler) Create(c *gin.Context) {
	var req dto.SavePurchaseBillRequest
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
// @Summary      Update farmer purchase bill
// @Description  Recomputes the bill and replaces items and deductions. Recorded payments survive the edit and the settlement is recomputed against them.
// @Tags         purchase-bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Bill UUID"
// @Param        body body dto.SavePurchaseBillRequest true "Bill draft"
// @Success      200  {object} dto.PurchaseBillResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/purchase-bills/{id} [put]
func (h *PurchaseBillsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.SavePurchaseBillRequest
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
// @Summary      Get purchase bill
// @Tags         purchase-bills
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill UUID"
// @Success      200 {object} dto.PurchaseBillResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/purchase-bills/{id} [get]
func (h *PurchaseBillsHandler) Get(c *gin.Context) {
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
// @Summary      List purchase bills
// @Tags         purchase-bills
// @Produce      json
// @Security     BearerAuth
// @Param        date      query string false "Bill date YYYY-MM-DD"
// @Param        farmer_id query string false "Farmer UUID"
// @Param        status    query string false "paid | partial | pending"
// @Param        page      query int    false "Page (default 1)"
// @Param        limit     query int    false "Page size (default 50)"
// @Success      200 {object} dto.PurchaseBillListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/purchase-bills [get]
func (h *PurchaseBillsHandler) List(c *gin.Context) {
	var filter dto.PurchaseBillFilter
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
// @Summary      Delete purchase bill
// @Description  Removes the bill with its items, deductions, and payment history.
// @Tags         purchase-bills
// @Security     BearerAuth
// @Param        id path string true "Bill UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/purchase-bills/{id} [delete]
func (h *PurchaseBillsHandler) Delete(c *gin.Context) {
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

// AddPayment godoc
// @Summary      Record payment to farmer
// @Description  Appends an immutable payment record and recomputes the bill's settlement from the payment sum. Paying more than the balance requires confirm=true.
// @Tags         purchase-bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Bill UUID"
// @Param        body body dto.AddPaymentRequest true "Payment"
// @Success      201  {object} dto.PurchaseBillResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/purchase-bills/{id}/payments [post]
func (h *PurchaseBillsHandler) AddPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.AddPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddPayment(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
