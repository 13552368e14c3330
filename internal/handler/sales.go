package handler

import (
	"net/http"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/apierror"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/service"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/worker"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	svc        service.SaleService
	dispatcher *worker.Dispatcher
}

func NewSalesHandler(svc service.SaleService, dispatcher *worker.Dispatcher) *SalesHandler {
	return &SalesHandler{svc: svc, dispatcher: dispatcher}
}

// Upsert godoc
// @Summary      Upsert sale ledger row
// @Description  Writes one quantity row keyed by (customer, item, date). Repeating the call updates in place; zero crates and zero kg deletes the row.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.UpsertSaleRequest true "Sale quantities"
// @Success      200  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) Upsert(c *gin.Context) {
	var req dto.UpsertSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Upsert(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListByDate godoc
// @Summary      List sale ledger rows for a date
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        date query string true "Sale date YYYY-MM-DD"
// @Success      200 {array} dto.SaleResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/sales [get]
func (h *SalesHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, apierror.New("date query parameter is required"))
		return
	}
	resp, err := h.svc.ListByDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reconcile godoc
// @Summary      Remove duplicate ledger rows for a date
// @Description  Keeps the newest row per (customer, item) and deletes the rest. Safe to run repeatedly. Pass async=true to queue the cleanup instead of running inline.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        async query bool false "Run via the worker queue"
// @Param        body  body dto.ReconcileRequest true "Date to reconcile"
// @Success      200   {object} dto.ReconcileResponse
// @Success      202   {object} dto.ReconcileResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/sales/reconcile [post]
func (h *SalesHandler) Reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if c.Query("async") == "true" {
		payload := worker.ReconcileJobPayload{SaleDate: req.SaleDate}
		if err := h.dispatcher.EnqueueReconcile(c.Request.Context(), payload); err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("failed to queue reconcile"))
			return
		}
		c.JSON(http.StatusAccepted, dto.ReconcileResponse{SaleDate: req.SaleDate})
		return
	}

	resp, err := h.svc.Reconcile(c.Request.Context(), req.SaleDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
