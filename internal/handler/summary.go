package handler

import (
	"net/http"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/apierror"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct{ svc service.SummaryService }

func NewSummaryHandler(svc service.SummaryService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

// Daily godoc
// @Summary      Daily money summary
// @Description  Sales, purchases, payments out, expenses, and net cash for one day. Derived on demand, never stored.
// @Tags         summary
// @Produce      json
// @Security     BearerAuth
// @Param        date query string true "Date YYYY-MM-DD"
// @Success      200 {object} dto.DailySummaryResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/summary/daily [get]
func (h *SummaryHandler) Daily(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, apierror.New("date query parameter is required"))
		return
	}
	resp, err := h.svc.Daily(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Monthly godoc
// @Summary      Monthly money summary
// @Tags         summary
// @Produce      json
// @Security     BearerAuth
// @Param        month query string true "Month YYYY-MM"
// @Success      200 {object} dto.MonthlySummaryResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/summary/monthly [get]
func (h *SummaryHandler) Monthly(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, apierror.New("month query parameter is required"))
		return
	}
	resp, err := h.svc.Monthly(c.Request.Context(), month)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PendingCustomers godoc
// @Summary      Customers with outstanding balances
// @Tags         summary
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.PartyBalanceResponse
// @Router       /v1/summary/pending-customers [get]
func (h *SummaryHandler) PendingCustomers(c *gin.Context) {
	resp, err := h.svc.PendingCustomers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to compute balances"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PendingFarmers godoc
// @Summary      Farmers still owed money
// @Tags         summary
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.PartyBalanceResponse
// @Router       /v1/summary/pending-farmers [get]
func (h *SummaryHandler) PendingFarmers(c *gin.Context) {
	resp, err := h.svc.PendingFarmers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to compute balances"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
