package handler

import (
	"net/http"
	"strings"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/apierror"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RatesHandler struct{ svc service.RateService }

func NewRatesHandler(svc service.RateService) *RatesHandler { return &RatesHandler{svc: svc} }

// Resolve godoc
// @Summary      Resolve most recent rates
// @Description  Returns, per item, the rate from its most recently created bill line. kind selects the sales or purchase side. Items never billed come back with found=false.
// @Tags         rates
// @Produce      json
// @Security     BearerAuth
// @Param        kind     query string true  "sales | purchase"
// @Param        item_ids query string true  "Comma-separated item UUIDs"
// @Success      200 {array} dto.RateResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/rates [get]
func (h *RatesHandler) Resolve(c *gin.Context) {
	var kind service.RateKind
	switch c.Query("kind") {
	case "sales":
		kind = service.RateKindSales
	case "purchase":
		kind = service.RateKindPurchase
	default:
		c.JSON(http.StatusBadRequest, apierror.New("kind must be sales or purchase"))
		return
	}

	raw := c.Query("item_ids")
	if raw == "" {
		c.JSON(http.StatusBadRequest, apierror.New("item_ids query parameter is required"))
		return
	}
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid item id: "+p))
			return
		}
		ids = append(ids, id)
	}

	resp, err := h.svc.Resolve(c.Request.Context(), kind, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to resolve rates"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
