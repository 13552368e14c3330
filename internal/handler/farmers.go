package handler

import (
	"net/http"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/apierror"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FarmersHandler struct{ svc service.FarmerService }

func NewFarmersHandler(svc service.FarmerService) *FarmersHandler {
	return &FarmersHandler{svc: svc}
}

// Create godoc
// @Summary      Create farmer
// @Tags         farmers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaveFarmerRequest true "Farmer"
// @Success      201  {object} dto.FarmerResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/farmers [post]
func (h *FarmersHandler) Create(c *gin.Context) {
	var req dto.SaveFarmerRequest
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
// @Summary      Update farmer
// @Tags         farmers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Farmer UUID"
// @Param        body body dto.SaveFarmerRequest true "Farmer"
// @Success      200  {object} dto.FarmerResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/farmers/{id} [put]
func (h *FarmersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.SaveFarmerRequest
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
// @Summary      List farmers
// @Tags         farmers
// @Produce      json
// @Security     BearerAuth
// @Param        search           query string false "Name substring filter"
// @Param        include_inactive query bool   false "Include deactivated farmers"
// @Success      200 {array} dto.FarmerResponse
// @Router       /v1/farmers [get]
func (h *FarmersHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.List(c.Request.Context(), c.Query("search"), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list farmers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary      Deactivate farmer
// @Tags         farmers
// @Security     BearerAuth
// @Param        id path string true "Farmer UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/farmers/{id} [delete]
func (h *FarmersHandler) Deactivate(c *gin.Context) {
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
