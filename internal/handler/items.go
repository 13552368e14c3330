package handler

import (
	"net/http"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/apierror"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemsHandler struct{ svc service.ItemService }

func NewItemsHandler(svc service.ItemService) *ItemsHandler { return &ItemsHandler{svc: svc} }

// Create godoc
// @Summary      Create fish item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaveItemRequest true "Item"
// @Success      201  {object} dto.ItemResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/items [post]
func (h *ItemsHandler) Create(c *gin.Context) {
	var req dto.SaveItemRequest
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
// @Summary      Update fish item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Item UUID"
// @Param        body body dto.SaveItemRequest true "Item"
// @Success      200  {object} dto.ItemResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/items/{id} [put]
func (h *ItemsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.SaveItemRequest
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
// @Summary      List fish items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        include_inactive query bool false "Include deactivated items"
// @Success      200 {array} dto.ItemResponse
// @Router       /v1/items [get]
func (h *ItemsHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.List(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list items"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary      Deactivate fish item
// @Tags         items
// @Security     BearerAuth
// @Param        id path string true "Item UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/items/{id} [delete]
func (h *ItemsHandler) Deactivate(c *gin.Context) {
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

// Reactivate godoc
// @Summary      Reactivate fish item
// @Tags         items
// @Security     BearerAuth
// @Param        id path string true "Item UUID"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/items/{id}/reactivate [patch]
func (h *ItemsHandler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Reactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
