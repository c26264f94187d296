package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Web-A1/hauls-service/internal/http/middleware"
	"github.com/Web-A1/hauls-service/internal/service"
)

type truckRequest struct {
	Name            string   `json:"name" binding:"required"`
	PlateNumber     string   `json:"plate_number"`
	BodyVolumeM3    *float64 `json:"body_volume_m3"`
	DefaultDriverID *int64   `json:"default_driver_id"`
}

type materialRequest struct {
	Name    string   `json:"name" binding:"required"`
	Unit    string   `json:"unit"`
	Density *float64 `json:"density"`
}

func (h *Handler) listTrucks(c *gin.Context) {
	trucks, err := h.catalog.ListTrucks(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, trucks)
}

func (h *Handler) createTruck(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return
	}

	var req truckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	truck, err := h.catalog.CreateTruck(c.Request.Context(), service.TruckInput{
		Name:            req.Name,
		PlateNumber:     req.PlateNumber,
		BodyVolumeM3:    req.BodyVolumeM3,
		DefaultDriverID: req.DefaultDriverID,
	}, actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, truck)
}

func (h *Handler) updateTruck(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return
	}

	var req truckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	truck, err := h.catalog.UpdateTruck(c.Request.Context(), c.Param("id"), service.TruckInput{
		Name:            req.Name,
		PlateNumber:     req.PlateNumber,
		BodyVolumeM3:    req.BodyVolumeM3,
		DefaultDriverID: req.DefaultDriverID,
	}, actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, truck)
}

func (h *Handler) deleteTruck(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return
	}

	if err := h.catalog.DeleteTruck(c.Request.Context(), c.Param("id"), actor); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listMaterials(c *gin.Context) {
	materials, err := h.catalog.ListMaterials(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

func (h *Handler) createMaterial(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return
	}

	var req materialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.catalog.CreateMaterial(c.Request.Context(), service.MaterialInput{
		Name:    req.Name,
		Unit:    req.Unit,
		Density: req.Density,
	}, actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, material)
}

func (h *Handler) updateMaterial(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return
	}

	var req materialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.catalog.UpdateMaterial(c.Request.Context(), c.Param("id"), service.MaterialInput{
		Name:    req.Name,
		Unit:    req.Unit,
		Density: req.Density,
	}, actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

func (h *Handler) deleteMaterial(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return
	}

	if err := h.catalog.DeleteMaterial(c.Request.Context(), c.Param("id"), actor); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
