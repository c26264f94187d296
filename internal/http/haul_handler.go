package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Web-A1/hauls-service/internal/http/middleware"
	"github.com/Web-A1/hauls-service/internal/service"
)

type loadPayload struct {
	AddressText   string   `json:"address_text"`
	AddressURL    *string  `json:"address_url"`
	FromCompanyID *string  `json:"from_company_id"`
	ToCompanyID   *string  `json:"to_company_id"`
	PlannedVolume *float64 `json:"planned_volume"`
	ActualVolume  *float64 `json:"actual_volume"`
	Documents     []string `json:"documents"`
}

type unloadPayload struct {
	AddressText   string     `json:"address_text"`
	AddressURL    *string    `json:"address_url"`
	FromCompanyID *string    `json:"from_company_id"`
	ToCompanyID   *string    `json:"to_company_id"`
	ContactName   *string    `json:"contact_name"`
	ContactPhone  *string    `json:"contact_phone"`
	AcceptedAt    *time.Time `json:"accepted_at"`
	Documents     []string   `json:"documents"`
}

type createHaulRequest struct {
	DealID        int64         `json:"deal_id" binding:"required"`
	ResponsibleID *int64        `json:"responsible_id"`
	TruckID       string        `json:"truck_id"`
	MaterialID    string        `json:"material_id"`
	Sequence      *int          `json:"sequence"`
	GeneralNotes  *string       `json:"general_notes"`
	Load          loadPayload   `json:"load"`
	Unload        unloadPayload `json:"unload"`
}

type updateHaulRequest struct {
	ResponsibleID *int64        `json:"responsible_id"`
	TruckID       string        `json:"truck_id"`
	MaterialID    string        `json:"material_id"`
	Sequence      int           `json:"sequence"`
	Status        int           `json:"status"`
	GeneralNotes  *string       `json:"general_notes"`
	Load          loadPayload   `json:"load"`
	Unload        unloadPayload `json:"unload"`
}

type changeStatusRequest struct {
	Status *int `json:"status" binding:"required"`
}

func (h *Handler) listHauls(c *gin.Context) {
	if raw := c.Query("deal_id"); raw != "" {
		dealID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deal_id"})
			return
		}
		hauls, err := h.hauls.ListByDeal(c.Request.Context(), dealID)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toHaulResponses(hauls))
		return
	}

	if raw := c.Query("responsible_id"); raw != "" {
		responsibleID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid responsible_id"})
			return
		}
		hauls, err := h.hauls.ListByResponsible(c.Request.Context(), responsibleID)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toHaulResponses(hauls))
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "deal_id or responsible_id is required"})
}

func (h *Handler) listMyHauls(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return
	}
	hauls, err := h.hauls.ListMine(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHaulResponses(hauls))
}

func (h *Handler) getHaul(c *gin.Context) {
	haul, err := h.hauls.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHaulResponse(haul))
}

func (h *Handler) createHaul(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return
	}

	var req createHaulRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	haul, err := h.hauls.Create(c.Request.Context(), service.CreateHaulInput{
		DealID:        req.DealID,
		ResponsibleID: req.ResponsibleID,
		TruckID:       req.TruckID,
		MaterialID:    req.MaterialID,
		Sequence:      req.Sequence,
		GeneralNotes:  req.GeneralNotes,
		Load:          toLoadInput(req.Load),
		Unload:        toUnloadInput(req.Unload),
	}, actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toHaulResponse(haul))
}

func (h *Handler) updateHaul(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return
	}

	var req updateHaulRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	haul, err := h.hauls.Update(c.Request.Context(), c.Param("id"), service.UpdateHaulInput{
		ResponsibleID: req.ResponsibleID,
		TruckID:       req.TruckID,
		MaterialID:    req.MaterialID,
		Sequence:      req.Sequence,
		Status:        req.Status,
		GeneralNotes:  req.GeneralNotes,
		Load:          toLoadInput(req.Load),
		Unload:        toUnloadInput(req.Unload),
	}, actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHaulResponse(haul))
}

func (h *Handler) changeHaulStatus(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	haul, err := h.hauls.ChangeStatus(c.Request.Context(), c.Param("id"), *req.Status, actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHaulResponse(haul))
}

func (h *Handler) deleteHaul(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return
	}

	if err := h.hauls.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) haulHistory(c *gin.Context) {
	history, err := h.hauls.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	statusEvents := make([]gin.H, 0, len(history.StatusEvents))
	for _, event := range history.StatusEvents {
		statusEvents = append(statusEvents, gin.H{
			"status": statusResponse{
				Value: int(event.Status),
				Label: event.Status.Label(),
			},
			"changed_by": event.ChangedBy,
			"created_at": event.CreatedAt,
		})
	}

	changeEvents := make([]gin.H, 0, len(history.ChangeEvents))
	for _, event := range history.ChangeEvents {
		changeEvents = append(changeEvents, gin.H{
			"field":      event.Field,
			"old_value":  event.OldValue,
			"new_value":  event.NewValue,
			"actor_id":   event.ActorID,
			"actor_name": event.ActorName,
			"actor_role": event.ActorRole,
			"created_at": event.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status_history": statusEvents,
		"change_history": changeEvents,
	})
}

func (h *Handler) exportDealRegister(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing actor"})
		return
	}

	dealID, err := strconv.ParseInt(c.Param("dealId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deal id"})
		return
	}

	result, err := h.export.DealRegister(c.Request.Context(), dealID, actor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

func (h *Handler) haulWaybill(c *gin.Context) {
	result, err := h.export.Waybill(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func toLoadInput(p loadPayload) service.LoadInput {
	return service.LoadInput{
		AddressText:   p.AddressText,
		AddressURL:    p.AddressURL,
		FromCompanyID: p.FromCompanyID,
		ToCompanyID:   p.ToCompanyID,
		PlannedVolume: p.PlannedVolume,
		ActualVolume:  p.ActualVolume,
		Documents:     p.Documents,
	}
}

func toUnloadInput(p unloadPayload) service.UnloadInput {
	return service.UnloadInput{
		AddressText:   p.AddressText,
		AddressURL:    p.AddressURL,
		FromCompanyID: p.FromCompanyID,
		ToCompanyID:   p.ToCompanyID,
		ContactName:   p.ContactName,
		ContactPhone:  p.ContactPhone,
		AcceptedAt:    p.AcceptedAt,
		Documents:     p.Documents,
	}
}
