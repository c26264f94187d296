package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Web-A1/hauls-service/internal/model"
	"github.com/Web-A1/hauls-service/internal/service"
)

type Handler struct {
	hauls   *service.HaulService
	catalog *service.CatalogService
	install *service.InstallService
	export  *service.ExportService
	log     zerolog.Logger
}

func NewHandler(
	hauls *service.HaulService,
	catalog *service.CatalogService,
	install *service.InstallService,
	export *service.ExportService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		hauls:   hauls,
		catalog: catalog,
		install: install,
		export:  export,
		log:     log,
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDeleteForbidden), errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrIllegalTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type statusResponse struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type loadResponse struct {
	AddressText   string   `json:"address_text"`
	AddressURL    *string  `json:"address_url"`
	FromCompanyID *string  `json:"from_company_id"`
	ToCompanyID   *string  `json:"to_company_id"`
	PlannedVolume *float64 `json:"planned_volume"`
	ActualVolume  *float64 `json:"actual_volume"`
	Documents     []string `json:"documents"`
}

type unloadResponse struct {
	AddressText   string     `json:"address_text"`
	AddressURL    *string    `json:"address_url"`
	FromCompanyID *string    `json:"from_company_id"`
	ToCompanyID   *string    `json:"to_company_id"`
	ContactName   *string    `json:"contact_name"`
	ContactPhone  *string    `json:"contact_phone"`
	AcceptedAt    *time.Time `json:"accepted_at"`
	Documents     []string   `json:"documents"`
}

type haulResponse struct {
	ID            string         `json:"id"`
	DealID        int64          `json:"deal_id"`
	ResponsibleID *int64         `json:"responsible_id"`
	TruckID       string         `json:"truck_id"`
	MaterialID    string         `json:"material_id"`
	Sequence      int            `json:"sequence"`
	Status        statusResponse `json:"status"`
	GeneralNotes  *string        `json:"general_notes"`
	Load          loadResponse   `json:"load"`
	Unload        unloadResponse `json:"unload"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func toHaulResponse(haul *model.Haul) haulResponse {
	return haulResponse{
		ID:            haul.ID,
		DealID:        haul.DealID,
		ResponsibleID: haul.ResponsibleID,
		TruckID:       haul.TruckID,
		MaterialID:    haul.MaterialID,
		Sequence:      haul.Sequence,
		Status: statusResponse{
			Value: int(haul.Status),
			Label: haul.Status.Label(),
		},
		GeneralNotes: haul.GeneralNotes,
		Load: loadResponse{
			AddressText:   haul.Load.AddressText,
			AddressURL:    haul.Load.AddressURL,
			FromCompanyID: haul.Load.FromCompanyID,
			ToCompanyID:   haul.Load.ToCompanyID,
			PlannedVolume: haul.Load.PlannedVolume,
			ActualVolume:  haul.Load.ActualVolume,
			Documents:     documentsOrEmpty(haul.Load.Documents),
		},
		Unload: unloadResponse{
			AddressText:   haul.Unload.AddressText,
			AddressURL:    haul.Unload.AddressURL,
			FromCompanyID: haul.Unload.FromCompanyID,
			ToCompanyID:   haul.Unload.ToCompanyID,
			ContactName:   haul.Unload.ContactName,
			ContactPhone:  haul.Unload.ContactPhone,
			AcceptedAt:    haul.Unload.AcceptedAt,
			Documents:     documentsOrEmpty(haul.Unload.Documents),
		},
		CreatedAt: haul.CreatedAt,
		UpdatedAt: haul.UpdatedAt,
	}
}

func toHaulResponses(hauls []model.Haul) []haulResponse {
	result := make([]haulResponse, 0, len(hauls))
	for i := range hauls {
		result = append(result, toHaulResponse(&hauls[i]))
	}
	return result
}

func documentsOrEmpty(docs []string) []string {
	if docs == nil {
		return []string{}
	}
	return docs
}
