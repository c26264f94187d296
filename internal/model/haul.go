package model

import "time"

// Haul — одно плечо перевозки (погрузка + выгрузка) в рамках сделки CRM.
type Haul struct {
	ID            string
	DealID        int64
	ResponsibleID *int64
	TruckID       string
	MaterialID    string
	Sequence      int
	Status        HaulStatus
	GeneralNotes  *string
	Load          LoadLeg
	Unload        UnloadLeg
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

type LoadLeg struct {
	AddressText   string
	AddressURL    *string
	FromCompanyID *string
	ToCompanyID   *string
	PlannedVolume *float64
	ActualVolume  *float64
	Documents     []string
}

type UnloadLeg struct {
	AddressText   string
	AddressURL    *string
	FromCompanyID *string
	ToCompanyID   *string
	ContactName   *string
	ContactPhone  *string
	AcceptedAt    *time.Time
	Documents     []string
}

// NewHaul собирает новый рейс в статусе "Подготовка".
func NewHaul(id string, dealID int64, now time.Time) *Haul {
	return &Haul{
		ID:        id,
		DealID:    dealID,
		Status:    StatusPreparation,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (h *Haul) UpdateLoadAddress(text string, url *string) {
	h.Load.AddressText = text
	h.Load.AddressURL = url
}

func (h *Haul) UpdateUnloadAddress(text string, url *string) {
	h.Unload.AddressText = text
	h.Unload.AddressURL = url
}

func (h *Haul) UpdateLoadCompanies(from, to *string) {
	h.Load.FromCompanyID = from
	h.Load.ToCompanyID = to
}

func (h *Haul) UpdateUnloadCompanies(from, to *string) {
	h.Unload.FromCompanyID = from
	h.Unload.ToCompanyID = to
}

func (h *Haul) UpdateLoadVolumes(planned, actual *float64) {
	h.Load.PlannedVolume = planned
	h.Load.ActualVolume = actual
}

func (h *Haul) UpdateUnloadContact(name, phone *string) {
	h.Unload.ContactName = name
	h.Unload.ContactPhone = phone
}

func (h *Haul) SetAcceptedAt(t *time.Time) {
	h.Unload.AcceptedAt = t
}

func (h *Haul) ReplaceLoadDocuments(docs []string) {
	h.Load.Documents = docs
}

func (h *Haul) ReplaceUnloadDocuments(docs []string) {
	h.Unload.Documents = docs
}

func (h *Haul) AssignResponsible(id *int64) {
	h.ResponsibleID = id
}

func (h *Haul) AssignTruck(truckID string) {
	h.TruckID = truckID
}

func (h *Haul) AssignMaterial(materialID string) {
	h.MaterialID = materialID
}

func (h *Haul) RewriteSequence(n int) {
	h.Sequence = n
}

func (h *Haul) SetGeneralNotes(notes *string) {
	h.GeneralNotes = notes
}

// SetStatus не проверяет переход: допустимость решает сервис через
// CanTransitionTo с учётом роли и владения.
func (h *Haul) SetStatus(s HaulStatus) {
	h.Status = s
}

// Touch фиксирует момент последнего изменения; вызывается сервисом после
// каждой партии мутаций.
func (h *Haul) Touch(now time.Time) {
	h.UpdatedAt = now
}

func (h *Haul) MarkDeleted(now time.Time) {
	h.DeletedAt = &now
}

func (h *Haul) Restore() {
	h.DeletedAt = nil
}

func (h *Haul) IsDeleted() bool {
	return h.DeletedAt != nil
}
