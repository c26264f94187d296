package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Web-A1/hauls-service/internal/model"
)

type HaulRepository interface {
	Create(ctx context.Context, haul *model.Haul, initial model.StatusEvent) error
	Find(ctx context.Context, id string) (*model.Haul, error)
	FindByDeal(ctx context.Context, dealID int64) ([]model.Haul, error)
	FindByResponsible(ctx context.Context, responsibleID int64) ([]model.Haul, error)
	Save(ctx context.Context, haul *model.Haul, statusEvent *model.StatusEvent, changes []model.ChangeEvent) error
	Delete(ctx context.Context, id string) error
	ListStatusEvents(ctx context.Context, haulID string) ([]model.StatusEvent, error)
	ListChangeEvents(ctx context.Context, haulID string) ([]model.ChangeEvent, error)
}

type HaulService struct {
	repo  HaulRepository
	now   func() time.Time
	newID func() string
}

func NewHaulService(repo HaulRepository) *HaulService {
	return &HaulService{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type LoadInput struct {
	AddressText   string
	AddressURL    *string
	FromCompanyID *string
	ToCompanyID   *string
	PlannedVolume *float64
	ActualVolume  *float64
	Documents     []string
}

type UnloadInput struct {
	AddressText   string
	AddressURL    *string
	FromCompanyID *string
	ToCompanyID   *string
	ContactName   *string
	ContactPhone  *string
	AcceptedAt    *time.Time
	Documents     []string
}

type CreateHaulInput struct {
	DealID        int64
	ResponsibleID *int64
	TruckID       string
	MaterialID    string
	Sequence      *int
	GeneralNotes  *string
	Load          LoadInput
	Unload        UnloadInput
}

// UpdateHaulInput — полная замена полей рейса (частичных патчей нет).
type UpdateHaulInput struct {
	ResponsibleID *int64
	TruckID       string
	MaterialID    string
	Sequence      int
	Status        int
	GeneralNotes  *string
	Load          LoadInput
	Unload        UnloadInput
}

type HaulHistory struct {
	StatusEvents []model.StatusEvent
	ChangeEvents []model.ChangeEvent
}

func (s *HaulService) Create(ctx context.Context, input CreateHaulInput, actor model.Actor) (*model.Haul, error) {
	if actor.IsDriver() {
		return nil, ErrPermissionDenied
	}
	if input.DealID <= 0 {
		return nil, fmt.Errorf("%w: deal_id is required", ErrInvalidInput)
	}
	if err := validateLegs(input.Load, input.Unload); err != nil {
		return nil, err
	}

	now := s.now()
	haul := model.NewHaul(s.newID(), input.DealID, now)
	haul.AssignResponsible(input.ResponsibleID)
	haul.AssignTruck(input.TruckID)
	haul.AssignMaterial(input.MaterialID)
	haul.SetGeneralNotes(input.GeneralNotes)
	haul.UpdateLoadAddress(input.Load.AddressText, input.Load.AddressURL)
	haul.UpdateLoadCompanies(input.Load.FromCompanyID, input.Load.ToCompanyID)
	haul.UpdateLoadVolumes(input.Load.PlannedVolume, input.Load.ActualVolume)
	haul.ReplaceLoadDocuments(input.Load.Documents)
	haul.UpdateUnloadAddress(input.Unload.AddressText, input.Unload.AddressURL)
	haul.UpdateUnloadCompanies(input.Unload.FromCompanyID, input.Unload.ToCompanyID)
	haul.UpdateUnloadContact(input.Unload.ContactName, input.Unload.ContactPhone)
	haul.SetAcceptedAt(input.Unload.AcceptedAt)
	haul.ReplaceUnloadDocuments(input.Unload.Documents)
	if input.Sequence != nil {
		if *input.Sequence <= 0 {
			return nil, fmt.Errorf("%w: sequence must be positive", ErrInvalidInput)
		}
		haul.RewriteSequence(*input.Sequence)
	}

	initial := model.StatusEvent{
		HaulID:    haul.ID,
		Status:    model.StatusPreparation,
		ChangedBy: actor.ID,
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, haul, initial); err != nil {
		return nil, err
	}
	return haul, nil
}

func (s *HaulService) Update(ctx context.Context, id string, input UpdateHaulInput, actor model.Actor) (*model.Haul, error) {
	haul, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsDriver() {
		// Водителю общий апдейт закрыт, ему доступна только смена статуса.
		return nil, ErrPermissionDenied
	}
	if err := validateLegs(input.Load, input.Unload); err != nil {
		return nil, err
	}
	if input.Sequence <= 0 {
		return nil, fmt.Errorf("%w: sequence must be positive", ErrInvalidInput)
	}

	next := model.SanitizeStatus(input.Status)
	if !haul.Status.CanTransitionTo(next, actor.Role) {
		return nil, ErrIllegalTransition
	}

	now := s.now()
	changes := buildUpdateChanges(haul, input, next, actor, now)

	var statusEvent *model.StatusEvent
	if next != haul.Status {
		statusEvent = &model.StatusEvent{
			HaulID:    haul.ID,
			Status:    next,
			ChangedBy: actor.ID,
			CreatedAt: now,
		}
	}

	haul.AssignResponsible(input.ResponsibleID)
	haul.AssignTruck(input.TruckID)
	haul.AssignMaterial(input.MaterialID)
	haul.RewriteSequence(input.Sequence)
	haul.SetGeneralNotes(input.GeneralNotes)
	haul.SetStatus(next)
	haul.UpdateLoadAddress(input.Load.AddressText, input.Load.AddressURL)
	haul.UpdateLoadCompanies(input.Load.FromCompanyID, input.Load.ToCompanyID)
	haul.UpdateLoadVolumes(input.Load.PlannedVolume, input.Load.ActualVolume)
	haul.ReplaceLoadDocuments(input.Load.Documents)
	haul.UpdateUnloadAddress(input.Unload.AddressText, input.Unload.AddressURL)
	haul.UpdateUnloadCompanies(input.Unload.FromCompanyID, input.Unload.ToCompanyID)
	haul.UpdateUnloadContact(input.Unload.ContactName, input.Unload.ContactPhone)
	haul.SetAcceptedAt(input.Unload.AcceptedAt)
	haul.ReplaceUnloadDocuments(input.Unload.Documents)
	haul.Touch(now)

	if err := s.repo.Save(ctx, haul, statusEvent, changes); err != nil {
		return nil, err
	}
	return haul, nil
}

// ChangeStatus — единственная мутация, доступная роли водителя, и только на
// собственных рейсах.
func (s *HaulService) ChangeStatus(ctx context.Context, id string, rawStatus int, actor model.Actor) (*model.Haul, error) {
	haul, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsDriver() && !actor.Owns(haul) {
		return nil, ErrPermissionDenied
	}

	next := model.SanitizeStatus(rawStatus)
	if !haul.Status.CanTransitionTo(next, actor.Role) {
		return nil, ErrIllegalTransition
	}
	if next == haul.Status {
		return haul, nil
	}

	now := s.now()
	changes := []model.ChangeEvent{{
		HaulID:    haul.ID,
		Field:     "status",
		OldValue:  intPtrString(int(haul.Status)),
		NewValue:  intPtrString(int(next)),
		ActorID:   actor.ID,
		ActorName: actor.Name,
		ActorRole: actor.Role,
		CreatedAt: now,
	}}
	statusEvent := &model.StatusEvent{
		HaulID:    haul.ID,
		Status:    next,
		ChangedBy: actor.ID,
		CreatedAt: now,
	}

	haul.SetStatus(next)
	haul.Touch(now)

	if err := s.repo.Save(ctx, haul, statusEvent, changes); err != nil {
		return nil, err
	}
	return haul, nil
}

// Delete идемпотентен: отсутствующий рейс считается уже удалённым.
func (s *HaulService) Delete(ctx context.Context, id string, actor model.Actor) error {
	haul, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !actor.IsAdmin() && !actor.Owns(haul) {
		return ErrDeleteForbidden
	}
	return s.repo.Delete(ctx, haul.ID)
}

func (s *HaulService) Get(ctx context.Context, id string) (*model.Haul, error) {
	return s.load(ctx, id)
}

func (s *HaulService) ListByDeal(ctx context.Context, dealID int64) ([]model.Haul, error) {
	return s.repo.FindByDeal(ctx, dealID)
}

func (s *HaulService) ListByResponsible(ctx context.Context, responsibleID int64) ([]model.Haul, error) {
	return s.repo.FindByResponsible(ctx, responsibleID)
}

// ListMine возвращает рейсы текущего пользователя; водителю показываются
// только статусы активного окна.
func (s *HaulService) ListMine(ctx context.Context, actor model.Actor) ([]model.Haul, error) {
	if actor.ID == nil {
		return nil, ErrPermissionDenied
	}
	hauls, err := s.repo.FindByResponsible(ctx, *actor.ID)
	if err != nil {
		return nil, err
	}
	if !actor.IsDriver() {
		return hauls, nil
	}
	visible := make([]model.Haul, 0, len(hauls))
	for _, haul := range hauls {
		if haul.Status.IsDriverVisible() {
			visible = append(visible, haul)
		}
	}
	return visible, nil
}

func (s *HaulService) History(ctx context.Context, id string) (*HaulHistory, error) {
	haul, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	statusEvents, err := s.repo.ListStatusEvents(ctx, haul.ID)
	if err != nil {
		return nil, err
	}
	changeEvents, err := s.repo.ListChangeEvents(ctx, haul.ID)
	if err != nil {
		return nil, err
	}
	return &HaulHistory{StatusEvents: statusEvents, ChangeEvents: changeEvents}, nil
}

func (s *HaulService) load(ctx context.Context, id string) (*model.Haul, error) {
	haul, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if haul.IsDeleted() {
		return nil, ErrNotFound
	}
	return haul, nil
}

func validateLegs(load LoadInput, unload UnloadInput) error {
	if strings.TrimSpace(load.AddressText) == "" {
		return fmt.Errorf("%w: load address is required", ErrInvalidInput)
	}
	if strings.TrimSpace(unload.AddressText) == "" {
		return fmt.Errorf("%w: unload address is required", ErrInvalidInput)
	}
	if load.PlannedVolume != nil && *load.PlannedVolume < 0 {
		return fmt.Errorf("%w: planned volume must not be negative", ErrInvalidInput)
	}
	if load.ActualVolume != nil && *load.ActualVolume < 0 {
		return fmt.Errorf("%w: actual volume must not be negative", ErrInvalidInput)
	}
	return nil
}

func buildUpdateChanges(haul *model.Haul, input UpdateHaulInput, next model.HaulStatus, actor model.Actor, now time.Time) []model.ChangeEvent {
	var changes []model.ChangeEvent
	add := func(field string, oldValue, newValue *string) {
		if ptrStringEqual(oldValue, newValue) {
			return
		}
		changes = append(changes, model.ChangeEvent{
			HaulID:    haul.ID,
			Field:     field,
			OldValue:  oldValue,
			NewValue:  newValue,
			ActorID:   actor.ID,
			ActorName: actor.Name,
			ActorRole: actor.Role,
			CreatedAt: now,
		})
	}

	add("responsible_id", int64PtrString(haul.ResponsibleID), int64PtrString(input.ResponsibleID))
	add("truck_id", stringPtr(haul.TruckID), stringPtr(input.TruckID))
	add("material_id", stringPtr(haul.MaterialID), stringPtr(input.MaterialID))
	add("sequence", intPtrString(haul.Sequence), intPtrString(input.Sequence))
	add("status", intPtrString(int(haul.Status)), intPtrString(int(next)))
	add("general_notes", haul.GeneralNotes, input.GeneralNotes)
	add("load.address_text", stringPtr(haul.Load.AddressText), stringPtr(input.Load.AddressText))
	add("load.address_url", haul.Load.AddressURL, input.Load.AddressURL)
	add("load.from_company_id", haul.Load.FromCompanyID, input.Load.FromCompanyID)
	add("load.to_company_id", haul.Load.ToCompanyID, input.Load.ToCompanyID)
	add("load.planned_volume", floatPtrString(haul.Load.PlannedVolume), floatPtrString(input.Load.PlannedVolume))
	add("load.actual_volume", floatPtrString(haul.Load.ActualVolume), floatPtrString(input.Load.ActualVolume))
	add("load.documents", documentsString(haul.Load.Documents), documentsString(input.Load.Documents))
	add("unload.address_text", stringPtr(haul.Unload.AddressText), stringPtr(input.Unload.AddressText))
	add("unload.address_url", haul.Unload.AddressURL, input.Unload.AddressURL)
	add("unload.from_company_id", haul.Unload.FromCompanyID, input.Unload.FromCompanyID)
	add("unload.to_company_id", haul.Unload.ToCompanyID, input.Unload.ToCompanyID)
	add("unload.contact_name", haul.Unload.ContactName, input.Unload.ContactName)
	add("unload.contact_phone", haul.Unload.ContactPhone, input.Unload.ContactPhone)
	add("unload.accepted_at", timePtrString(haul.Unload.AcceptedAt), timePtrString(input.Unload.AcceptedAt))
	add("unload.documents", documentsString(haul.Unload.Documents), documentsString(input.Unload.Documents))

	return changes
}

func ptrStringEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func intPtrString(v int) *string {
	s := strconv.Itoa(v)
	return &s
}

func int64PtrString(v *int64) *string {
	if v == nil {
		return nil
	}
	s := strconv.FormatInt(*v, 10)
	return &s
}

func floatPtrString(v *float64) *string {
	if v == nil {
		return nil
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	return &s
}

func timePtrString(v *time.Time) *string {
	if v == nil {
		return nil
	}
	s := v.UTC().Format(time.RFC3339)
	return &s
}

func documentsString(docs []string) *string {
	if len(docs) == 0 {
		return nil
	}
	s := strings.Join(docs, ",")
	return &s
}
