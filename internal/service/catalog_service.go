package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Web-A1/hauls-service/internal/model"
)

type TruckRepository interface {
	Create(ctx context.Context, truck *model.Truck) error
	Find(ctx context.Context, id string) (*model.Truck, error)
	List(ctx context.Context) ([]model.Truck, error)
	Save(ctx context.Context, truck *model.Truck) error
	Delete(ctx context.Context, id string) error
}

type MaterialRepository interface {
	Create(ctx context.Context, material *model.Material) error
	Find(ctx context.Context, id string) (*model.Material, error)
	List(ctx context.Context) ([]model.Material, error)
	Save(ctx context.Context, material *model.Material) error
	Delete(ctx context.Context, id string) error
}

// CatalogService — тонкий CRUD справочников машин и материалов.
// Инвариантов здесь нет, только запрет мутаций для водителя.
type CatalogService struct {
	trucks    TruckRepository
	materials MaterialRepository
	now       func() time.Time
	newID     func() string
}

func NewCatalogService(trucks TruckRepository, materials MaterialRepository) *CatalogService {
	return &CatalogService{
		trucks:    trucks,
		materials: materials,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

type TruckInput struct {
	Name            string
	PlateNumber     string
	BodyVolumeM3    *float64
	DefaultDriverID *int64
}

type MaterialInput struct {
	Name    string
	Unit    string
	Density *float64
}

func (s *CatalogService) ListTrucks(ctx context.Context) ([]model.Truck, error) {
	return s.trucks.List(ctx)
}

func (s *CatalogService) CreateTruck(ctx context.Context, input TruckInput, actor model.Actor) (*model.Truck, error) {
	if actor.IsDriver() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: truck name is required", ErrInvalidInput)
	}

	now := s.now()
	truck := &model.Truck{
		ID:              s.newID(),
		Name:            input.Name,
		PlateNumber:     input.PlateNumber,
		BodyVolumeM3:    input.BodyVolumeM3,
		DefaultDriverID: input.DefaultDriverID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.trucks.Create(ctx, truck); err != nil {
		return nil, err
	}
	return truck, nil
}

func (s *CatalogService) UpdateTruck(ctx context.Context, id string, input TruckInput, actor model.Actor) (*model.Truck, error) {
	if actor.IsDriver() {
		return nil, ErrPermissionDenied
	}
	truck, err := s.trucks.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: truck name is required", ErrInvalidInput)
	}

	truck.Name = input.Name
	truck.PlateNumber = input.PlateNumber
	truck.BodyVolumeM3 = input.BodyVolumeM3
	truck.DefaultDriverID = input.DefaultDriverID
	truck.UpdatedAt = s.now()

	if err := s.trucks.Save(ctx, truck); err != nil {
		return nil, err
	}
	return truck, nil
}

func (s *CatalogService) DeleteTruck(ctx context.Context, id string, actor model.Actor) error {
	if actor.IsDriver() {
		return ErrPermissionDenied
	}
	return s.trucks.Delete(ctx, id)
}

func (s *CatalogService) ListMaterials(ctx context.Context) ([]model.Material, error) {
	return s.materials.List(ctx)
}

func (s *CatalogService) CreateMaterial(ctx context.Context, input MaterialInput, actor model.Actor) (*model.Material, error) {
	if actor.IsDriver() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: material name is required", ErrInvalidInput)
	}

	now := s.now()
	material := &model.Material{
		ID:        s.newID(),
		Name:      input.Name,
		Unit:      input.Unit,
		Density:   input.Density,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.materials.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *CatalogService) UpdateMaterial(ctx context.Context, id string, input MaterialInput, actor model.Actor) (*model.Material, error) {
	if actor.IsDriver() {
		return nil, ErrPermissionDenied
	}
	material, err := s.materials.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: material name is required", ErrInvalidInput)
	}

	material.Name = input.Name
	material.Unit = input.Unit
	material.Density = input.Density
	material.UpdatedAt = s.now()

	if err := s.materials.Save(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *CatalogService) DeleteMaterial(ctx context.Context, id string, actor model.Actor) error {
	if actor.IsDriver() {
		return ErrPermissionDenied
	}
	return s.materials.Delete(ctx, id)
}
