package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Web-A1/hauls-service/internal/model"
	"github.com/Web-A1/hauls-service/internal/service"
)

type fakeTruckRepo struct {
	trucks map[string]model.Truck
}

func newFakeTruckRepo() *fakeTruckRepo {
	return &fakeTruckRepo{trucks: make(map[string]model.Truck)}
}

func (f *fakeTruckRepo) Create(_ context.Context, truck *model.Truck) error {
	f.trucks[truck.ID] = *truck
	return nil
}

func (f *fakeTruckRepo) Find(_ context.Context, id string) (*model.Truck, error) {
	truck, ok := f.trucks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &truck, nil
}

func (f *fakeTruckRepo) List(_ context.Context) ([]model.Truck, error) {
	result := make([]model.Truck, 0, len(f.trucks))
	for _, truck := range f.trucks {
		result = append(result, truck)
	}
	return result, nil
}

func (f *fakeTruckRepo) Save(_ context.Context, truck *model.Truck) error {
	if _, ok := f.trucks[truck.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.trucks[truck.ID] = *truck
	return nil
}

func (f *fakeTruckRepo) Delete(_ context.Context, id string) error {
	delete(f.trucks, id)
	return nil
}

type fakeMaterialRepo struct {
	materials map[string]model.Material
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{materials: make(map[string]model.Material)}
}

func (f *fakeMaterialRepo) Create(_ context.Context, material *model.Material) error {
	f.materials[material.ID] = *material
	return nil
}

func (f *fakeMaterialRepo) Find(_ context.Context, id string) (*model.Material, error) {
	material, ok := f.materials[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &material, nil
}

func (f *fakeMaterialRepo) List(_ context.Context) ([]model.Material, error) {
	result := make([]model.Material, 0, len(f.materials))
	for _, material := range f.materials {
		result = append(result, material)
	}
	return result, nil
}

func (f *fakeMaterialRepo) Save(_ context.Context, material *model.Material) error {
	if _, ok := f.materials[material.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.materials[material.ID] = *material
	return nil
}

func (f *fakeMaterialRepo) Delete(_ context.Context, id string) error {
	delete(f.materials, id)
	return nil
}

func newCatalogService() (*service.CatalogService, *fakeTruckRepo, *fakeMaterialRepo) {
	trucks := newFakeTruckRepo()
	materials := newFakeMaterialRepo()
	return service.NewCatalogService(trucks, materials), trucks, materials
}

func TestCatalogService_Trucks(t *testing.T) {
	ctx := context.Background()

	t.Run("manager creates and updates", func(t *testing.T) {
		svc, trucks, _ := newCatalogService()

		created, err := svc.CreateTruck(ctx, service.TruckInput{Name: "КамАЗ 65115", PlateNumber: "А123ВС"}, manager)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Contains(t, trucks.trucks, created.ID)

		updated, err := svc.UpdateTruck(ctx, created.ID, service.TruckInput{Name: "КамАЗ 6520", PlateNumber: "А123ВС"}, manager)
		require.NoError(t, err)
		assert.Equal(t, "КамАЗ 6520", updated.Name)
	})

	t.Run("driver mutations are rejected", func(t *testing.T) {
		svc, _, _ := newCatalogService()

		_, err := svc.CreateTruck(ctx, service.TruckInput{Name: "КамАЗ"}, driver)
		assert.ErrorIs(t, err, service.ErrPermissionDenied)

		_, err = svc.UpdateTruck(ctx, "any", service.TruckInput{Name: "КамАЗ"}, driver)
		assert.ErrorIs(t, err, service.ErrPermissionDenied)

		err = svc.DeleteTruck(ctx, "any", driver)
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("driver can read", func(t *testing.T) {
		svc, _, _ := newCatalogService()
		_, err := svc.CreateTruck(ctx, service.TruckInput{Name: "КамАЗ"}, admin)
		require.NoError(t, err)

		list, err := svc.ListTrucks(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("name is required", func(t *testing.T) {
		svc, _, _ := newCatalogService()
		_, err := svc.CreateTruck(ctx, service.TruckInput{Name: "  "}, manager)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("update of unknown truck", func(t *testing.T) {
		svc, _, _ := newCatalogService()
		_, err := svc.UpdateTruck(ctx, "missing", service.TruckInput{Name: "КамАЗ"}, manager)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestCatalogService_Materials(t *testing.T) {
	ctx := context.Background()

	t.Run("manager creates and deletes", func(t *testing.T) {
		svc, _, materials := newCatalogService()

		created, err := svc.CreateMaterial(ctx, service.MaterialInput{Name: "Песок", Unit: "м3"}, manager)
		require.NoError(t, err)
		assert.Contains(t, materials.materials, created.ID)

		require.NoError(t, svc.DeleteMaterial(ctx, created.ID, manager))
		assert.Empty(t, materials.materials)
	})

	t.Run("driver mutations are rejected", func(t *testing.T) {
		svc, _, _ := newCatalogService()

		_, err := svc.CreateMaterial(ctx, service.MaterialInput{Name: "Песок"}, driver)
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("name is required", func(t *testing.T) {
		svc, _, _ := newCatalogService()
		_, err := svc.CreateMaterial(ctx, service.MaterialInput{Unit: "т"}, manager)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}
