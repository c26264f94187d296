package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Web-A1/hauls-service/internal/model"
)

type TruckRepository struct {
	db *gorm.DB
}

func NewTruckRepository(db *gorm.DB) *TruckRepository {
	return &TruckRepository{db: db}
}

func (r *TruckRepository) Create(ctx context.Context, truck *model.Truck) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO trucks (id, name, plate_number, body_volume_m3, default_driver_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		truck.ID,
		truck.Name,
		truck.PlateNumber,
		truck.BodyVolumeM3,
		truck.DefaultDriverID,
		truck.CreatedAt,
		truck.UpdatedAt,
	).Error
}

func (r *TruckRepository) Find(ctx context.Context, id string) (*model.Truck, error) {
	var truck model.Truck
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, plate_number, body_volume_m3, default_driver_id, created_at, updated_at
		FROM trucks
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&truck).Error; err != nil {
		return nil, err
	}
	if truck.ID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &truck, nil
}

func (r *TruckRepository) List(ctx context.Context) ([]model.Truck, error) {
	var trucks []model.Truck
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, plate_number, body_volume_m3, default_driver_id, created_at, updated_at
		FROM trucks
		ORDER BY name ASC
	`).Scan(&trucks).Error; err != nil {
		return nil, err
	}
	return trucks, nil
}

func (r *TruckRepository) Save(ctx context.Context, truck *model.Truck) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE trucks SET
			name = ?,
			plate_number = ?,
			body_volume_m3 = ?,
			default_driver_id = ?,
			updated_at = ?
		WHERE id = ?
	`,
		truck.Name,
		truck.PlateNumber,
		truck.BodyVolumeM3,
		truck.DefaultDriverID,
		truck.UpdatedAt,
		truck.ID,
	).Error
}

func (r *TruckRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM trucks WHERE id = ?`, id).Error
}
