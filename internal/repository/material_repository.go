package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Web-A1/hauls-service/internal/model"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO materials (id, name, unit, density, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		material.ID,
		material.Name,
		material.Unit,
		material.Density,
		material.CreatedAt,
		material.UpdatedAt,
	).Error
}

func (r *MaterialRepository) Find(ctx context.Context, id string) (*model.Material, error) {
	var material model.Material
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, unit, density, created_at, updated_at
		FROM materials
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&material).Error; err != nil {
		return nil, err
	}
	if material.ID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &material, nil
}

func (r *MaterialRepository) List(ctx context.Context) ([]model.Material, error) {
	var materials []model.Material
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, unit, density, created_at, updated_at
		FROM materials
		ORDER BY name ASC
	`).Scan(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *MaterialRepository) Save(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE materials SET
			name = ?,
			unit = ?,
			density = ?,
			updated_at = ?
		WHERE id = ?
	`,
		material.Name,
		material.Unit,
		material.Density,
		material.UpdatedAt,
		material.ID,
	).Error
}

func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM materials WHERE id = ?`, id).Error
}
