package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Web-A1/hauls-service/internal/model"
)

type PortalRepository struct {
	db *gorm.DB
}

func NewPortalRepository(db *gorm.DB) *PortalRepository {
	return &PortalRepository{db: db}
}

// Upsert перезаписывает токены портала при повторной установке приложения.
func (r *PortalRepository) Upsert(ctx context.Context, portal *model.Portal) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO portals (member_id, domain, access_token, refresh_token, expires_at, installed_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (member_id) DO UPDATE SET
			domain = EXCLUDED.domain,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at
	`,
		portal.MemberID,
		portal.Domain,
		portal.AccessToken,
		portal.RefreshToken,
		portal.ExpiresAt,
		portal.InstalledAt,
		portal.UpdatedAt,
	).Error
}

func (r *PortalRepository) Find(ctx context.Context, memberID string) (*model.Portal, error) {
	var portal model.Portal
	if err := r.db.WithContext(ctx).Raw(`
		SELECT member_id, domain, access_token, refresh_token, expires_at, installed_at, updated_at
		FROM portals
		WHERE member_id = ?
		LIMIT 1
	`, memberID).Scan(&portal).Error; err != nil {
		return nil, err
	}
	if portal.MemberID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &portal, nil
}
