package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS portals (
		member_id VARCHAR(64) PRIMARY KEY,
		domain VARCHAR(255) NOT NULL,
		access_token TEXT NOT NULL,
		refresh_token TEXT NOT NULL DEFAULT '',
		expires_at TIMESTAMPTZ NOT NULL,
		installed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS trucks (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		plate_number VARCHAR(32) NOT NULL DEFAULT '',
		body_volume_m3 NUMERIC(10,3),
		default_driver_id BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS materials (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		unit VARCHAR(32) NOT NULL DEFAULT '',
		density NUMERIC(10,3),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS hauls (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		deal_id BIGINT NOT NULL,
		responsible_id BIGINT,
		truck_id UUID REFERENCES trucks(id) ON DELETE SET NULL,
		material_id UUID REFERENCES materials(id) ON DELETE SET NULL,
		sequence INT NOT NULL,
		status SMALLINT NOT NULL DEFAULT 0 CHECK (status BETWEEN 0 AND 4),
		general_notes TEXT,
		load_address_text TEXT NOT NULL,
		load_address_url TEXT,
		load_from_company_id VARCHAR(64),
		load_to_company_id VARCHAR(64),
		load_planned_volume NUMERIC(12,3),
		load_actual_volume NUMERIC(12,3),
		load_documents JSONB NOT NULL DEFAULT '[]',
		unload_address_text TEXT NOT NULL,
		unload_address_url TEXT,
		unload_from_company_id VARCHAR(64),
		unload_to_company_id VARCHAR(64),
		unload_contact_name VARCHAR(255),
		unload_contact_phone VARCHAR(64),
		unload_accepted_at TIMESTAMPTZ,
		unload_documents JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	);`,
	// Уникальность закрывает гонку выделения sequence при параллельном
	// создании рейсов одной сделки; репозиторий повторяет транзакцию.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_hauls_deal_sequence ON hauls (deal_id, sequence);`,
	`CREATE INDEX IF NOT EXISTS idx_hauls_deal_id ON hauls (deal_id);`,
	`CREATE INDEX IF NOT EXISTS idx_hauls_responsible_id ON hauls (responsible_id) WHERE responsible_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_hauls_status ON hauls (status);`,
	`CREATE TABLE IF NOT EXISTS haul_status_history (
		id BIGSERIAL PRIMARY KEY,
		haul_id UUID NOT NULL REFERENCES hauls(id) ON DELETE CASCADE,
		status SMALLINT NOT NULL,
		changed_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_haul_status_history_haul_id ON haul_status_history (haul_id);`,
	`CREATE TABLE IF NOT EXISTS haul_change_history (
		id BIGSERIAL PRIMARY KEY,
		haul_id UUID NOT NULL REFERENCES hauls(id) ON DELETE CASCADE,
		field VARCHAR(64) NOT NULL,
		old_value TEXT,
		new_value TEXT,
		actor_id BIGINT,
		actor_name VARCHAR(255),
		actor_role VARCHAR(16) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_haul_change_history_haul_id ON haul_change_history (haul_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
