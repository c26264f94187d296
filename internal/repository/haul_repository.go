package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Web-A1/hauls-service/internal/model"
)

// createAttempts ограничивает повторы вставки при гонке двух запросов за
// один и тот же sequence внутри сделки.
const createAttempts = 3

type HaulRepository struct {
	db *gorm.DB
}

func NewHaulRepository(db *gorm.DB) *HaulRepository {
	return &HaulRepository{db: db}
}

type haulRow struct {
	ID                  string
	DealID              int64
	ResponsibleID       *int64
	TruckID             *string
	MaterialID          *string
	Sequence            int
	Status              int
	GeneralNotes        *string
	LoadAddressText     string
	LoadAddressURL      *string
	LoadFromCompanyID   *string
	LoadToCompanyID     *string
	LoadPlannedVolume   *float64
	LoadActualVolume    *float64
	LoadDocuments       []byte
	UnloadAddressText   string
	UnloadAddressURL    *string
	UnloadFromCompanyID *string
	UnloadToCompanyID   *string
	UnloadContactName   *string
	UnloadContactPhone  *string
	UnloadAcceptedAt    *time.Time
	UnloadDocuments     []byte
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time
}

const haulColumns = `
	id, deal_id, responsible_id, truck_id, material_id, sequence, status,
	general_notes,
	load_address_text, load_address_url, load_from_company_id,
	load_to_company_id, load_planned_volume, load_actual_volume,
	load_documents,
	unload_address_text, unload_address_url, unload_from_company_id,
	unload_to_company_id, unload_contact_name, unload_contact_phone,
	unload_accepted_at, unload_documents,
	created_at, updated_at, deleted_at
`

// Create вставляет рейс вместе с первой записью журнала статусов одной
// транзакцией. При sequence == 0 номер выделяется из максимума по сделке;
// конфликт уникальности (deal_id, sequence) разрешается повтором всей
// транзакции.
func (r *HaulRepository) Create(ctx context.Context, haul *model.Haul, initial model.StatusEvent) error {
	allocate := haul.Sequence == 0
	for attempt := 0; attempt < createAttempts; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if allocate {
				seq, err := nextSequence(tx, haul.DealID)
				if err != nil {
					return err
				}
				haul.RewriteSequence(seq)
			}
			if err := insertHaul(tx, haul); err != nil {
				return err
			}
			initial.HaulID = haul.ID
			return insertStatusEvent(tx, initial)
		})
		if err == nil {
			return nil
		}
		if allocate && isUniqueViolation(err) {
			continue
		}
		return err
	}
	return fmt.Errorf("sequence allocation conflict for deal %d", haul.DealID)
}

func (r *HaulRepository) Find(ctx context.Context, id string) (*model.Haul, error) {
	var row haulRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+haulColumns+`
		FROM hauls
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return rowToHaul(row)
}

func (r *HaulRepository) FindByDeal(ctx context.Context, dealID int64) ([]model.Haul, error) {
	var rows []haulRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+haulColumns+`
		FROM hauls
		WHERE deal_id = ? AND deleted_at IS NULL
		ORDER BY sequence ASC
	`, dealID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rowsToHauls(rows)
}

func (r *HaulRepository) FindByResponsible(ctx context.Context, responsibleID int64) ([]model.Haul, error) {
	var rows []haulRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+haulColumns+`
		FROM hauls
		WHERE responsible_id = ? AND deleted_at IS NULL
		ORDER BY deal_id ASC, sequence ASC
	`, responsibleID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rowsToHauls(rows)
}

// Save пишет рейс и связанные записи журналов одной транзакцией: либо всё,
// либо ничего.
func (r *HaulRepository) Save(ctx context.Context, haul *model.Haul, statusEvent *model.StatusEvent, changes []model.ChangeEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loadDocs, err := marshalDocuments(haul.Load.Documents)
		if err != nil {
			return err
		}
		unloadDocs, err := marshalDocuments(haul.Unload.Documents)
		if err != nil {
			return err
		}

		result := tx.Exec(`
			UPDATE hauls SET
				responsible_id = ?,
				truck_id = ?,
				material_id = ?,
				sequence = ?,
				status = ?,
				general_notes = ?,
				load_address_text = ?,
				load_address_url = ?,
				load_from_company_id = ?,
				load_to_company_id = ?,
				load_planned_volume = ?,
				load_actual_volume = ?,
				load_documents = ?::jsonb,
				unload_address_text = ?,
				unload_address_url = ?,
				unload_from_company_id = ?,
				unload_to_company_id = ?,
				unload_contact_name = ?,
				unload_contact_phone = ?,
				unload_accepted_at = ?,
				unload_documents = ?::jsonb,
				updated_at = ?,
				deleted_at = ?
			WHERE id = ?
		`,
			haul.ResponsibleID,
			emptyToNil(haul.TruckID),
			emptyToNil(haul.MaterialID),
			haul.Sequence,
			int(haul.Status),
			haul.GeneralNotes,
			haul.Load.AddressText,
			haul.Load.AddressURL,
			haul.Load.FromCompanyID,
			haul.Load.ToCompanyID,
			haul.Load.PlannedVolume,
			haul.Load.ActualVolume,
			loadDocs,
			haul.Unload.AddressText,
			haul.Unload.AddressURL,
			haul.Unload.FromCompanyID,
			haul.Unload.ToCompanyID,
			haul.Unload.ContactName,
			haul.Unload.ContactPhone,
			haul.Unload.AcceptedAt,
			unloadDocs,
			haul.UpdatedAt,
			haul.DeletedAt,
			haul.ID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if statusEvent != nil {
			if err := insertStatusEvent(tx, *statusEvent); err != nil {
				return err
			}
		}
		for _, change := range changes {
			if err := insertChangeEvent(tx, change); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *HaulRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM hauls WHERE id = ?`, id).Error
}

func (r *HaulRepository) ListStatusEvents(ctx context.Context, haulID string) ([]model.StatusEvent, error) {
	var rows []struct {
		ID        int64
		HaulID    string
		Status    int
		ChangedBy *int64
		CreatedAt time.Time
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, haul_id, status, changed_by, created_at
		FROM haul_status_history
		WHERE haul_id = ?
		ORDER BY created_at ASC, id ASC
	`, haulID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]model.StatusEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, model.StatusEvent{
			ID:        row.ID,
			HaulID:    row.HaulID,
			Status:    model.HaulStatus(row.Status),
			ChangedBy: row.ChangedBy,
			CreatedAt: row.CreatedAt,
		})
	}
	return events, nil
}

func (r *HaulRepository) ListChangeEvents(ctx context.Context, haulID string) ([]model.ChangeEvent, error) {
	var rows []model.ChangeEvent
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, haul_id, field, old_value, new_value, actor_id, actor_name,
			actor_role, created_at
		FROM haul_change_history
		WHERE haul_id = ?
		ORDER BY created_at ASC, id ASC
	`, haulID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func nextSequence(tx *gorm.DB, dealID int64) (int, error) {
	var seq int
	if err := tx.Raw(`
		SELECT COALESCE(MAX(sequence), 0) + 1
		FROM hauls
		WHERE deal_id = ?
	`, dealID).Scan(&seq).Error; err != nil {
		return 0, err
	}
	return seq, nil
}

func insertHaul(tx *gorm.DB, haul *model.Haul) error {
	loadDocs, err := marshalDocuments(haul.Load.Documents)
	if err != nil {
		return err
	}
	unloadDocs, err := marshalDocuments(haul.Unload.Documents)
	if err != nil {
		return err
	}

	return tx.Exec(`
		INSERT INTO hauls (
			id, deal_id, responsible_id, truck_id, material_id, sequence,
			status, general_notes,
			load_address_text, load_address_url, load_from_company_id,
			load_to_company_id, load_planned_volume, load_actual_volume,
			load_documents,
			unload_address_text, unload_address_url, unload_from_company_id,
			unload_to_company_id, unload_contact_name, unload_contact_phone,
			unload_accepted_at, unload_documents,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?::jsonb, ?, ?, ?, ?, ?, ?, ?, ?::jsonb, ?, ?)
	`,
		haul.ID,
		haul.DealID,
		haul.ResponsibleID,
		emptyToNil(haul.TruckID),
		emptyToNil(haul.MaterialID),
		haul.Sequence,
		int(haul.Status),
		haul.GeneralNotes,
		haul.Load.AddressText,
		haul.Load.AddressURL,
		haul.Load.FromCompanyID,
		haul.Load.ToCompanyID,
		haul.Load.PlannedVolume,
		haul.Load.ActualVolume,
		loadDocs,
		haul.Unload.AddressText,
		haul.Unload.AddressURL,
		haul.Unload.FromCompanyID,
		haul.Unload.ToCompanyID,
		haul.Unload.ContactName,
		haul.Unload.ContactPhone,
		haul.Unload.AcceptedAt,
		unloadDocs,
		haul.CreatedAt,
		haul.UpdatedAt,
	).Error
}

func insertStatusEvent(tx *gorm.DB, event model.StatusEvent) error {
	return tx.Exec(`
		INSERT INTO haul_status_history (haul_id, status, changed_by, created_at)
		VALUES (?, ?, ?, ?)
	`, event.HaulID, int(event.Status), event.ChangedBy, event.CreatedAt).Error
}

func insertChangeEvent(tx *gorm.DB, change model.ChangeEvent) error {
	return tx.Exec(`
		INSERT INTO haul_change_history (
			haul_id, field, old_value, new_value,
			actor_id, actor_name, actor_role, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		change.HaulID,
		change.Field,
		change.OldValue,
		change.NewValue,
		change.ActorID,
		change.ActorName,
		change.ActorRole,
		change.CreatedAt,
	).Error
}

func rowToHaul(row haulRow) (*model.Haul, error) {
	loadDocs, err := unmarshalDocuments(row.LoadDocuments)
	if err != nil {
		return nil, err
	}
	unloadDocs, err := unmarshalDocuments(row.UnloadDocuments)
	if err != nil {
		return nil, err
	}

	return &model.Haul{
		ID:            row.ID,
		DealID:        row.DealID,
		ResponsibleID: row.ResponsibleID,
		TruckID:       nilToEmpty(row.TruckID),
		MaterialID:    nilToEmpty(row.MaterialID),
		Sequence:      row.Sequence,
		Status:        model.HaulStatus(row.Status),
		GeneralNotes:  row.GeneralNotes,
		Load: model.LoadLeg{
			AddressText:   row.LoadAddressText,
			AddressURL:    row.LoadAddressURL,
			FromCompanyID: row.LoadFromCompanyID,
			ToCompanyID:   row.LoadToCompanyID,
			PlannedVolume: row.LoadPlannedVolume,
			ActualVolume:  row.LoadActualVolume,
			Documents:     loadDocs,
		},
		Unload: model.UnloadLeg{
			AddressText:   row.UnloadAddressText,
			AddressURL:    row.UnloadAddressURL,
			FromCompanyID: row.UnloadFromCompanyID,
			ToCompanyID:   row.UnloadToCompanyID,
			ContactName:   row.UnloadContactName,
			ContactPhone:  row.UnloadContactPhone,
			AcceptedAt:    row.UnloadAcceptedAt,
			Documents:     unloadDocs,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		DeletedAt: row.DeletedAt,
	}, nil
}

func rowsToHauls(rows []haulRow) ([]model.Haul, error) {
	hauls := make([]model.Haul, 0, len(rows))
	for _, row := range rows {
		haul, err := rowToHaul(row)
		if err != nil {
			return nil, err
		}
		hauls = append(hauls, *haul)
	}
	return hauls, nil
}

func marshalDocuments(docs []string) (string, error) {
	if docs == nil {
		docs = []string{}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalDocuments(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var docs []string
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs, nil
}

func emptyToNil(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func nilToEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
