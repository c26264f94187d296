package model

import "time"

// StatusEvent — запись в журнале смен статуса рейса.
type StatusEvent struct {
	ID        int64
	HaulID    string
	Status    HaulStatus
	ChangedBy *int64
	CreatedAt time.Time
}

// ChangeEvent — запись аудита изменения отдельного поля рейса.
type ChangeEvent struct {
	ID        int64
	HaulID    string
	Field     string
	OldValue  *string
	NewValue  *string
	ActorID   *int64
	ActorName *string
	ActorRole string
	CreatedAt time.Time
}
