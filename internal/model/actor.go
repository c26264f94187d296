package model

import "strings"

const (
	RoleAdmin   = "admin"
	RoleDriver  = "driver"
	RoleManager = "manager"
)

// Actor идентифицирует вызывающего пользователя в рамках одного запроса.
// Всегда передаётся в сервис явным аргументом, без глобального состояния.
type Actor struct {
	ID   *int64
	Name *string
	Role string
}

func (a Actor) IsAdmin() bool {
	return strings.ToLower(a.Role) == RoleAdmin
}

func (a Actor) IsDriver() bool {
	return strings.ToLower(a.Role) == RoleDriver
}

// Owns сообщает, закреплён ли рейс за этим пользователем.
func (a Actor) Owns(h *Haul) bool {
	if a.ID == nil || h == nil || h.ResponsibleID == nil {
		return false
	}
	return *a.ID == *h.ResponsibleID
}

// NormalizeRole принимает только известные роли; всё остальное заменяется
// на fallback.
func NormalizeRole(raw, fallback string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleDriver:
		return RoleDriver
	case RoleManager:
		return RoleManager
	default:
		return fallback
	}
}
