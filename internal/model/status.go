package model

import "strings"

// HaulStatus описывает стадию жизненного цикла рейса.
type HaulStatus int

const (
	StatusPreparation HaulStatus = iota
	StatusInProgress
	StatusLoaded
	StatusUnloaded
	StatusVerified
)

const statusLabelUnknown = "Неизвестно"

var statusLabels = map[HaulStatus]string{
	StatusPreparation: "Подготовка",
	StatusInProgress:  "В работе",
	StatusLoaded:      "Загружен",
	StatusUnloaded:    "Разгружен",
	StatusVerified:    "Проверен",
}

func (s HaulStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabelUnknown
}

// SanitizeStatus приводит произвольное число к допустимому диапазону статусов.
func SanitizeStatus(raw int) HaulStatus {
	if raw < int(StatusPreparation) {
		return StatusPreparation
	}
	if raw > int(StatusVerified) {
		return StatusVerified
	}
	return HaulStatus(raw)
}

// IsDriverVisible отмечает статусы, доступные водителю в его списке рейсов.
func (s HaulStatus) IsDriverVisible() bool {
	switch s {
	case StatusInProgress, StatusLoaded, StatusUnloaded:
		return true
	default:
		return false
	}
}

// CanTransitionTo проверяет допустимость перехода статуса для роли.
// Офисные роли (и любые неопознанные) не ограничены; водитель двигается
// только внутри активного окна: В работе -> Загружен -> Разгружен, с откатом
// Загружен -> В работе. Подготовку и проверку выполняет только офис.
func (s HaulStatus) CanTransitionTo(next HaulStatus, role string) bool {
	if s == next {
		return true
	}
	if strings.ToLower(role) != RoleDriver {
		return next >= StatusPreparation && next <= StatusVerified
	}
	if !next.IsDriverVisible() {
		return false
	}
	switch s {
	case StatusInProgress:
		return next == StatusLoaded
	case StatusLoaded:
		return next == StatusInProgress || next == StatusUnloaded
	default:
		return false
	}
}
