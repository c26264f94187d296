package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidInput      = errors.New("invalid input")
	ErrIllegalTransition = errors.New("недопустимый переход статуса")

	// Текст согласован с фронтом и показывается пользователю как есть.
	ErrDeleteForbidden = errors.New("Недостаточно прав для удаления рейса.")
)
