package model

import "time"

// Portal — установка приложения на портале Bitrix24. Храним только токены,
// семантика OAuth остаётся на стороне платформы.
type Portal struct {
	MemberID     string
	Domain       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	InstalledAt  time.Time
	UpdatedAt    time.Time
}
