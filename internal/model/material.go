package model

import "time"

type Material struct {
	ID        string
	Name      string
	Unit      string
	Density   *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
