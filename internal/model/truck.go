package model

import "time"

type Truck struct {
	ID              string
	Name            string
	PlateNumber     string
	BodyVolumeM3    *float64
	DefaultDriverID *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
