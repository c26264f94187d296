package model

import "time"

// DealRegister — реестр рейсов одной сделки для выгрузки в Excel.
type DealRegister struct {
	DealID             int64
	GeneratedAt        time.Time
	TotalHauls         int
	TotalPlannedVolume float64
	TotalActualVolume  float64
	Rows               []RegisterRow
}

type RegisterRow struct {
	Sequence      int
	StatusLabel   string
	TruckName     *string
	MaterialName  *string
	ResponsibleID *int64
	LoadAddress   string
	UnloadAddress string
	PlannedVolume *float64
	ActualVolume  *float64
	AcceptedAt    *time.Time
}

// WaybillDocument — данные печатной формы рейса (транспортная накладная).
type WaybillDocument struct {
	Haul         Haul
	TruckName    *string
	TruckPlate   *string
	MaterialName *string
	MaterialUnit *string
}
