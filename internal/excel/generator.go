package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Web-A1/hauls-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate собирает реестр рейсов сделки: сводка сверху, таблица рейсов ниже.
func (g *Generator) Generate(register model.DealRegister) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Реестр"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Сделка")
	set("B1", register.DealID)
	set("A2", "Сформирован")
	set("B2", formatDateTime(register.GeneratedAt))
	set("A3", "Количество рейсов")
	set("B3", register.TotalHauls)
	set("A4", "Плановый объем, м3")
	set("B4", formatVolume(register.TotalPlannedVolume))
	set("A5", "Фактический объем, м3")
	set("B5", formatVolume(register.TotalActualVolume))

	tableRow := 7
	headers := []string{
		"№",
		"Статус",
		"Машина",
		"Материал",
		"Водитель (ID)",
		"Адрес погрузки",
		"Адрес выгрузки",
		"План, м3",
		"Факт, м3",
		"Принято",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, row := range register.Rows {
		line := tableRow + 1 + i
		set(fmt.Sprintf("A%d", line), row.Sequence)
		set(fmt.Sprintf("B%d", line), row.StatusLabel)
		set(fmt.Sprintf("C%d", line), formatString(row.TruckName))
		set(fmt.Sprintf("D%d", line), formatString(row.MaterialName))
		set(fmt.Sprintf("E%d", line), formatInt64(row.ResponsibleID))
		set(fmt.Sprintf("F%d", line), row.LoadAddress)
		set(fmt.Sprintf("G%d", line), row.UnloadAddress)
		set(fmt.Sprintf("H%d", line), formatFloat(row.PlannedVolume))
		set(fmt.Sprintf("I%d", line), formatFloat(row.ActualVolume))
		set(fmt.Sprintf("J%d", line), formatTimePtr(row.AcceptedAt))
	}

	_ = file.SetColWidth(sheet, "A", "A", 6)
	_ = file.SetColWidth(sheet, "B", "B", 14)
	_ = file.SetColWidth(sheet, "C", "D", 24)
	_ = file.SetColWidth(sheet, "E", "E", 14)
	_ = file.SetColWidth(sheet, "F", "G", 40)
	_ = file.SetColWidth(sheet, "H", "I", 12)
	_ = file.SetColWidth(sheet, "J", "J", 20)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDateTime(*t)
}

func formatString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatInt64(value *int64) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%d", *value)
}

func formatFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%.3f", *value)
}

func formatVolume(value float64) string {
	return fmt.Sprintf("%.3f", value)
}
