package excel_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Web-A1/hauls-service/internal/excel"
	"github.com/Web-A1/hauls-service/internal/model"
)

func TestGenerate(t *testing.T) {
	truck := "КамАЗ 65115"
	material := "Песок"
	planned := 12.0
	actual := 11.5
	accepted := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	register := model.DealRegister{
		DealID:             101,
		GeneratedAt:        time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
		TotalHauls:         2,
		TotalPlannedVolume: 24,
		TotalActualVolume:  11.5,
		Rows: []model.RegisterRow{
			{
				Sequence:      1,
				StatusLabel:   "Проверен",
				TruckName:     &truck,
				MaterialName:  &material,
				LoadAddress:   "Карьер №3",
				UnloadAddress: "Объект на Ленина, 1",
				PlannedVolume: &planned,
				ActualVolume:  &actual,
				AcceptedAt:    &accepted,
			},
			{
				Sequence:      2,
				StatusLabel:   "Подготовка",
				LoadAddress:   "Карьер №3",
				UnloadAddress: "Объект на Ленина, 1",
				PlannedVolume: &planned,
			},
		},
	}

	content, err := excel.NewGenerator().Generate(register)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	sheet := "Реестр"
	assert.Contains(t, file.GetSheetList(), sheet)

	cell := func(ref string) string {
		value, err := file.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return value
	}

	assert.Equal(t, "Сделка", cell("A1"))
	assert.Equal(t, "101", cell("B1"))
	assert.Equal(t, "2", cell("B3"))
	assert.Equal(t, "24.000", cell("B4"))

	assert.Equal(t, "№", cell("A7"))
	assert.Equal(t, "Статус", cell("B7"))

	assert.Equal(t, "1", cell("A8"))
	assert.Equal(t, "Проверен", cell("B8"))
	assert.Equal(t, "КамАЗ 65115", cell("C8"))
	assert.Equal(t, "Песок", cell("D8"))
	assert.Equal(t, "11.500", cell("I8"))
	assert.Equal(t, "2026-03-14 15:30:00", cell("J8"))

	assert.Equal(t, "Подготовка", cell("B9"))
	assert.Equal(t, "", cell("C9"))
	assert.Equal(t, "", cell("I9"))
}

func TestGenerateEmptyRegister(t *testing.T) {
	content, err := excel.NewGenerator().Generate(model.DealRegister{DealID: 5})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	value, err := file.GetCellValue("Реестр", "B3")
	require.NoError(t, err)
	assert.Equal(t, "0", value)
}
