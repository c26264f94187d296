package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Web-A1/hauls-service/internal/model"
)

type Generator struct {
	fontName string
	fontData []byte
}

// NewGenerator читает UTF-8 шрифт с диска: кириллица в накладной без него
// не печатается.
func NewGenerator(fontPath string) (*Generator, error) {
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf font: %w", err)
	}
	if len(fontData) == 0 {
		return nil, fmt.Errorf("font data is empty")
	}
	return &Generator{fontName: "NotoSans", fontData: fontData}, nil
}

// Generate печатает транспортную накладную по рейсу.
func (g *Generator) Generate(doc model.WaybillDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.AddUTF8FontFromBytes(g.fontName, "", g.fontData)
	pdf.AddUTF8FontFromBytes(g.fontName, "B", g.fontData)

	haul := doc.Haul

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Транспортная накладная", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Сделка № %d, рейс № %d", haul.DealID, haul.Sequence), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Статус: %s", haul.Status.Label()), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Перевозка", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	infoLines := []string{
		fmt.Sprintf("Машина: %s", safePtr(doc.TruckName)),
		fmt.Sprintf("Гос. номер: %s", safePtr(doc.TruckPlate)),
		fmt.Sprintf("Материал: %s", safePtr(doc.MaterialName)),
		fmt.Sprintf("Водитель (ID): %s", formatResponsible(haul.ResponsibleID)),
	}
	for _, line := range infoLines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
	pdf.Ln(2)

	addLegBlock(pdf, g.fontName, "Погрузка", haul.Load.AddressText, legDetails{
		companyFrom: haul.Load.FromCompanyID,
		companyTo:   haul.Load.ToCompanyID,
		plannedM3:   haul.Load.PlannedVolume,
		actualM3:    haul.Load.ActualVolume,
		documents:   haul.Load.Documents,
	})
	pdf.Ln(2)
	addLegBlock(pdf, g.fontName, "Выгрузка", haul.Unload.AddressText, legDetails{
		companyFrom: haul.Unload.FromCompanyID,
		companyTo:   haul.Unload.ToCompanyID,
		contact:     formatContact(haul.Unload.ContactName, haul.Unload.ContactPhone),
		acceptedAt:  haul.Unload.AcceptedAt,
		documents:   haul.Unload.Documents,
	})

	if haul.GeneralNotes != nil && strings.TrimSpace(*haul.GeneralNotes) != "" {
		pdf.Ln(2)
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "Примечания", "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		pdf.MultiCell(0, 5, *haul.GeneralNotes, "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Подписи", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, "Отправитель: ______________________", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Водитель: ______________________", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Получатель: ______________________", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type legDetails struct {
	companyFrom *string
	companyTo   *string
	plannedM3   *float64
	actualM3    *float64
	contact     string
	acceptedAt  *time.Time
	documents   []string
}

func addLegBlock(pdf *gofpdf.Fpdf, fontName, title, address string, details legDetails) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)

	pdf.MultiCell(0, 5, fmt.Sprintf("Адрес: %s", safeValue(address)), "", "L", false)
	if details.companyFrom != nil || details.companyTo != nil {
		pdf.MultiCell(0, 5, fmt.Sprintf("Компании: %s — %s", safePtr(details.companyFrom), safePtr(details.companyTo)), "", "L", false)
	}
	if details.plannedM3 != nil {
		pdf.MultiCell(0, 5, fmt.Sprintf("Объем план: %.3f м³", *details.plannedM3), "", "L", false)
	}
	if details.actualM3 != nil {
		pdf.MultiCell(0, 5, fmt.Sprintf("Объем факт: %.3f м³", *details.actualM3), "", "L", false)
	}
	if details.contact != "" {
		pdf.MultiCell(0, 5, fmt.Sprintf("Контакт: %s", details.contact), "", "L", false)
	}
	if details.acceptedAt != nil {
		pdf.MultiCell(0, 5, fmt.Sprintf("Принято: %s", details.acceptedAt.Format("02.01.2006 15:04")), "", "L", false)
	}
	if len(details.documents) > 0 {
		pdf.MultiCell(0, 5, fmt.Sprintf("Документы: %s", strings.Join(details.documents, ", ")), "", "L", false)
	}
}

func formatContact(name, phone *string) string {
	parts := make([]string, 0, 2)
	if name != nil && strings.TrimSpace(*name) != "" {
		parts = append(parts, *name)
	}
	if phone != nil && strings.TrimSpace(*phone) != "" {
		parts = append(parts, *phone)
	}
	return strings.Join(parts, ", ")
}

func formatResponsible(id *int64) string {
	if id == nil {
		return "—"
	}
	return fmt.Sprintf("%d", *id)
}

func safePtr(value *string) string {
	if value == nil {
		return "—"
	}
	return safeValue(*value)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}
