package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Web-A1/hauls-service/internal/model"
)

type ExcelGenerator interface {
	Generate(register model.DealRegister) ([]byte, error)
}

type WaybillGenerator interface {
	Generate(doc model.WaybillDocument) ([]byte, error)
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// ExportService собирает печатные формы: реестр рейсов сделки (xlsx) и
// транспортную накладную рейса (pdf).
type ExportService struct {
	hauls     HaulRepository
	trucks    TruckRepository
	materials MaterialRepository
	excel     ExcelGenerator
	waybill   WaybillGenerator
	now       func() time.Time
}

func NewExportService(
	hauls HaulRepository,
	trucks TruckRepository,
	materials MaterialRepository,
	excel ExcelGenerator,
	waybill WaybillGenerator,
) *ExportService {
	return &ExportService{
		hauls:     hauls,
		trucks:    trucks,
		materials: materials,
		excel:     excel,
		waybill:   waybill,
		now:       time.Now,
	}
}

func (s *ExportService) DealRegister(ctx context.Context, dealID int64, actor model.Actor) (*ExportResult, error) {
	if actor.IsDriver() {
		return nil, ErrPermissionDenied
	}
	if dealID <= 0 {
		return nil, fmt.Errorf("%w: deal_id is required", ErrInvalidInput)
	}

	hauls, err := s.hauls.FindByDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}

	register := model.DealRegister{
		DealID:      dealID,
		GeneratedAt: s.now(),
		TotalHauls:  len(hauls),
		Rows:        make([]model.RegisterRow, 0, len(hauls)),
	}
	for _, haul := range hauls {
		truck, material := s.lookupRefs(ctx, haul)
		row := model.RegisterRow{
			Sequence:      haul.Sequence,
			StatusLabel:   haul.Status.Label(),
			ResponsibleID: haul.ResponsibleID,
			LoadAddress:   haul.Load.AddressText,
			UnloadAddress: haul.Unload.AddressText,
			PlannedVolume: haul.Load.PlannedVolume,
			ActualVolume:  haul.Load.ActualVolume,
			AcceptedAt:    haul.Unload.AcceptedAt,
		}
		if truck != nil {
			row.TruckName = &truck.Name
		}
		if material != nil {
			row.MaterialName = &material.Name
		}
		if haul.Load.PlannedVolume != nil {
			register.TotalPlannedVolume += *haul.Load.PlannedVolume
		}
		if haul.Load.ActualVolume != nil {
			register.TotalActualVolume += *haul.Load.ActualVolume
		}
		register.Rows = append(register.Rows, row)
	}

	content, err := s.excel.Generate(register)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("hauls-deal-%d-%s.xlsx", dealID, s.now().Format("20060102"))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

func (s *ExportService) Waybill(ctx context.Context, haulID string) (*ExportResult, error) {
	haul, err := s.hauls.Find(ctx, haulID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if haul.IsDeleted() {
		return nil, ErrNotFound
	}

	doc := model.WaybillDocument{Haul: *haul}
	truck, material := s.lookupRefs(ctx, *haul)
	if truck != nil {
		doc.TruckName = &truck.Name
		doc.TruckPlate = &truck.PlateNumber
	}
	if material != nil {
		doc.MaterialName = &material.Name
		doc.MaterialUnit = &material.Unit
	}

	content, err := s.waybill.Generate(doc)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("waybill-%d-%d.pdf", haul.DealID, haul.Sequence)
	return &ExportResult{FileName: fileName, Content: content}, nil
}

// lookupRefs терпит отсутствие справочных записей: реестр и накладная
// печатаются и с пустыми колонками.
func (s *ExportService) lookupRefs(ctx context.Context, haul model.Haul) (*model.Truck, *model.Material) {
	var truck *model.Truck
	var material *model.Material
	if haul.TruckID != "" {
		if found, err := s.trucks.Find(ctx, haul.TruckID); err == nil {
			truck = found
		}
	}
	if haul.MaterialID != "" {
		if found, err := s.materials.Find(ctx, haul.MaterialID); err == nil {
			material = found
		}
	}
	return truck, material
}
