package sheet

import (
	"Reimbursement-Tracker/entities"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type gormStore struct {
	db       *gorm.DB
	workbook string
}

// NewGormStore persists sheets as rows of the sheet_rows table, scoped to one workbook.
func NewGormStore(db *gorm.DB, workbook string) Store {
	return &gormStore{db: db, workbook: workbook}
}

func (s *gormStore) scope(ctx context.Context, sheet string) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&entities.SheetRow{}).
		Where("workbook = ? AND sheet = ?", s.workbook, sheet)
}

func (s *gormStore) EnsureSheet(ctx context.Context, sheet string, header []string) (bool, error) {
	var count int64
	if err := s.scope(ctx, sheet).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	cells, err := encodeCells(header)
	if err != nil {
		return false, err
	}
	row := &entities.SheetRow{
		Workbook: s.workbook,
		Sheet:    sheet,
		Position: 0,
		Cells:    cells,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *gormStore) Rows(ctx context.Context, sheet string) ([][]string, error) {
	var records []*entities.SheetRow
	if err := s.scope(ctx, sheet).Order("position ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrSheetNotFound
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		cells, err := decodeCells(rec.Cells)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", sheet, rec.Position, err)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (s *gormStore) AppendRow(ctx context.Context, sheet string, row []string) error {
	var last struct {
		Count int64
		Max   int
	}
	if err := s.scope(ctx, sheet).
		Select("COUNT(*) AS count, COALESCE(MAX(position), 0) AS max").
		Scan(&last).Error; err != nil {
		return err
	}
	if last.Count == 0 {
		return ErrSheetNotFound
	}

	cells, err := encodeCells(row)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(&entities.SheetRow{
		Workbook: s.workbook,
		Sheet:    sheet,
		Position: last.Max + 1,
		Cells:    cells,
	}).Error
}

func (s *gormStore) UpdateCell(ctx context.Context, sheet string, row, col int, value string) error {
	if col < 0 {
		return ErrInvalidPosition
	}

	var rec entities.SheetRow
	if err := s.scope(ctx, sheet).Where("position = ?", row).First(&rec).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		var count int64
		if err := s.scope(ctx, sheet).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrSheetNotFound
		}
		return ErrRowOutOfRange
	}

	cells, err := decodeCells(rec.Cells)
	if err != nil {
		return err
	}
	encoded, err := encodeCells(setCell(cells, col, value))
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Model(&entities.SheetRow{}).
		Where("id = ?", rec.ID).
		Update("cells", encoded).Error
}

func encodeCells(row []string) (datatypes.JSON, error) {
	if row == nil {
		row = []string{}
	}
	b, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func decodeCells(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var cells []string
	if err := json.Unmarshal(raw, &cells); err != nil {
		return nil, err
	}
	return cells, nil
}
