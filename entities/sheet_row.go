package entities

import (
	"time"

	"gorm.io/datatypes"
)

type Timestamp struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SheetRow is one spreadsheet row. Position 0 is the header row.
type SheetRow struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	Workbook string         `gorm:"uniqueIndex:idx_sheet_rows_position;not null" json:"workbook"`
	Sheet    string         `gorm:"uniqueIndex:idx_sheet_rows_position;not null" json:"sheet"`
	Position int            `gorm:"uniqueIndex:idx_sheet_rows_position;not null" json:"position"`
	Cells    datatypes.JSON `json:"cells"`

	Timestamp
}
