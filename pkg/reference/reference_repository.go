package reference

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/pkg/sheet"
	"context"
)

const SheetName = "ReferenceData"

const (
	colType        = "Type"
	colValue       = "Value"
	colDisplayName = "DisplayName"
	colDescription = "Description"
)

var Header = []string{colType, colValue, colDisplayName, colDescription}

type (
	ReferenceRepository interface {
		// List returns every entry in sheet order. A missing sheet yields sheet.ErrSheetNotFound.
		List(ctx context.Context) ([]*domain.ReferenceEntry, error)
		Append(ctx context.Context, entry *domain.ReferenceEntry) error
		// EnsureSheet creates the sheet (header only) when missing.
		EnsureSheet(ctx context.Context) error
	}

	referenceRepository struct {
		store sheet.Store
	}
)

func NewReferenceRepository(store sheet.Store) ReferenceRepository {
	return &referenceRepository{store: store}
}

func (r *referenceRepository) List(ctx context.Context) ([]*domain.ReferenceEntry, error) {
	table, err := sheet.Load(ctx, r.store, SheetName)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.ReferenceEntry, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		entries = append(entries, &domain.ReferenceEntry{
			Type:        table.Get(i, colType),
			Value:       table.Get(i, colValue),
			DisplayName: table.Get(i, colDisplayName),
			Description: table.Get(i, colDescription),
		})
	}
	return entries, nil
}

func (r *referenceRepository) Append(ctx context.Context, entry *domain.ReferenceEntry) error {
	table, err := sheet.Load(ctx, r.store, SheetName)
	if err != nil {
		return err
	}
	row := table.Build(map[string]string{
		colType:        entry.Type,
		colValue:       entry.Value,
		colDisplayName: entry.DisplayName,
		colDescription: entry.Description,
	})
	return r.store.AppendRow(ctx, SheetName, row)
}

func (r *referenceRepository) EnsureSheet(ctx context.Context) error {
	_, err := r.store.EnsureSheet(ctx, SheetName, Header)
	return err
}
