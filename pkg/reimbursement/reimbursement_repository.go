package reimbursement

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/pkg/sheet"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const SheetName = "Reimbursements"

const (
	colID                  = "ReimbursementID"
	colCategory            = "Category"
	colSource              = "Source"
	colBenefitType         = "BenefitType"
	colClaimType           = "ClaimType"
	colClaimID             = "ClaimID"
	colDescription         = "Description"
	colAmountClaimed       = "AmountClaimed"
	colAmountApproved      = "AmountApproved"
	colAmountDisapproved   = "AmountDisapproved"
	colStatus              = "Status"
	colSubmittedDate       = "SubmittedDate"
	colApprovedDate        = "ApprovedDate"
	colPaidDate            = "PaidDate"
	colPurchaseDate        = "PurchaseDate"
	colLinkedTransactionID = "LinkedTransactionID"
	colReceiptImageURL     = "ReceiptImageURL"
	colNotes               = "Notes"
	colCreatedAt           = "CreatedAt"
	colUpdatedAt           = "UpdatedAt"
	colReceiptNumber       = "ReceiptNumber"
)

// Header is the fixed column layout of the Reimbursements sheet.
var Header = []string{
	colID, colCategory, colSource, colBenefitType, colClaimType, colClaimID,
	colDescription, colAmountClaimed, colAmountApproved, colAmountDisapproved, colStatus,
	colSubmittedDate, colApprovedDate, colPaidDate, colPurchaseDate, colLinkedTransactionID,
	colReceiptImageURL, colNotes, colCreatedAt, colUpdatedAt, colReceiptNumber,
}

type (
	ReimbursementRepository interface {
		EnsureSheet(ctx context.Context) (bool, error)
		// GetAll returns every claim in table order. A missing sheet is an empty list.
		GetAll(ctx context.Context) ([]*domain.Reimbursement, error)
		Create(ctx context.Context, r *domain.Reimbursement) error
		FindByID(ctx context.Context, id string) (*Record, error)
		Update(ctx context.Context, rec *Record, cells ...sheet.Cell) error
	}

	// Record is a claim together with its position in the sheet snapshot it was read from.
	Record struct {
		Reimbursement *domain.Reimbursement

		table *sheet.Table
		row   int
	}

	reimbursementRepository struct {
		store sheet.Store
	}
)

func NewReimbursementRepository(store sheet.Store) ReimbursementRepository {
	return &reimbursementRepository{store: store}
}

func (r *reimbursementRepository) EnsureSheet(ctx context.Context) (bool, error) {
	return r.store.EnsureSheet(ctx, SheetName, Header)
}

func (r *reimbursementRepository) GetAll(ctx context.Context) ([]*domain.Reimbursement, error) {
	table, err := sheet.Load(ctx, r.store, SheetName)
	if errors.Is(err, sheet.ErrSheetNotFound) {
		return []*domain.Reimbursement{}, nil
	}
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Reimbursement, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		result = append(result, decodeRow(table, i))
	}
	return result, nil
}

func (r *reimbursementRepository) Create(ctx context.Context, reimbursement *domain.Reimbursement) error {
	table, err := sheet.Load(ctx, r.store, SheetName)
	if err != nil {
		return err
	}
	return r.store.AppendRow(ctx, SheetName, table.Build(encodeRow(reimbursement)))
}

func (r *reimbursementRepository) FindByID(ctx context.Context, id string) (*Record, error) {
	table, err := sheet.Load(ctx, r.store, SheetName)
	if errors.Is(err, sheet.ErrSheetNotFound) {
		return nil, domain.NewError(domain.ErrNotInitialized, "%s sheet not found", SheetName)
	}
	if err != nil {
		return nil, err
	}

	for i := 0; i < table.Len(); i++ {
		if table.Get(i, colID) == id {
			return &Record{Reimbursement: decodeRow(table, i), table: table, row: i}, nil
		}
	}
	return nil, domain.NotFound("Reimbursement not found: %s", id)
}

func (r *reimbursementRepository) Update(ctx context.Context, rec *Record, cells ...sheet.Cell) error {
	return rec.table.Write(ctx, r.store, rec.row, cells...)
}

func encodeRow(r *domain.Reimbursement) map[string]string {
	return map[string]string{
		colID:                  r.ID,
		colCategory:            r.Category,
		colSource:              r.Source,
		colBenefitType:         r.BenefitType,
		colClaimType:           r.ClaimType,
		colClaimID:             r.ClaimID,
		colDescription:         r.Description,
		colAmountClaimed:       r.AmountClaimed.String(),
		colAmountApproved:      r.AmountApproved.String(),
		colAmountDisapproved:   r.AmountDisapproved.String(),
		colStatus:              r.Status,
		colSubmittedDate:       r.SubmittedDate.String(),
		colApprovedDate:        r.ApprovedDate.String(),
		colPaidDate:            r.PaidDate.String(),
		colPurchaseDate:        r.PurchaseDate.String(),
		colLinkedTransactionID: r.LinkedTransactionID,
		colReceiptImageURL:     r.ReceiptImageURL,
		colNotes:               r.Notes,
		colCreatedAt:           formatTimestamp(r.CreatedAt),
		colUpdatedAt:           formatTimestamp(r.UpdatedAt),
		colReceiptNumber:       r.ReceiptNumber,
	}
}

func decodeRow(t *sheet.Table, i int) *domain.Reimbursement {
	return &domain.Reimbursement{
		ID:                  t.Get(i, colID),
		Category:            t.Get(i, colCategory),
		Source:              t.Get(i, colSource),
		BenefitType:         t.Get(i, colBenefitType),
		ClaimType:           t.Get(i, colClaimType),
		ClaimID:             t.Get(i, colClaimID),
		Description:         t.Get(i, colDescription),
		AmountClaimed:       parseAmount(t.Get(i, colAmountClaimed)),
		AmountApproved:      parseAmount(t.Get(i, colAmountApproved)),
		AmountDisapproved:   parseAmount(t.Get(i, colAmountDisapproved)),
		Status:              t.Get(i, colStatus),
		SubmittedDate:       parseCellDate(t.Get(i, colSubmittedDate)),
		ApprovedDate:        parseCellDate(t.Get(i, colApprovedDate)),
		PaidDate:            parseCellDate(t.Get(i, colPaidDate)),
		PurchaseDate:        parseCellDate(t.Get(i, colPurchaseDate)),
		LinkedTransactionID: t.Get(i, colLinkedTransactionID),
		ReceiptImageURL:     t.Get(i, colReceiptImageURL),
		Notes:               t.Get(i, colNotes),
		CreatedAt:           parseTimestamp(t.Get(i, colCreatedAt)),
		UpdatedAt:           parseTimestamp(t.Get(i, colUpdatedAt)),
		ReceiptNumber:       t.Get(i, colReceiptNumber),
	}
}

// parseAmount reads a stored amount; anything unreadable counts as zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseCellDate(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}
	}
	return d
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(domain.TimestampLayout)
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(domain.TimestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
