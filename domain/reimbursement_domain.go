package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessAddReimbursement    = "Reimbursement added successfully"
	MessageSuccessUpdateReimbursement = "Reimbursement updated"
	MessageSuccessLinkReimbursement   = "Linked to BudgetQuest transaction"
	MessageSuccessAttachReceipt       = "Receipt uploaded"
	MessageSuccessInitSheet           = "Reimbursements sheet initialized"
	MessageDuplicateHint              = "This claim appears to already exist. Use skipDuplicateCheck=true to add anyway."

	MessageFailedUploadReceipt = "failed to upload receipt"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusPaid     = "paid"
	StatusRejected = "rejected"
	StatusExpired  = "expired"
	StatusLacking  = "lacking"
	StatusDenied   = "denied"
)

var (
	Categories = []string{"hmo", "business", "client", "personal", "other"}
	Statuses   = []string{StatusPending, StatusApproved, StatusPaid, StatusRejected, StatusExpired, StatusLacking, StatusDenied}
)

func IsCategory(v string) bool { return contains(Categories, v) }

func IsStatus(v string) bool { return contains(Statuses, v) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

type (
	Reimbursement struct {
		ID                  string          `json:"reimbursementId"`
		Category            string          `json:"category"`
		Source              string          `json:"source"`
		BenefitType         string          `json:"benefitType,omitempty"`
		ClaimType           string          `json:"claimType,omitempty"`
		ClaimID             string          `json:"claimId,omitempty"`
		Description         string          `json:"description"`
		AmountClaimed       decimal.Decimal `json:"amountClaimed"`
		AmountApproved      decimal.Decimal `json:"amountApproved"`
		AmountDisapproved   decimal.Decimal `json:"amountDisapproved"`
		Status              string          `json:"status"`
		SubmittedDate       Date            `json:"submittedDate"`
		ApprovedDate        Date            `json:"approvedDate"`
		PaidDate            Date            `json:"paidDate"`
		PurchaseDate        Date            `json:"purchaseDate"`
		LinkedTransactionID string          `json:"linkedTransactionId,omitempty"`
		ReceiptImageURL     string          `json:"receiptImageURL,omitempty"`
		Notes               string          `json:"notes,omitempty"`
		ReceiptNumber       string          `json:"receiptNumber,omitempty"`
		CreatedAt           time.Time       `json:"createdAt"`
		UpdatedAt           time.Time       `json:"updatedAt"`
	}

	// DuplicateCandidate is the subset of an incoming claim the matcher looks at.
	DuplicateCandidate struct {
		ClaimID       string              `json:"claimId"`
		ReceiptNumber string              `json:"receiptNumber"`
		Source        string              `json:"source"`
		Description   string              `json:"description"`
		AmountClaimed decimal.NullDecimal `json:"amountClaimed"`
		Date          Date                `json:"date"`
	}

	DuplicateMatch struct {
		Reimbursement
		MatchRule   string `json:"matchRule"`
		MatchReason string `json:"matchReason"`
	}

	DuplicateCheckResult struct {
		IsDuplicate    bool              `json:"isDuplicate"`
		DuplicateCount int               `json:"duplicateCount"`
		Duplicates     []*DuplicateMatch `json:"duplicates"`
	}

	CreateReimbursementRequest struct {
		Category            string              `json:"category"`
		Source              string              `json:"source"`
		BenefitType         string              `json:"benefitType"`
		ClaimType           string              `json:"claimType"`
		ClaimID             string              `json:"claimId"`
		Description         string              `json:"description"`
		AmountClaimed       decimal.NullDecimal `json:"amountClaimed"`
		AmountApproved      decimal.NullDecimal `json:"amountApproved"`
		AmountDisapproved   decimal.NullDecimal `json:"amountDisapproved"`
		Status              string              `json:"status"`
		Date                Date                `json:"date"`
		SubmittedDate       Date                `json:"submittedDate"`
		ApprovedDate        Date                `json:"approvedDate"`
		PaidDate            Date                `json:"paidDate"`
		LinkedTransactionID string              `json:"linkedTransactionId"`
		ReceiptImageURL     string              `json:"receiptImageURL"`
		Notes               string              `json:"notes"`
		ReceiptNumber       string              `json:"receiptNumber"`
		SkipDuplicateCheck  Flag                `json:"skipDuplicateCheck"`
	}

	CreateReimbursementResponse struct {
		ReimbursementID   string          `json:"reimbursementId"`
		Status            string          `json:"status"`
		Category          string          `json:"category"`
		Source            string          `json:"source"`
		AmountClaimed     decimal.Decimal `json:"amountClaimed"`
		AmountApproved    decimal.Decimal `json:"amountApproved"`
		AmountDisapproved decimal.Decimal `json:"amountDisapproved"`
		ClaimType         *string         `json:"claimType"`
		ClaimID           *string         `json:"claimId"`
		ReceiptNumber     *string         `json:"receiptNumber"`
	}

	UpdateReimbursementRequest struct {
		ReimbursementID   string              `json:"reimbursementId" validate:"required"`
		Status            string              `json:"status"`
		ClaimID           string              `json:"claimId"`
		ClaimType         string              `json:"claimType"`
		BenefitType       string              `json:"benefitType"`
		Description       string              `json:"description"`
		AmountApproved    decimal.NullDecimal `json:"amountApproved"`
		AmountDisapproved decimal.NullDecimal `json:"amountDisapproved"`
		ApprovedDate      Date                `json:"approvedDate"`
		SubmittedDate     Date                `json:"submittedDate"`
		PaidDate          Date                `json:"paidDate"`
		ReceiptNumber     string              `json:"receiptNumber"`
		Notes             string              `json:"notes"`
	}

	UpdateReimbursementResponse struct {
		ReimbursementID string         `json:"reimbursementId"`
		NewStatus       string         `json:"newStatus"`
		UpdatedFields   []string       `json:"updatedFields"`
		SyncResult      map[string]any `json:"syncResult,omitempty"`
		SyncWarning     string         `json:"syncWarning,omitempty"`
	}

	ListReimbursementsRequest struct {
		Category  string    `json:"category"`
		Source    string    `json:"source"`
		Status    StringSet `json:"status"`
		SortBy    string    `json:"sortBy"`
		SortOrder string    `json:"sortOrder"`
		Limit     Number    `json:"limit"`
	}

	ListReimbursementsResponse struct {
		Reimbursements []*Reimbursement `json:"reimbursements"`
		Count          int              `json:"count"`
		TotalCount     int              `json:"totalCount"`
	}

	LinkTransactionRequest struct {
		ReimbursementID string `json:"reimbursementId" validate:"required"`
		TransactionID   string `json:"transactionId" validate:"required"`
	}

	LinkTransactionResponse struct {
		ReimbursementID     string `json:"reimbursementId"`
		LinkedTransactionID string `json:"linkedTransactionId"`
	}

	AttachReceiptResponse struct {
		ReimbursementID string `json:"reimbursementId,omitempty"`
		ReceiptImageURL string `json:"receiptImageURL"`
	}

	InitSheetResponse struct {
		Created bool     `json:"created"`
		Headers []string `json:"headers"`
	}

	SyncNetCostRequest struct {
		TransactionID    string              `json:"transactionId" validate:"required"`
		AmountReimbursed decimal.NullDecimal `json:"amountReimbursed"`
	}

	SummaryRequest struct {
		Category string    `json:"category"`
		Source   string    `json:"source"`
		Status   StringSet `json:"status"`
		DateFrom Date      `json:"dateFrom"`
		DateTo   Date      `json:"dateTo"`
	}

	SummaryTotals struct {
		TotalClaimed  decimal.Decimal `json:"totalClaimed"`
		TotalApproved decimal.Decimal `json:"totalApproved"`
		TotalPaid     decimal.Decimal `json:"totalPaid"`
		TotalPending  decimal.Decimal `json:"totalPending"`
		Count         int             `json:"count"`
	}

	Breakdown struct {
		Claimed  decimal.Decimal `json:"claimed"`
		Approved decimal.Decimal `json:"approved"`
		Paid     decimal.Decimal `json:"paid"`
		Pending  decimal.Decimal `json:"pending"`
		Count    int             `json:"count"`
	}

	CategoryBreakdown struct {
		Category string `json:"category"`
		Breakdown
	}

	SourceBreakdown struct {
		Source string `json:"source"`
		Breakdown
	}

	SummaryResponse struct {
		Summary    SummaryTotals        `json:"summary"`
		ByCategory []*CategoryBreakdown `json:"byCategory"`
		BySource   []*SourceBreakdown   `json:"bySource"`
	}
)

// Candidate extracts the fields the duplicate matcher compares.
func (r CreateReimbursementRequest) Candidate() DuplicateCandidate {
	return DuplicateCandidate{
		ClaimID:       r.ClaimID,
		ReceiptNumber: r.ReceiptNumber,
		Source:        r.Source,
		Description:   r.Description,
		AmountClaimed: r.AmountClaimed,
		Date:          r.Date,
	}
}

// ApprovedValue is the approved amount, falling back to the claimed amount
// when nothing was approved explicitly.
func (r *Reimbursement) ApprovedValue() decimal.Decimal {
	if r.AmountApproved.IsZero() {
		return r.AmountClaimed
	}
	return r.AmountApproved
}

// DuplicateError blocks a create when the matcher found likely duplicates.
type DuplicateError struct {
	Matches []*DuplicateMatch
}

func (e *DuplicateError) Error() string { return ErrDuplicateDetected.Error() }

func (e *DuplicateError) Unwrap() error { return ErrDuplicateDetected }

func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
