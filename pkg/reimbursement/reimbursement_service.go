package reimbursement

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/internal/metrics"
	"Reimbursement-Tracker/pkg/reference"
	"Reimbursement-Tracker/pkg/sheet"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const DefaultPageSize = 20

type (
	// Syncer pushes the reimbursed amount of a paid claim to the linked budgeting transaction.
	Syncer interface {
		Configured() bool
		SyncNetCost(ctx context.Context, transactionID string, amountReimbursed decimal.Decimal) (map[string]any, error)
	}

	// Notifier announces a claim that was just marked paid.
	Notifier interface {
		NotifyPaid(ctx context.Context, r *domain.Reimbursement) error
	}

	Options struct {
		PageSize int
		Syncer   Syncer
		Notifier Notifier
		Now      func() time.Time
	}

	ReimbursementService interface {
		InitializeSheet(ctx context.Context) (*domain.InitSheetResponse, error)
		Create(ctx context.Context, req domain.CreateReimbursementRequest) (*domain.CreateReimbursementResponse, error)
		CheckDuplicate(ctx context.Context, candidate domain.DuplicateCandidate) (*domain.DuplicateCheckResult, error)
		List(ctx context.Context, req domain.ListReimbursementsRequest) (*domain.ListReimbursementsResponse, error)
		Update(ctx context.Context, req domain.UpdateReimbursementRequest) (*domain.UpdateReimbursementResponse, error)
		Summarize(ctx context.Context, req domain.SummaryRequest) (*domain.SummaryResponse, error)
		Link(ctx context.Context, req domain.LinkTransactionRequest) (*domain.LinkTransactionResponse, error)
		AttachReceipt(ctx context.Context, reimbursementID, url string) (*domain.AttachReceiptResponse, error)
		SyncNetCost(ctx context.Context, req domain.SyncNetCostRequest) (map[string]any, error)
	}

	reimbursementService struct {
		reimbursementRepository ReimbursementRepository
		referenceService        reference.ReferenceService
		syncer                  Syncer
		notifier                Notifier
		pageSize                int
		now                     func() time.Time
		log                     logrus.FieldLogger
	}
)

func NewReimbursementService(
	reimbursementRepository ReimbursementRepository,
	referenceService reference.ReferenceService,
	opts Options,
	log logrus.FieldLogger,
) ReimbursementService {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &reimbursementService{
		reimbursementRepository: reimbursementRepository,
		referenceService:        referenceService,
		syncer:                  opts.Syncer,
		notifier:                opts.Notifier,
		pageSize:                opts.PageSize,
		now:                     opts.Now,
		log:                     log.WithField("component", "reimbursement"),
	}
}

func (s *reimbursementService) InitializeSheet(ctx context.Context) (*domain.InitSheetResponse, error) {
	created, err := s.reimbursementRepository.EnsureSheet(ctx)
	if err != nil {
		return nil, fmt.Errorf("create reimbursements sheet: %w", err)
	}
	if created {
		s.log.Info("reimbursements sheet created")
	}
	return &domain.InitSheetResponse{Created: created, Headers: Header}, nil
}

func (s *reimbursementService) CheckDuplicate(ctx context.Context, candidate domain.DuplicateCandidate) (*domain.DuplicateCheckResult, error) {
	existing, err := s.reimbursementRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read reimbursements: %w", err)
	}

	matches := FindDuplicates(candidate, existing)
	return &domain.DuplicateCheckResult{
		IsDuplicate:    len(matches) > 0,
		DuplicateCount: len(matches),
		Duplicates:     matches,
	}, nil
}

func (s *reimbursementService) Create(ctx context.Context, req domain.CreateReimbursementRequest) (*domain.CreateReimbursementResponse, error) {
	if _, err := s.InitializeSheet(ctx); err != nil {
		return nil, err
	}

	if !req.SkipDuplicateCheck {
		check, err := s.CheckDuplicate(ctx, req.Candidate())
		if err != nil {
			return nil, err
		}
		if check.IsDuplicate {
			for _, m := range check.Duplicates {
				metrics.DuplicatesDetected.WithLabelValues(m.MatchRule).Inc()
			}
			s.log.WithFields(logrus.Fields{
				"claimId":    req.ClaimID,
				"duplicates": check.DuplicateCount,
			}).Info("duplicate claim blocked")
			return nil, &domain.DuplicateError{Matches: check.Duplicates}
		}
	}

	if err := validateCreate(&req); err != nil {
		return nil, err
	}
	category := strings.ToLower(req.Category)
	if !domain.IsCategory(category) {
		return nil, domain.Validation("Invalid category. Must be one of: %s", strings.Join(domain.Categories, ", "))
	}
	if err := s.validateAgainstCatalog(ctx, &req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	id := req.ClaimID
	if id == "" {
		id = "R-" + strconv.FormatInt(now.UnixMilli(), 10)
	}
	submitted := req.SubmittedDate
	if !submitted.Set() {
		submitted = domain.NewDate(now)
	}

	r := &domain.Reimbursement{
		ID:                  id,
		Category:            category,
		Source:              req.Source,
		BenefitType:         req.BenefitType,
		ClaimType:           req.ClaimType,
		ClaimID:             req.ClaimID,
		Description:         req.Description,
		AmountClaimed:       req.AmountClaimed.Decimal,
		AmountApproved:      orZero(req.AmountApproved),
		AmountDisapproved:   orZero(req.AmountDisapproved),
		Status:              createStatus(req.Status),
		SubmittedDate:       submitted,
		ApprovedDate:        req.ApprovedDate,
		PaidDate:            req.PaidDate,
		PurchaseDate:        req.Date,
		LinkedTransactionID: req.LinkedTransactionID,
		ReceiptImageURL:     req.ReceiptImageURL,
		Notes:               req.Notes,
		ReceiptNumber:       req.ReceiptNumber,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.reimbursementRepository.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("append reimbursement: %w", err)
	}

	metrics.ClaimsCreated.WithLabelValues(r.Category).Inc()
	s.log.WithFields(logrus.Fields{
		"reimbursementId": r.ID,
		"category":        r.Category,
		"status":          r.Status,
	}).Info("reimbursement created")

	return &domain.CreateReimbursementResponse{
		ReimbursementID:   r.ID,
		Status:            r.Status,
		Category:          r.Category,
		Source:            r.Source,
		AmountClaimed:     r.AmountClaimed,
		AmountApproved:    r.AmountApproved,
		AmountDisapproved: r.AmountDisapproved,
		ClaimType:         optional(r.ClaimType),
		ClaimID:           optional(r.ClaimID),
		ReceiptNumber:     optional(r.ReceiptNumber),
	}, nil
}

func (s *reimbursementService) List(ctx context.Context, req domain.ListReimbursementsRequest) (*domain.ListReimbursementsResponse, error) {
	all, err := s.reimbursementRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read reimbursements: %w", err)
	}

	filter := claimFilter{category: req.Category, source: req.Source, status: req.Status.Lower()}
	results := make([]*domain.Reimbursement, 0, len(all))
	for _, r := range all {
		if filter.match(r) {
			results = append(results, r)
		}
	}

	sortClaims(results, req.SortBy, req.SortOrder)

	limit := int(req.Limit)
	if limit <= 0 {
		limit = s.pageSize
	}
	page := results
	if len(page) > limit {
		page = page[:limit]
	}

	return &domain.ListReimbursementsResponse{
		Reimbursements: page,
		Count:          len(page),
		TotalCount:     len(results),
	}, nil
}

func (s *reimbursementService) Link(ctx context.Context, req domain.LinkTransactionRequest) (*domain.LinkTransactionResponse, error) {
	if req.ReimbursementID == "" {
		return nil, domain.Validation("reimbursementId is required")
	}
	if req.TransactionID == "" {
		return nil, domain.Validation("transactionId (BudgetQuest) is required")
	}

	rec, err := s.reimbursementRepository.FindByID(ctx, req.ReimbursementID)
	if err != nil {
		return nil, err
	}
	err = s.reimbursementRepository.Update(ctx, rec,
		sheet.Cell{Column: colLinkedTransactionID, Value: req.TransactionID},
		sheet.Cell{Column: colUpdatedAt, Value: formatTimestamp(s.now())},
	)
	if err != nil {
		return nil, fmt.Errorf("link reimbursement: %w", err)
	}

	return &domain.LinkTransactionResponse{
		ReimbursementID:     req.ReimbursementID,
		LinkedTransactionID: req.TransactionID,
	}, nil
}

func (s *reimbursementService) AttachReceipt(ctx context.Context, reimbursementID, url string) (*domain.AttachReceiptResponse, error) {
	if reimbursementID == "" {
		return nil, domain.Validation("reimbursementId is required")
	}
	if url == "" {
		return nil, domain.Validation("receiptImageURL is required")
	}

	rec, err := s.reimbursementRepository.FindByID(ctx, reimbursementID)
	if err != nil {
		return nil, err
	}
	err = s.reimbursementRepository.Update(ctx, rec,
		sheet.Cell{Column: colReceiptImageURL, Value: url},
		sheet.Cell{Column: colUpdatedAt, Value: formatTimestamp(s.now())},
	)
	if err != nil {
		return nil, fmt.Errorf("attach receipt: %w", err)
	}

	return &domain.AttachReceiptResponse{ReimbursementID: reimbursementID, ReceiptImageURL: url}, nil
}

func validateCreate(req *domain.CreateReimbursementRequest) error {
	switch {
	case req.Category == "":
		return domain.Validation("category is required (%s)", strings.Join(domain.Categories, ", "))
	case req.Source == "":
		return domain.Validation("source is required (who will reimburse)")
	case req.Description == "":
		return domain.Validation("description is required")
	case !req.AmountClaimed.Valid:
		return domain.Validation("amountClaimed is required")
	case !req.Date.Set():
		return domain.Validation("date is required (YYYY-MM-DD)")
	}

	return rejectNegative(
		namedAmount{"amountClaimed", req.AmountClaimed},
		namedAmount{"amountApproved", req.AmountApproved},
		namedAmount{"amountDisapproved", req.AmountDisapproved},
	)
}

type namedAmount struct {
	name  string
	value decimal.NullDecimal
}

func rejectNegative(amounts ...namedAmount) error {
	for _, a := range amounts {
		if a.value.Valid && a.value.Decimal.IsNegative() {
			return domain.Validation("%s must not be negative", a.name)
		}
	}
	return nil
}

// validateAgainstCatalog checks benefitType and claimType against the reference
// catalog. A missing or unreadable catalog disables the check.
func (s *reimbursementService) validateAgainstCatalog(ctx context.Context, req *domain.CreateReimbursementRequest) error {
	if req.BenefitType == "" && req.ClaimType == "" {
		return nil
	}
	data, err := s.referenceService.GetEntries(ctx, domain.GetReferenceDataRequest{})
	if err != nil {
		s.log.WithError(err).Debug("reference catalog unavailable, skipping validation")
		return nil
	}

	checks := []struct {
		field, value, refType string
	}{
		{"benefitType", req.BenefitType, domain.ReferenceBenefitType},
		{"claimType", req.ClaimType, domain.ReferenceClaimType},
	}
	for _, c := range checks {
		allowed := data.Values(c.refType)
		if c.value == "" || len(allowed) == 0 {
			continue
		}
		if !domain.StringSet(allowed).Contains(c.value) {
			return domain.Validation("Invalid %s %q. Valid: %s", c.field, c.value, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// createStatus lowercases the requested status and falls back to pending for
// anything outside the known set.
func createStatus(status string) string {
	status = domain.NormalizeStatus(status)
	if !domain.IsStatus(status) {
		return domain.StatusPending
	}
	return status
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
