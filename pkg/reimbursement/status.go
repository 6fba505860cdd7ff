package reimbursement

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/internal/metrics"
	"Reimbursement-Tracker/pkg/sheet"
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Update applies a status change and any supplied field edits to one claim.
// Dates stamped by a transition are never overwritten by a later transition.
func (s *reimbursementService) Update(ctx context.Context, req domain.UpdateReimbursementRequest) (*domain.UpdateReimbursementResponse, error) {
	if req.ReimbursementID == "" {
		return nil, domain.Validation("reimbursementId is required")
	}
	newStatus := domain.NormalizeStatus(req.Status)
	if newStatus != "" && !domain.IsStatus(newStatus) {
		return nil, domain.Validation("Invalid status. Must be one of: %s", strings.Join(domain.Statuses, ", "))
	}
	err := rejectNegative(
		namedAmount{"amountApproved", req.AmountApproved},
		namedAmount{"amountDisapproved", req.AmountDisapproved},
	)
	if err != nil {
		return nil, err
	}

	rec, err := s.reimbursementRepository.FindByID(ctx, req.ReimbursementID)
	if err != nil {
		return nil, err
	}
	current := rec.Reimbursement
	now := s.now()
	today := domain.NewDate(now)

	var (
		cells   []sheet.Cell
		changes []string
	)
	set := func(column, value, change string) {
		cells = append(cells, sheet.Cell{Column: column, Value: value})
		changes = append(changes, change)
	}

	paid := false
	approvedStamped := false
	if newStatus != "" {
		current.Status = newStatus
		set(colStatus, newStatus, "status → "+newStatus)

		if (newStatus == domain.StatusApproved || newStatus == domain.StatusPaid) && !current.ApprovedDate.Set() {
			current.ApprovedDate = pick(req.ApprovedDate, today)
			set(colApprovedDate, current.ApprovedDate.String(), "approvedDate")
			approvedStamped = true
		}
		if newStatus == domain.StatusPaid {
			paid = true
			if req.PaidDate.Set() || !current.PaidDate.Set() {
				current.PaidDate = pick(req.PaidDate, today)
				set(colPaidDate, current.PaidDate.String(), "paidDate")
			}
		}
	}

	if req.ClaimID != "" {
		current.ClaimID = req.ClaimID
		set(colClaimID, req.ClaimID, "claimId → "+req.ClaimID)
	}
	if req.ClaimType != "" {
		current.ClaimType = req.ClaimType
		set(colClaimType, req.ClaimType, "claimType → "+req.ClaimType)
	}
	if req.BenefitType != "" {
		current.BenefitType = req.BenefitType
		set(colBenefitType, req.BenefitType, "benefitType → "+req.BenefitType)
	}
	if req.Description != "" {
		current.Description = req.Description
		set(colDescription, req.Description, "description")
	}
	if req.AmountApproved.Valid {
		current.AmountApproved = req.AmountApproved.Decimal
		v := current.AmountApproved.String()
		set(colAmountApproved, v, "amountApproved → "+v)
	}
	if req.AmountDisapproved.Valid {
		current.AmountDisapproved = req.AmountDisapproved.Decimal
		v := current.AmountDisapproved.String()
		set(colAmountDisapproved, v, "amountDisapproved → "+v)
	}
	if req.ApprovedDate.Set() && !approvedStamped {
		current.ApprovedDate = req.ApprovedDate
		v := req.ApprovedDate.String()
		set(colApprovedDate, v, "approvedDate → "+v)
	}
	if req.SubmittedDate.Set() {
		current.SubmittedDate = req.SubmittedDate
		v := req.SubmittedDate.String()
		set(colSubmittedDate, v, "submittedDate → "+v)
	}
	if req.ReceiptNumber != "" {
		current.ReceiptNumber = req.ReceiptNumber
		set(colReceiptNumber, req.ReceiptNumber, "receiptNumber → "+req.ReceiptNumber)
	}
	if req.Notes != "" {
		notes := req.Notes
		if current.Notes != "" {
			notes = current.Notes + " | " + req.Notes
		}
		current.Notes = notes
		set(colNotes, notes, "notes")
	}

	current.UpdatedAt = now
	cells = append(cells, sheet.Cell{Column: colUpdatedAt, Value: formatTimestamp(now)})
	if err := s.reimbursementRepository.Update(ctx, rec, cells...); err != nil {
		return nil, fmt.Errorf("update reimbursement: %w", err)
	}

	resp := &domain.UpdateReimbursementResponse{
		ReimbursementID: req.ReimbursementID,
		NewStatus:       current.Status,
		UpdatedFields:   changes,
	}
	if newStatus != "" {
		metrics.StatusTransitions.WithLabelValues(newStatus).Inc()
	}

	if paid {
		s.afterPaid(ctx, current, req, resp)
	}
	return resp, nil
}

// afterPaid runs the side effects of a paid transition. Their failures are
// reported on the response and never undo the update.
func (s *reimbursementService) afterPaid(ctx context.Context, r *domain.Reimbursement, req domain.UpdateReimbursementRequest, resp *domain.UpdateReimbursementResponse) {
	log := s.log.WithField("reimbursementId", r.ID)

	if r.LinkedTransactionID != "" && s.syncer != nil && s.syncer.Configured() {
		amount := r.AmountClaimed
		if req.AmountApproved.Valid && !req.AmountApproved.Decimal.IsZero() {
			amount = req.AmountApproved.Decimal
		}
		result, err := s.syncer.SyncNetCost(ctx, r.LinkedTransactionID, amount)
		if err != nil {
			metrics.SyncFailures.Inc()
			log.WithError(err).WithField("transactionId", r.LinkedTransactionID).Warn("net cost sync failed")
			resp.SyncWarning = err.Error()
		} else {
			resp.SyncResult = result
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyPaid(ctx, r); err != nil {
			log.WithError(err).Warn("paid notice not sent")
		}
	}
}

func (s *reimbursementService) SyncNetCost(ctx context.Context, req domain.SyncNetCostRequest) (map[string]any, error) {
	if s.syncer == nil || !s.syncer.Configured() {
		return nil, domain.NewError(domain.ErrConfigurationMissing, "BudgetQuest API URL not configured")
	}
	if req.TransactionID == "" {
		return nil, domain.Validation("transactionId is required")
	}
	if !req.AmountReimbursed.Valid {
		return nil, domain.Validation("amountReimbursed is required")
	}

	result, err := s.syncer.SyncNetCost(ctx, req.TransactionID, req.AmountReimbursed.Decimal)
	if err != nil {
		metrics.SyncFailures.Inc()
		s.log.WithError(err).WithFields(logrus.Fields{"transactionId": req.TransactionID}).Warn("net cost sync failed")
		return nil, err
	}
	return result, nil
}

func pick(explicit, fallback domain.Date) domain.Date {
	if explicit.Set() {
		return explicit
	}
	return fallback
}
