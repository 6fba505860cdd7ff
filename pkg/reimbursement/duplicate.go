package reimbursement

import (
	"Reimbursement-Tracker/domain"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	RuleClaimID            = "claim_id"
	RuleReimbursementID    = "reimbursement_id"
	RuleReceiptNumber      = "receipt_number"
	RuleQuarterlyHeuristic = "quarterly_heuristic"
)

var amountTolerance = decimal.RequireFromString("0.01")

// matchRule inspects one existing claim and returns a reason when it fires.
type matchRule struct {
	name  string
	match func(c *domain.DuplicateCandidate, existing *domain.Reimbursement) (string, bool)
}

// Rules are tried in order; the first one to fire wins for that claim.
var matchRules = []matchRule{
	{name: RuleClaimID, match: matchClaimID},
	{name: RuleReimbursementID, match: matchReimbursementID},
	{name: RuleReceiptNumber, match: matchReceiptNumber},
	{name: RuleQuarterlyHeuristic, match: matchQuarter},
}

// FindDuplicates classifies every existing claim against the candidate, in table order.
func FindDuplicates(candidate domain.DuplicateCandidate, existing []*domain.Reimbursement) []*domain.DuplicateMatch {
	matches := []*domain.DuplicateMatch{}
	for _, r := range existing {
		for _, rule := range matchRules {
			reason, ok := rule.match(&candidate, r)
			if !ok {
				continue
			}
			matches = append(matches, &domain.DuplicateMatch{
				Reimbursement: *r,
				MatchRule:     rule.name,
				MatchReason:   reason,
			})
			break
		}
	}
	return matches
}

func matchClaimID(c *domain.DuplicateCandidate, r *domain.Reimbursement) (string, bool) {
	if c.ClaimID == "" || r.ClaimID != c.ClaimID {
		return "", false
	}
	return "Same ClaimID: " + c.ClaimID, true
}

// matchReimbursementID covers legacy rows that used the external claim ID as their primary ID.
func matchReimbursementID(c *domain.DuplicateCandidate, r *domain.Reimbursement) (string, bool) {
	if c.ClaimID == "" || r.ID != c.ClaimID {
		return "", false
	}
	return "Same ReimbursementID: " + c.ClaimID, true
}

func matchReceiptNumber(c *domain.DuplicateCandidate, r *domain.Reimbursement) (string, bool) {
	want := strings.TrimSpace(c.ReceiptNumber)
	have := strings.TrimSpace(r.ReceiptNumber)
	if want == "" || have == "" || want != have {
		return "", false
	}
	return "Same ReceiptNumber: " + want, true
}

func matchQuarter(c *domain.DuplicateCandidate, r *domain.Reimbursement) (string, bool) {
	if !c.AmountClaimed.Valid || c.AmountClaimed.Decimal.IsZero() || c.Source == "" {
		return "", false
	}
	if r.Status != domain.StatusPending || r.Source != c.Source {
		return "", false
	}
	if !r.AmountClaimed.Sub(c.AmountClaimed.Decimal).Abs().LessThan(amountTolerance) {
		return "", false
	}
	if !sameQuarter(r.PurchaseDate, c.Date) {
		return "", false
	}

	reason := "Same source + amount + pending + same quarter"
	if descriptionsOverlap(c.Description, r.Description) {
		reason += " + description match"
	}
	return reason, true
}

func sameQuarter(a, b domain.Date) bool {
	if !a.Set() || !b.Set() {
		return false
	}
	return a.Year() == b.Year() && a.Quarter() == b.Quarter()
}

func descriptionsOverlap(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
