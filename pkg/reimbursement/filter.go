package reimbursement

import (
	"Reimbursement-Tracker/domain"
	"sort"
	"strings"
	"time"
)

type claimFilter struct {
	category string
	source   string
	status   domain.StringSet
	from, to domain.Date
}

func (f claimFilter) match(r *domain.Reimbursement) bool {
	if f.category != "" && r.Category != strings.ToLower(f.category) {
		return false
	}
	if f.source != "" && r.Source != f.source {
		return false
	}
	if len(f.status) > 0 && !f.status.Contains(r.Status) {
		return false
	}
	// Claims without a purchase date pass both bounds.
	if r.PurchaseDate.Set() {
		if f.from.Set() && r.PurchaseDate.Before(f.from.Time) {
			return false
		}
		if f.to.Set() && r.PurchaseDate.After(f.to.Time) {
			return false
		}
	}
	return true
}

// claimLess orders two claims by one field, ascending.
type claimLess func(a, b *domain.Reimbursement) bool

var sortKeys = map[string]claimLess{
	"purchaseDate":      byDate(func(r *domain.Reimbursement) domain.Date { return r.PurchaseDate }),
	"submittedDate":     byDate(func(r *domain.Reimbursement) domain.Date { return r.SubmittedDate }),
	"approvedDate":      byDate(func(r *domain.Reimbursement) domain.Date { return r.ApprovedDate }),
	"paidDate":          byDate(func(r *domain.Reimbursement) domain.Date { return r.PaidDate }),
	"createdAt":         byTime(func(r *domain.Reimbursement) time.Time { return r.CreatedAt }),
	"updatedAt":         byTime(func(r *domain.Reimbursement) time.Time { return r.UpdatedAt }),
	"amountClaimed":     func(a, b *domain.Reimbursement) bool { return a.AmountClaimed.LessThan(b.AmountClaimed) },
	"amountApproved":    func(a, b *domain.Reimbursement) bool { return a.AmountApproved.LessThan(b.AmountApproved) },
	"amountDisapproved": func(a, b *domain.Reimbursement) bool { return a.AmountDisapproved.LessThan(b.AmountDisapproved) },
	"reimbursementId":   byString(func(r *domain.Reimbursement) string { return r.ID }),
	"category":          byString(func(r *domain.Reimbursement) string { return r.Category }),
	"source":            byString(func(r *domain.Reimbursement) string { return r.Source }),
	"status":            byString(func(r *domain.Reimbursement) string { return r.Status }),
	"description":       byString(func(r *domain.Reimbursement) string { return r.Description }),
}

func byDate(get func(*domain.Reimbursement) domain.Date) claimLess {
	return func(a, b *domain.Reimbursement) bool { return get(a).Before(get(b).Time) }
}

func byTime(get func(*domain.Reimbursement) time.Time) claimLess {
	return func(a, b *domain.Reimbursement) bool { return get(a).Before(get(b)) }
}

func byString(get func(*domain.Reimbursement) string) claimLess {
	return func(a, b *domain.Reimbursement) bool { return get(a) < get(b) }
}

// sortClaims sorts in place, keeping table order for ties and for unknown keys.
// The default is purchaseDate descending; only "asc" flips the order.
func sortClaims(claims []*domain.Reimbursement, sortBy, sortOrder string) {
	if sortBy == "" {
		sortBy = "purchaseDate"
	}
	less, ok := sortKeys[sortBy]
	if !ok {
		return
	}
	asc := sortOrder == "asc"
	sort.SliceStable(claims, func(i, j int) bool {
		if asc {
			return less(claims[i], claims[j])
		}
		return less(claims[j], claims[i])
	})
}
