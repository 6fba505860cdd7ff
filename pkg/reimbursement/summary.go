package reimbursement

import (
	"Reimbursement-Tracker/domain"
	"context"
	"fmt"
)

func (s *reimbursementService) Summarize(ctx context.Context, req domain.SummaryRequest) (*domain.SummaryResponse, error) {
	all, err := s.reimbursementRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read reimbursements: %w", err)
	}
	return Summarize(all, req), nil
}

// Summarize totals the claims that pass the filters in a single pass.
// Breakdowns keep the order in which each category or source first appears.
func Summarize(claims []*domain.Reimbursement, req domain.SummaryRequest) *domain.SummaryResponse {
	filter := claimFilter{
		category: req.Category,
		source:   req.Source,
		status:   req.Status.Lower(),
		from:     req.DateFrom,
		to:       req.DateTo,
	}

	var total domain.Breakdown
	resp := &domain.SummaryResponse{
		ByCategory: []*domain.CategoryBreakdown{},
		BySource:   []*domain.SourceBreakdown{},
	}
	categories := map[string]*domain.CategoryBreakdown{}
	sources := map[string]*domain.SourceBreakdown{}

	for _, r := range claims {
		if !filter.match(r) {
			continue
		}

		c, ok := categories[r.Category]
		if !ok {
			c = &domain.CategoryBreakdown{Category: r.Category}
			categories[r.Category] = c
			resp.ByCategory = append(resp.ByCategory, c)
		}
		src, ok := sources[r.Source]
		if !ok {
			src = &domain.SourceBreakdown{Source: r.Source}
			sources[r.Source] = src
			resp.BySource = append(resp.BySource, src)
		}

		accumulate(&total, r)
		accumulate(&c.Breakdown, r)
		accumulate(&src.Breakdown, r)
	}

	resp.Summary = domain.SummaryTotals{
		TotalClaimed:  total.Claimed,
		TotalApproved: total.Approved,
		TotalPaid:     total.Paid,
		TotalPending:  total.Pending,
		Count:         total.Count,
	}
	return resp
}

func accumulate(b *domain.Breakdown, r *domain.Reimbursement) {
	b.Count++
	b.Claimed = b.Claimed.Add(r.AmountClaimed)
	switch r.Status {
	case domain.StatusApproved:
		b.Approved = b.Approved.Add(r.ApprovedValue())
	case domain.StatusPaid:
		b.Approved = b.Approved.Add(r.ApprovedValue())
		b.Paid = b.Paid.Add(r.ApprovedValue())
	case domain.StatusPending:
		b.Pending = b.Pending.Add(r.AmountClaimed)
	}
}
