package reimbursement

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/pkg/reference"
	"Reimbursement-Tracker/pkg/sheet"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) Configured() bool {
	return m.Called().Bool(0)
}

func (m *MockSyncer) SyncNetCost(ctx context.Context, transactionID string, amountReimbursed decimal.Decimal) (map[string]any, error) {
	args := m.Called(ctx, transactionID, amountReimbursed)
	result, _ := args.Get(0).(map[string]any)
	return result, args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyPaid(ctx context.Context, r *domain.Reimbursement) error {
	return m.Called(ctx, r).Error(0)
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	service   ReimbursementService
	reference reference.ReferenceService
	store     sheet.Store
	clock     *fakeClock
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := sheet.NewMemoryStore()
	clock := &fakeClock{t: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	opts.Now = clock.Now

	refs := reference.NewReferenceService(reference.NewReferenceRepository(store), logger)
	return &fixture{
		service:   NewReimbursementService(NewReimbursementRepository(store), refs, opts, logger),
		reference: refs,
		store:     store,
		clock:     clock,
	}
}

func validRequest(claimID string) domain.CreateReimbursementRequest {
	return domain.CreateReimbursementRequest{
		Category:      "HMO",
		Source:        "Avega",
		ClaimID:       claimID,
		Description:   "Dental cleaning",
		AmountClaimed: amount("1500"),
		Date:          domain.NewDate(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)),
	}
}

func (f *fixture) create(t *testing.T, req domain.CreateReimbursementRequest) *domain.CreateReimbursementResponse {
	t.Helper()
	resp, err := f.service.Create(context.Background(), req)
	require.NoError(t, err)
	f.clock.Advance(time.Millisecond)
	return resp
}

func (f *fixture) get(t *testing.T, id string) *domain.Reimbursement {
	t.Helper()
	list, err := f.service.List(context.Background(), domain.ListReimbursementsRequest{Limit: 1000})
	require.NoError(t, err)
	for _, r := range list.Reimbursements {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("reimbursement %s not listed", id)
	return nil
}

func TestReimbursementService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should store unknown statuses as pending", func(t *testing.T) {
		f := newFixture(t, Options{})
		req := validRequest("")
		req.Status = "UNKNOWN"

		resp := f.create(t, req)
		assert.Equal(t, domain.StatusPending, resp.Status)
		assert.Equal(t, domain.StatusPending, f.get(t, resp.ReimbursementID).Status)
	})

	t.Run("should lowercase a known status", func(t *testing.T) {
		f := newFixture(t, Options{})
		req := validRequest("")
		req.Status = " Approved "

		assert.Equal(t, domain.StatusApproved, f.create(t, req).Status)
	})

	t.Run("should generate an id from the clock when no claim id is given", func(t *testing.T) {
		f := newFixture(t, Options{})

		resp := f.create(t, validRequest(""))
		assert.Equal(t, "R-1715331600000", resp.ReimbursementID)
		assert.Nil(t, resp.ClaimID)
		assert.Nil(t, resp.ClaimType)
	})

	t.Run("should use the external claim id and stamp system dates", func(t *testing.T) {
		f := newFixture(t, Options{})
		createdAt := f.clock.Now()

		resp := f.create(t, validRequest("67-RM0126"))
		assert.Equal(t, "67-RM0126", resp.ReimbursementID)
		require.NotNil(t, resp.ClaimID)
		assert.Equal(t, "67-RM0126", *resp.ClaimID)
		assert.Equal(t, "hmo", resp.Category)
		assert.Equal(t, "0", resp.AmountApproved.String())

		stored := f.get(t, "67-RM0126")
		assert.Equal(t, "2024-05-10", stored.SubmittedDate.String())
		assert.Equal(t, "2024-04-02", stored.PurchaseDate.String())
		assert.False(t, stored.ApprovedDate.Set())
		assert.True(t, stored.CreatedAt.Equal(createdAt))
		assert.True(t, stored.UpdatedAt.Equal(createdAt))
	})

	t.Run("should keep an explicit submitted date", func(t *testing.T) {
		f := newFixture(t, Options{})
		req := validRequest("A-1")
		req.SubmittedDate = date(t, "2024-04-03")

		f.create(t, req)
		assert.Equal(t, "2024-04-03", f.get(t, "A-1").SubmittedDate.String())
	})

	t.Run("should block duplicates without appending", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.create(t, validRequest("A-1"))

		_, err := f.service.Create(ctx, validRequest("A-1"))
		var dup *domain.DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.ErrorIs(t, err, domain.ErrDuplicateDetected)
		require.Len(t, dup.Matches, 1)
		assert.Equal(t, RuleClaimID, dup.Matches[0].MatchRule)

		rows, err := f.store.Rows(ctx, SheetName)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("should check duplicates before required fields", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.create(t, validRequest("A-1"))

		_, err := f.service.Create(ctx, domain.CreateReimbursementRequest{ClaimID: "A-1"})
		assert.ErrorIs(t, err, domain.ErrDuplicateDetected)
	})

	t.Run("should insert anyway when the duplicate check is skipped", func(t *testing.T) {
		f := newFixture(t, Options{})
		req := validRequest("")
		f.create(t, req)

		_, err := f.service.Create(ctx, req)
		assert.ErrorIs(t, err, domain.ErrDuplicateDetected)

		req.SkipDuplicateCheck = true
		f.create(t, req)
		list, err := f.service.List(ctx, domain.ListReimbursementsRequest{})
		require.NoError(t, err)
		assert.Equal(t, 2, list.TotalCount)
	})

	t.Run("should validate required fields in order", func(t *testing.T) {
		f := newFixture(t, Options{})
		cases := []struct {
			mutate func(*domain.CreateReimbursementRequest)
			want   string
		}{
			{func(r *domain.CreateReimbursementRequest) { r.Category = "" }, "category is required (hmo, business, client, personal, other)"},
			{func(r *domain.CreateReimbursementRequest) { r.Source = "" }, "source is required (who will reimburse)"},
			{func(r *domain.CreateReimbursementRequest) { r.Description = "" }, "description is required"},
			{func(r *domain.CreateReimbursementRequest) { r.AmountClaimed = decimal.NullDecimal{} }, "amountClaimed is required"},
			{func(r *domain.CreateReimbursementRequest) { r.Date = domain.Date{} }, "date is required (YYYY-MM-DD)"},
			{func(r *domain.CreateReimbursementRequest) { r.Category = "travel" }, "Invalid category. Must be one of: hmo, business, client, personal, other"},
			{func(r *domain.CreateReimbursementRequest) { r.AmountClaimed = amount("-1") }, "amountClaimed must not be negative"},
		}
		for _, c := range cases {
			req := validRequest("")
			c.mutate(&req)
			_, err := f.service.Create(ctx, req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.EqualError(t, err, c.want)
		}
	})

	t.Run("should accept a zero amount", func(t *testing.T) {
		f := newFixture(t, Options{})
		req := validRequest("")
		req.AmountClaimed = amount("0")

		assert.Equal(t, "0", f.create(t, req).AmountClaimed.String())
	})

	t.Run("should validate catalog types once the catalog exists", func(t *testing.T) {
		f := newFixture(t, Options{})
		_, err := f.reference.Initialize(ctx)
		require.NoError(t, err)

		req := validRequest("")
		req.ClaimType = "ZZ"
		_, err = f.service.Create(ctx, req)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), `Invalid claimType "ZZ". Valid: OT, OL`)

		req.ClaimType = "DP"
		req.BenefitType = "dental_reimbursement"
		resp := f.create(t, req)
		require.NotNil(t, resp.ClaimType)
		assert.Equal(t, "DP", *resp.ClaimType)
	})

	t.Run("should skip catalog validation when the catalog is missing", func(t *testing.T) {
		f := newFixture(t, Options{})
		req := validRequest("")
		req.ClaimType = "anything"
		req.BenefitType = "whatever"

		f.create(t, req)
	})
}

func TestReimbursementService_CheckDuplicate(t *testing.T) {
	t.Run("should report no duplicates on a missing sheet", func(t *testing.T) {
		f := newFixture(t, Options{})

		result, err := f.service.CheckDuplicate(context.Background(), domain.DuplicateCandidate{ClaimID: "A-1"})
		require.NoError(t, err)
		assert.False(t, result.IsDuplicate)
		assert.Equal(t, 0, result.DuplicateCount)
		assert.Empty(t, result.Duplicates)
	})
}

func TestReimbursementService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("should validate status before looking up the claim", func(t *testing.T) {
		f := newFixture(t, Options{})

		_, err := f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "A-1", Status: "closed"})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = f.service.Update(ctx, domain.UpdateReimbursementRequest{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("should reject negative amounts without writing", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.create(t, validRequest("A-1"))

		_, err := f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "A-1", AmountApproved: amount("-50")})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.EqualError(t, err, "amountApproved must not be negative")

		_, err = f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "A-1", AmountDisapproved: amount("-5")})
		assert.EqualError(t, err, "amountDisapproved must not be negative")

		stored := f.get(t, "A-1")
		assert.True(t, stored.AmountApproved.IsZero())
		assert.True(t, stored.AmountDisapproved.IsZero())
	})

	t.Run("should fail when the sheet or claim is missing", func(t *testing.T) {
		f := newFixture(t, Options{})

		_, err := f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "A-1", Status: "paid"})
		assert.ErrorIs(t, err, domain.ErrNotInitialized)

		f.create(t, validRequest("A-1"))
		_, err = f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "nope", Status: "paid"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.EqualError(t, err, "Reimbursement not found: nope")
	})

	t.Run("should stamp approvedDate on approval", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.create(t, validRequest("A-1"))

		resp, err := f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "A-1", Status: "APPROVED"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, resp.NewStatus)
		assert.Equal(t, []string{"status → approved", "approvedDate"}, resp.UpdatedFields)
		assert.Equal(t, "2024-05-10", f.get(t, "A-1").ApprovedDate.String())
	})

	t.Run("should not restamp approvedDate when moving to paid", func(t *testing.T) {
		f := newFixture(t, Options{})
		req := validRequest("A-1")
		req.Status = domain.StatusApproved
		req.ApprovedDate = date(t, "2024-04-20")
		f.create(t, req)

		resp, err := f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "A-1", Status: "paid"})
		require.NoError(t, err)
		assert.Equal(t, []string{"status → paid", "paidDate"}, resp.UpdatedFields)

		stored := f.get(t, "A-1")
		assert.Equal(t, "2024-04-20", stored.ApprovedDate.String())
		assert.Equal(t, "2024-05-10", stored.PaidDate.String())
	})

	t.Run("should keep an existing paidDate unless one is given", func(t *testing.T) {
		f := newFixture(t, Options{})
		req := validRequest("A-1")
		req.PaidDate = date(t, "2024-04-30")
		f.create(t, req)

		_, err := f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "A-1", Status: "paid"})
		require.NoError(t, err)
		assert.Equal(t, "2024-04-30", f.get(t, "A-1").PaidDate.String())

		_, err = f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "A-1", Status: "paid", PaidDate: date(t, "2024-05-01")})
		require.NoError(t, err)
		assert.Equal(t, "2024-05-01", f.get(t, "A-1").PaidDate.String())
	})

	t.Run("should apply field edits and append notes", func(t *testing.T) {
		f := newFixture(t, Options{})
		req := validRequest("")
		req.Notes = "submitted online"
		id := f.create(t, req).ReimbursementID

		resp, err := f.service.Update(ctx, domain.UpdateReimbursementRequest{
			ReimbursementID:   id,
			ClaimID:           "67-RM0126",
			AmountApproved:    amount("1200.50"),
			AmountDisapproved: amount("299.50"),
			SubmittedDate:     date(t, "2024-04-05"),
			ReceiptNumber:     "OR-77",
			Notes:             "partial approval",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, resp.NewStatus)
		assert.Equal(t, []string{
			"claimId → 67-RM0126",
			"amountApproved → 1200.5",
			"amountDisapproved → 299.5",
			"submittedDate → 2024-04-05",
			"receiptNumber → OR-77",
			"notes",
		}, resp.UpdatedFields)

		stored := f.get(t, id)
		assert.Equal(t, "67-RM0126", stored.ClaimID)
		assert.Equal(t, "1200.5", stored.AmountApproved.String())
		assert.Equal(t, "submitted online | partial approval", stored.Notes)
		assert.Equal(t, "OR-77", stored.ReceiptNumber)
	})

	t.Run("should sync the approved amount of a linked claim when paid", func(t *testing.T) {
		syncer := new(MockSyncer)
		notifier := new(MockNotifier)
		f := newFixture(t, Options{Syncer: syncer, Notifier: notifier})
		req := validRequest("A-1")
		req.LinkedTransactionID = "TX-9"
		f.create(t, req)

		syncer.On("Configured").Return(true)
		syncer.On("SyncNetCost", mock.Anything, "TX-9", mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(1200))
		})).Return(map[string]any{"success": true}, nil).Once()
		notifier.On("NotifyPaid", mock.Anything, mock.MatchedBy(func(r *domain.Reimbursement) bool {
			return r.ID == "A-1" && r.Status == domain.StatusPaid &&
				r.AmountApproved.Equal(decimal.NewFromInt(1200)) &&
				r.ApprovedValue().Equal(decimal.NewFromInt(1200)) &&
				r.PaidDate.Set()
		})).Return(nil).Once()

		resp, err := f.service.Update(ctx, domain.UpdateReimbursementRequest{
			ReimbursementID: "A-1",
			Status:          "paid",
			AmountApproved:  amount("1200"),
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"success": true}, resp.SyncResult)
		assert.Empty(t, resp.SyncWarning)
		syncer.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("should fall back to the claimed amount for sync", func(t *testing.T) {
		syncer := new(MockSyncer)
		f := newFixture(t, Options{Syncer: syncer})
		req := validRequest("A-1")
		req.LinkedTransactionID = "TX-9"
		f.create(t, req)

		syncer.On("Configured").Return(true)
		syncer.On("SyncNetCost", mock.Anything, "TX-9", mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(1500))
		})).Return(map[string]any{"success": true}, nil).Once()

		_, err := f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "A-1", Status: "paid", AmountApproved: amount("0")})
		require.NoError(t, err)
		syncer.AssertExpectations(t)
	})

	t.Run("should keep the paid status when sync fails", func(t *testing.T) {
		syncer := new(MockSyncer)
		notifier := new(MockNotifier)
		f := newFixture(t, Options{Syncer: syncer, Notifier: notifier})
		req := validRequest("A-1")
		req.LinkedTransactionID = "TX-9"
		f.create(t, req)

		syncer.On("Configured").Return(true)
		syncer.On("SyncNetCost", mock.Anything, "TX-9", mock.Anything).Return(nil, errors.New("connection refused"))
		notifier.On("NotifyPaid", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		resp, err := f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "A-1", Status: "paid"})
		require.NoError(t, err)
		assert.Equal(t, "connection refused", resp.SyncWarning)
		assert.Nil(t, resp.SyncResult)
		assert.Equal(t, domain.StatusPaid, f.get(t, "A-1").Status)
	})

	t.Run("should not sync unlinked claims or other statuses", func(t *testing.T) {
		syncer := new(MockSyncer)
		f := newFixture(t, Options{Syncer: syncer})
		f.create(t, validRequest("A-1"))
		linked := validRequest("B-1")
		linked.LinkedTransactionID = "TX-1"
		linked.SkipDuplicateCheck = true
		f.create(t, linked)
		syncer.On("Configured").Return(true)

		_, err := f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "A-1", Status: "paid"})
		require.NoError(t, err)
		_, err = f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "B-1", Status: "approved"})
		require.NoError(t, err)
		syncer.AssertNotCalled(t, "SyncNetCost", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReimbursementService_List(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *fixture {
		f := newFixture(t, Options{PageSize: 2})
		for _, c := range []struct{ id, category, source, status, purchase string }{
			{"A", "hmo", "Avega", "pending", "2024-02-01"},
			{"B", "business", "Acme", "approved", "2024-03-01"},
			{"C", "hmo", "Avega", "paid", "2024-01-01"},
			{"D", "personal", "Avega", "paid", "2024-06-01"},
		} {
			req := validRequest(c.id)
			req.Category, req.Source, req.Status = c.category, c.source, c.status
			req.Date = date(t, c.purchase)
			req.SkipDuplicateCheck = true
			f.create(t, req)
		}
		return f
	}

	ids := func(list *domain.ListReimbursementsResponse) []string {
		out := make([]string, 0, len(list.Reimbursements))
		for _, r := range list.Reimbursements {
			out = append(out, r.ID)
		}
		return out
	}

	t.Run("should sort by purchase date descending and page", func(t *testing.T) {
		f := seed(t)

		list, err := f.service.List(ctx, domain.ListReimbursementsRequest{})
		require.NoError(t, err)
		assert.Equal(t, []string{"D", "B"}, ids(list))
		assert.Equal(t, 2, list.Count)
		assert.Equal(t, 4, list.TotalCount)
	})

	t.Run("should sort ascending on request", func(t *testing.T) {
		f := seed(t)

		list, err := f.service.List(ctx, domain.ListReimbursementsRequest{SortBy: "purchaseDate", SortOrder: "asc", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "A", "B", "D"}, ids(list))
	})

	t.Run("should keep table order for unknown sort keys", func(t *testing.T) {
		f := seed(t)

		list, err := f.service.List(ctx, domain.ListReimbursementsRequest{SortBy: "color", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C", "D"}, ids(list))
	})

	t.Run("should filter by category, source and status set", func(t *testing.T) {
		f := seed(t)

		list, err := f.service.List(ctx, domain.ListReimbursementsRequest{Category: "HMO", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "C"}, ids(list))

		list, err = f.service.List(ctx, domain.ListReimbursementsRequest{Source: "Avega", Status: domain.StringSet{"paid", "approved"}, Limit: 10})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"C", "D"}, ids(list))
	})

	t.Run("should return an empty list before the sheet exists", func(t *testing.T) {
		f := newFixture(t, Options{})

		list, err := f.service.List(ctx, domain.ListReimbursementsRequest{})
		require.NoError(t, err)
		assert.Empty(t, list.Reimbursements)
		assert.Equal(t, 0, list.TotalCount)
	})

	t.Run("should show an edit on the next list and change nothing else", func(t *testing.T) {
		f := seed(t)
		before := f.get(t, "B")

		f.clock.Advance(time.Hour)
		_, err := f.service.Update(ctx, domain.UpdateReimbursementRequest{ReimbursementID: "B", Description: "Client dinner"})
		require.NoError(t, err)

		after := f.get(t, "B")
		assert.Equal(t, "Client dinner", after.Description)
		assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

		before.Description = after.Description
		before.UpdatedAt = after.UpdatedAt
		assert.Equal(t, before, after)
	})
}

func TestReimbursementService_Link(t *testing.T) {
	ctx := context.Background()

	t.Run("should require both ids", func(t *testing.T) {
		f := newFixture(t, Options{})

		_, err := f.service.Link(ctx, domain.LinkTransactionRequest{ReimbursementID: "A-1"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.EqualError(t, err, "transactionId (BudgetQuest) is required")
	})

	t.Run("should store the linked transaction", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.create(t, validRequest("A-1"))

		resp, err := f.service.Link(ctx, domain.LinkTransactionRequest{ReimbursementID: "A-1", TransactionID: "TX-1"})
		require.NoError(t, err)
		assert.Equal(t, "TX-1", resp.LinkedTransactionID)
		assert.Equal(t, "TX-1", f.get(t, "A-1").LinkedTransactionID)

		_, err = f.service.Link(ctx, domain.LinkTransactionRequest{ReimbursementID: "Z", TransactionID: "TX-1"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReimbursementService_AttachReceipt(t *testing.T) {
	t.Run("should store the receipt url", func(t *testing.T) {
		f := newFixture(t, Options{})
		f.create(t, validRequest("A-1"))

		_, err := f.service.AttachReceipt(context.Background(), "A-1", "https://bucket.s3.amazonaws.com/receipts/x.jpg")
		require.NoError(t, err)
		assert.Equal(t, "https://bucket.s3.amazonaws.com/receipts/x.jpg", f.get(t, "A-1").ReceiptImageURL)
	})
}

func TestReimbursementService_SyncNetCost(t *testing.T) {
	ctx := context.Background()

	t.Run("should fail without a configured endpoint", func(t *testing.T) {
		f := newFixture(t, Options{})

		_, err := f.service.SyncNetCost(ctx, domain.SyncNetCostRequest{TransactionID: "TX-1", AmountReimbursed: amount("10")})
		assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
	})

	t.Run("should require an amount and pass the result through", func(t *testing.T) {
		syncer := new(MockSyncer)
		f := newFixture(t, Options{Syncer: syncer})
		syncer.On("Configured").Return(true)
		syncer.On("SyncNetCost", mock.Anything, "TX-1", mock.Anything).Return(map[string]any{"success": true, "netCost": 5.0}, nil)

		_, err := f.service.SyncNetCost(ctx, domain.SyncNetCostRequest{TransactionID: "TX-1"})
		assert.ErrorIs(t, err, domain.ErrValidation)

		result, err := f.service.SyncNetCost(ctx, domain.SyncNetCostRequest{TransactionID: "TX-1", AmountReimbursed: amount("10")})
		require.NoError(t, err)
		assert.Equal(t, 5.0, result["netCost"])
	})
}
