package budgetquest

import (
	"Reimbursement-Tracker/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const actionUpdateNetCost = "updateTransactionNetCost"

type (
	// Client talks to the BudgetQuest web app. It only ever pushes net cost updates.
	Client interface {
		Configured() bool
		SyncNetCost(ctx context.Context, transactionID string, amountReimbursed decimal.Decimal) (map[string]any, error)
	}

	client struct {
		baseURL string
		timeout time.Duration
	}
)

func NewClient(baseURL string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

func (c *client) Configured() bool {
	return c.baseURL != ""
}

// SyncNetCost calls updateTransactionNetCost and returns the decoded JSON body unchanged.
func (c *client) SyncNetCost(ctx context.Context, transactionID string, amountReimbursed decimal.Decimal) (map[string]any, error) {
	if !c.Configured() {
		return nil, domain.NewError(domain.ErrConfigurationMissing, "BudgetQuest API URL not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("action", actionUpdateNetCost)
	query.Set("transactionId", transactionID)
	query.Set("amountReimbursed", amountReimbursed.String())

	agent := fiber.Get(c.baseURL + "/exec?" + query.Encode())
	agent.Timeout(c.timeout)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("call BudgetQuest: %w", errors.Join(errs...))
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode BudgetQuest response (status %d): %w", status, err)
	}
	return result, nil
}
