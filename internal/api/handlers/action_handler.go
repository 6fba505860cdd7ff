package handlers

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/internal/api/presenters"
	"Reimbursement-Tracker/internal/middleware"
	"Reimbursement-Tracker/internal/utils"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
)

type (
	ActionHandler interface {
		// Dispatch routes ?action=<name> to the matching handler.
		Dispatch(c *fiber.Ctx) error
		Ping(c *fiber.Ctx) error
		GetConfig(c *fiber.Ctx) error
	}

	actionHandler struct {
		actions map[string]fiber.Handler
		config  *utils.Config
	}
)

func NewActionHandler(reimbursements ReimbursementHandler, references ReferenceHandler, config *utils.Config) ActionHandler {
	h := &actionHandler{config: config}
	h.actions = map[string]fiber.Handler{
		"ping":                 h.Ping,
		"getConfig":            h.GetConfig,
		"init":                 reimbursements.InitializeSheet,
		"addReimbursement":     reimbursements.AddReimbursement,
		"checkDuplicate":       reimbursements.CheckDuplicate,
		"updateStatus":         reimbursements.UpdateStatus,
		"listReimbursements":   reimbursements.ListReimbursements,
		"getSummary":           reimbursements.GetSummary,
		"linkToExternalSystem": reimbursements.LinkTransaction,
		"linkToBudgetQuest":    reimbursements.LinkTransaction,
		"syncNetCost":          reimbursements.SyncNetCost,
		"getReferenceData":     references.GetReferenceData,
		"addReferenceItem":     references.AddReferenceItem,
		"initReferenceData":    references.InitReferenceData,
	}
	return h
}

func (h *actionHandler) Dispatch(c *fiber.Ctx) error {
	action, _ := middleware.Payload(c)["action"].(string)
	if action == "" {
		return presenters.ErrorResponse(c, domain.Validation(domain.MessageNoAction))
	}

	handler, ok := h.actions[ActionName(action)]
	if !ok {
		return presenters.ErrorResponse(c, domain.Validation("%s: %s", domain.MessageUnknownAction, action))
	}
	return handler(c)
}

func (h *actionHandler) Ping(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, nil, domain.MessagePong)
}

func (h *actionHandler) GetConfig(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, fiber.Map{
		"spreadsheetId":             nullable(h.config.WorkbookID),
		"budgetQuestApiUrl":         nullable(h.config.BudgetQuestAPIURL),
		"hasSpreadsheet":            h.config.WorkbookID != "",
		"hasBudgetQuestIntegration": h.config.HasBudgetQuest(),
		"storeDriver":               h.config.StoreDriver,
		"hasReceiptStorage":         h.config.HasReceiptStorage(),
		"hasMailNotifications":      h.config.HasMailer(),
	}, "")
}

// ActionName strips the legacy "rt" prefix, so rtAddReimbursement and
// addReimbursement resolve to the same action.
func ActionName(action string) string {
	if len(action) > 2 && strings.HasPrefix(action, "rt") && unicode.IsUpper(rune(action[2])) {
		return strings.ToLower(action[2:3]) + action[3:]
	}
	return action
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
