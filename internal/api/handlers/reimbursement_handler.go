package handlers

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/internal/api/presenters"
	"Reimbursement-Tracker/internal/middleware"
	"Reimbursement-Tracker/internal/utils/storage"
	"Reimbursement-Tracker/pkg/reimbursement"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	ReimbursementHandler interface {
		AddReimbursement(c *fiber.Ctx) error
		CheckDuplicate(c *fiber.Ctx) error
		UpdateStatus(c *fiber.Ctx) error
		ListReimbursements(c *fiber.Ctx) error
		GetSummary(c *fiber.Ctx) error
		LinkTransaction(c *fiber.Ctx) error
		SyncNetCost(c *fiber.Ctx) error
		InitializeSheet(c *fiber.Ctx) error
		UploadReceipt(c *fiber.Ctx) error
	}

	reimbursementHandler struct {
		reimbursementService reimbursement.ReimbursementService
		s3                   storage.AwsS3
		validator            *validator.Validate
		log                  logrus.FieldLogger
	}
)

// NewReimbursementHandler wires the claim endpoints. s3 may be nil, which
// disables receipt uploads.
func NewReimbursementHandler(
	reimbursementService reimbursement.ReimbursementService,
	s3 storage.AwsS3,
	validator *validator.Validate,
	log logrus.FieldLogger,
) ReimbursementHandler {
	return &reimbursementHandler{
		reimbursementService: reimbursementService,
		s3:                   s3,
		validator:            validator,
		log:                  log.WithField("component", "reimbursement_handler"),
	}
}

func (h *reimbursementHandler) AddReimbursement(c *fiber.Ctx) error {
	var req domain.CreateReimbursementRequest
	if err := middleware.BindPayload(c, &req); err != nil {
		return presenters.ErrorResponse(c, err)
	}

	res, err := h.reimbursementService.Create(c.UserContext(), req)
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, domain.MessageSuccessAddReimbursement)
}

func (h *reimbursementHandler) CheckDuplicate(c *fiber.Ctx) error {
	var req domain.CreateReimbursementRequest
	if err := middleware.BindPayload(c, &req); err != nil {
		return presenters.ErrorResponse(c, err)
	}

	res, err := h.reimbursementService.CheckDuplicate(c.UserContext(), req.Candidate())
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, "")
}

func (h *reimbursementHandler) UpdateStatus(c *fiber.Ctx) error {
	var req domain.UpdateReimbursementRequest
	if err := middleware.BindPayload(c, &req); err != nil {
		return presenters.ErrorResponse(c, err)
	}
	if id := c.Params("id"); id != "" {
		req.ReimbursementID = id
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, err)
	}

	res, err := h.reimbursementService.Update(c.UserContext(), req)
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res,
		domain.MessageSuccessUpdateReimbursement+": "+strings.Join(res.UpdatedFields, ", "))
}

func (h *reimbursementHandler) ListReimbursements(c *fiber.Ctx) error {
	var req domain.ListReimbursementsRequest
	if err := middleware.BindPayload(c, &req); err != nil {
		return presenters.ErrorResponse(c, err)
	}

	res, err := h.reimbursementService.List(c.UserContext(), req)
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, "")
}

func (h *reimbursementHandler) GetSummary(c *fiber.Ctx) error {
	var req domain.SummaryRequest
	if err := middleware.BindPayload(c, &req); err != nil {
		return presenters.ErrorResponse(c, err)
	}

	res, err := h.reimbursementService.Summarize(c.UserContext(), req)
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, "")
}

func (h *reimbursementHandler) LinkTransaction(c *fiber.Ctx) error {
	var req domain.LinkTransactionRequest
	if err := middleware.BindPayload(c, &req); err != nil {
		return presenters.ErrorResponse(c, err)
	}
	if id := c.Params("id"); id != "" {
		req.ReimbursementID = id
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, err)
	}

	res, err := h.reimbursementService.Link(c.UserContext(), req)
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, domain.MessageSuccessLinkReimbursement)
}

// SyncNetCost returns the BudgetQuest response as is.
func (h *reimbursementHandler) SyncNetCost(c *fiber.Ctx) error {
	var req domain.SyncNetCostRequest
	if err := middleware.BindPayload(c, &req); err != nil {
		return presenters.ErrorResponse(c, err)
	}

	res, err := h.reimbursementService.SyncNetCost(c.UserContext(), req)
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.RawResponse(c, res)
}

func (h *reimbursementHandler) InitializeSheet(c *fiber.Ctx) error {
	res, err := h.reimbursementService.InitializeSheet(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, domain.MessageSuccessInitSheet)
}

func (h *reimbursementHandler) UploadReceipt(c *fiber.Ctx) error {
	if h.s3 == nil {
		return presenters.ErrorResponse(c, domain.NewError(domain.ErrConfigurationMissing, "receipt storage is not configured"))
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		return presenters.ErrorResponse(c, domain.Validation("receipt file is required"))
	}
	id := c.FormValue("reimbursementId")

	name := id
	if name == "" {
		name = "receipt"
	}
	ctx := c.UserContext()
	objectKey, err := h.s3.UploadFile(ctx, name, file, "receipts", storage.AllowReceipt...)
	if err != nil {
		h.log.WithError(err).Warn(domain.MessageFailedUploadReceipt)
		return presenters.ErrorResponse(c, err)
	}
	url := h.s3.GetPublicLinkKey(objectKey)

	if id == "" {
		return presenters.SuccessResponse(c, domain.AttachReceiptResponse{ReceiptImageURL: url}, domain.MessageSuccessAttachReceipt)
	}

	res, err := h.reimbursementService.AttachReceipt(ctx, id, url)
	if err != nil {
		if delErr := h.s3.DeleteFile(ctx, objectKey); delErr != nil {
			h.log.WithError(delErr).WithField("objectKey", objectKey).Warn("orphaned receipt not removed")
		}
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, domain.MessageSuccessAttachReceipt)
}
