package handlers

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/internal/api/presenters"
	"Reimbursement-Tracker/internal/middleware"
	"Reimbursement-Tracker/pkg/reference"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type (
	ReferenceHandler interface {
		GetReferenceData(c *fiber.Ctx) error
		AddReferenceItem(c *fiber.Ctx) error
		InitReferenceData(c *fiber.Ctx) error
	}

	referenceHandler struct {
		referenceService reference.ReferenceService
	}
)

func NewReferenceHandler(referenceService reference.ReferenceService) ReferenceHandler {
	return &referenceHandler{referenceService: referenceService}
}

func (h *referenceHandler) GetReferenceData(c *fiber.Ctx) error {
	var req domain.GetReferenceDataRequest
	if err := middleware.BindPayload(c, &req); err != nil {
		return presenters.ErrorResponse(c, err)
	}

	res, err := h.referenceService.GetEntries(c.UserContext(), req)
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, "")
}

func (h *referenceHandler) AddReferenceItem(c *fiber.Ctx) error {
	var req domain.AddReferenceItemRequest
	if err := middleware.BindPayload(c, &req); err != nil {
		return presenters.ErrorResponse(c, err)
	}

	item, err := h.referenceService.AddEntry(c.UserContext(), req)
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"item": item},
		fmt.Sprintf("%s %q %s", item.Type, item.Value, domain.MessageSuccessAddReference))
}

func (h *referenceHandler) InitReferenceData(c *fiber.Ctx) error {
	res, err := h.referenceService.Initialize(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, res.Message)
}
