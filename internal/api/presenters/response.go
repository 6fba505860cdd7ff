package presenters

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/internal/utils"
	"bytes"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// SuccessResponse writes data as a flat object with success set. Every
// response, failed or not, uses status 200 and the success flag.
func SuccessResponse(c *fiber.Ctx, data any, message string) error {
	body, err := flatten(data)
	if err != nil {
		return ErrorResponse(c, err)
	}
	body["success"] = true
	if message != "" {
		body["message"] = message
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// RawResponse passes a result through unchanged.
func RawResponse(c *fiber.Ctx, data map[string]any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

func ErrorResponse(c *fiber.Ctx, err error) error {
	body := fiber.Map{
		"success": false,
		"error":   ErrorMessage(err),
	}

	var dup *domain.DuplicateError
	if errors.As(err, &dup) {
		body["isDuplicate"] = true
		body["duplicates"] = dup.Matches
		body["message"] = domain.MessageDuplicateHint
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func ErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return utils.FormatValidationError(err)
	}
	return err.Error()
}

func flatten(data any) (map[string]any, error) {
	if data == nil {
		return map[string]any{}, nil
	}
	if m, ok := data.(fiber.Map); ok {
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	out := map[string]any{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
