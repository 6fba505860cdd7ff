package middleware

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/internal/api/presenters"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const PayloadKey = "payload"

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		PayloadMiddleware() fiber.Handler
	}

	middleware struct {
		allowOrigins string
	}
)

func NewMiddleware(allowOrigins string) Middleware {
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	return &middleware{allowOrigins: allowOrigins}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: m.allowOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	})
}

// PayloadMiddleware merges the query string and a JSON body into one flat map
// stored under PayloadKey. Body keys win over query keys.
func (m *middleware) PayloadMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := map[string]any{}
		c.Context().QueryArgs().VisitAll(func(key, value []byte) {
			if len(value) > 0 {
				payload[string(key)] = string(value)
			}
		})

		body := bytes.TrimSpace(c.Body())
		if len(body) > 0 && !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			var fromBody map[string]any
			if err := json.Unmarshal(body, &fromBody); err != nil {
				return presenters.ErrorResponse(c, fmt.Errorf("%s: %w", domain.MessageFailedBodyRequest, err))
			}
			for k, v := range fromBody {
				payload[k] = v
			}
		}

		c.Locals(PayloadKey, payload)
		return c.Next()
	}
}

// Payload returns the merged payload, or an empty map when the middleware did not run.
func Payload(c *fiber.Ctx) map[string]any {
	if p, ok := c.Locals(PayloadKey).(map[string]any); ok {
		return p
	}
	return map[string]any{}
}

// BindPayload decodes the merged payload into a request struct. Blank string
// values count as absent, the same as empty query parameters.
func BindPayload(c *fiber.Ctx, out any) error {
	payload := map[string]any{}
	for k, v := range Payload(c) {
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		payload[k] = v
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.Validation("%s: %s", domain.MessageFailedBodyRequest, err.Error())
	}
	return nil
}
