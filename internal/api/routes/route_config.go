package routes

import (
	"Reimbursement-Tracker/internal/api/handlers"
	"Reimbursement-Tracker/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App                  *fiber.App
	ActionHandler        handlers.ActionHandler
	ReimbursementHandler handlers.ReimbursementHandler
	ReferenceHandler     handlers.ReferenceHandler
	Middleware           middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Exec()
	c.Reimbursements()
	c.ReferenceData()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", c.ActionHandler.Ping)
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// Exec is the action-dispatch endpoint used by the existing web clients.
func (c *Config) Exec() {
	exec := c.App.Group("/exec", c.Middleware.PayloadMiddleware())
	exec.Get("", c.ActionHandler.Dispatch)
	exec.Post("", c.ActionHandler.Dispatch)
}

func (c *Config) Reimbursements() {
	reimbursements := c.App.Group("/api/v1/reimbursements", c.Middleware.PayloadMiddleware())
	{
		reimbursements.Post("/init", c.ReimbursementHandler.InitializeSheet)
		reimbursements.Get("", c.ReimbursementHandler.ListReimbursements)
		reimbursements.Post("", c.ReimbursementHandler.AddReimbursement)
		reimbursements.Post("/check-duplicate", c.ReimbursementHandler.CheckDuplicate)
		reimbursements.Get("/summary", c.ReimbursementHandler.GetSummary)
		reimbursements.Patch("/:id", c.ReimbursementHandler.UpdateStatus)
		reimbursements.Post("/:id/link", c.ReimbursementHandler.LinkTransaction)
		reimbursements.Post("/sync-net-cost", c.ReimbursementHandler.SyncNetCost)
	}

	c.App.Post("/api/v1/receipts", c.ReimbursementHandler.UploadReceipt)
}

func (c *Config) ReferenceData() {
	references := c.App.Group("/api/v1/reference-data", c.Middleware.PayloadMiddleware())
	{
		references.Get("", c.ReferenceHandler.GetReferenceData)
		references.Post("", c.ReferenceHandler.AddReferenceItem)
		references.Post("/init", c.ReferenceHandler.InitReferenceData)
	}
}
