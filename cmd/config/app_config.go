package config

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/internal/api/handlers"
	"Reimbursement-Tracker/internal/api/presenters"
	"Reimbursement-Tracker/internal/api/routes"
	"Reimbursement-Tracker/internal/middleware"
	"Reimbursement-Tracker/internal/utils"
	"Reimbursement-Tracker/internal/utils/mailing"
	"Reimbursement-Tracker/internal/utils/storage"
	"Reimbursement-Tracker/pkg/budgetquest"
	"Reimbursement-Tracker/pkg/reference"
	"Reimbursement-Tracker/pkg/reimbursement"
	"Reimbursement-Tracker/pkg/sheet"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Reimbursement reimbursement.ReimbursementService
	Reference     reference.ReferenceService
	S3            storage.AwsS3
}

// NewServices builds the service layer on top of a row store. BudgetQuest sync,
// mail notices and receipt storage are enabled only when configured.
func NewServices(ctx context.Context, config *utils.Config, store sheet.Store, log logrus.FieldLogger) (*Services, error) {
	var notifier reimbursement.Notifier
	if config.HasMailer() {
		mailer, err := mailing.NewMailer(mailing.LoadMailConfig(config))
		if err != nil {
			return nil, err
		}
		notifier = mailer
	}

	var s3 storage.AwsS3
	if config.HasReceiptStorage() {
		var err error
		if s3, err = storage.NewAwsS3(ctx, config); err != nil {
			return nil, err
		}
	}

	referenceService := reference.NewReferenceService(reference.NewReferenceRepository(store), log)
	reimbursementService := reimbursement.NewReimbursementService(
		reimbursement.NewReimbursementRepository(store),
		referenceService,
		reimbursement.Options{
			PageSize: config.ListPageSize,
			Syncer:   budgetquest.NewClient(config.BudgetQuestAPIURL, config.SyncTimeout()),
			Notifier: notifier,
		},
		log,
	)

	return &Services{
		Reimbursement: reimbursementService,
		Reference:     referenceService,
		S3:            s3,
	}, nil
}

func NewApp(config *utils.Config, services *Services, log logrus.FieldLogger) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:      "ReimbursementTracker",
		ErrorHandler: errorHandler(log),
	})
	middlewares := middleware.NewMiddleware("*")
	validator := utils.NewValidator()

	// setting up logging and limiter
	accessLog, err := openAccessLog(config.LogFile)
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     accessLog,
	}))
	if config.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        config.RateLimitMax,
			Expiration: 1 * time.Second,
			LimitReached: func(c *fiber.Ctx) error {
				return presenters.ErrorResponse(c, errors.New("too many requests"))
			},
		}))
	}

	// Handler
	reimbursementHandler := handlers.NewReimbursementHandler(services.Reimbursement, services.S3, validator, log)
	referenceHandler := handlers.NewReferenceHandler(services.Reference)
	actionHandler := handlers.NewActionHandler(reimbursementHandler, referenceHandler, config)

	// routes
	routesConfig := routes.Config{
		App:                  app,
		ActionHandler:        actionHandler,
		ReimbursementHandler: reimbursementHandler,
		ReferenceHandler:     referenceHandler,
		Middleware:           middlewares,
	}
	routesConfig.Setup()
	return app, nil
}

// errorHandler keeps the flat {success:false, error} shape for routing errors
// and recovered panics.
func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": false, "error": fe.Message})
		}
		log.WithError(err).WithField("path", c.Path()).Error("unhandled request error")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("%s: %s", domain.MessageFailedProcessRequest, err.Error()),
		})
	}
}

func openAccessLog(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	return file, nil
}
