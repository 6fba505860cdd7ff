package main

import (
	"Reimbursement-Tracker/cmd/config"
	migration "Reimbursement-Tracker/cmd/database/migrate"
	"Reimbursement-Tracker/internal/utils"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	var configPath string

	app := &cli.App{
		Name:  "reimbursement-tracker",
		Usage: "track reimbursement claims and sync net costs to BudgetQuest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				EnvVars:     []string{"CONFIG_PATH"},
				Value:       utils.DefaultConfigPath,
				Destination: &configPath,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the HTTP API",
				Action: func(c *cli.Context) error {
					return serve(c.Context, configPath)
				},
			},
			{
				Name:  "init",
				Usage: "create the Reimbursements and Reference Data sheets",
				Action: func(c *cli.Context) error {
					return initialize(c.Context, configPath)
				},
			},
			{
				Name:  "migrate",
				Usage: "run the database migration",
				Action: func(c *cli.Context) error {
					cfg, log, err := load(configPath)
					if err != nil {
						return err
					}
					db, err := config.ConnectDB(cfg)
					if err != nil {
						return err
					}
					return migration.Migrate(db, log)
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func load(path string) (*utils.Config, *logrus.Logger, error) {
	cfg, err := utils.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, config.NewLogger(cfg), nil
}

func serve(ctx context.Context, path string) error {
	cfg, log, err := load(path)
	if err != nil {
		return err
	}
	store, err := config.OpenStore(cfg, log)
	if err != nil {
		return err
	}
	services, err := config.NewServices(ctx, cfg, store, log)
	if err != nil {
		return err
	}
	app, err := config.NewApp(cfg, services, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdown); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.Infof("[main] starting server on :%s", cfg.AppPort)
	return app.Listen(":" + cfg.AppPort)
}

func initialize(ctx context.Context, path string) error {
	cfg, log, err := load(path)
	if err != nil {
		return err
	}
	store, err := config.OpenStore(cfg, log)
	if err != nil {
		return err
	}
	services, err := config.NewServices(ctx, cfg, store, log)
	if err != nil {
		return err
	}

	sheet, err := services.Reimbursement.InitializeSheet(ctx)
	if err != nil {
		return err
	}
	log.WithField("created", sheet.Created).Info("reimbursements sheet ready")

	reference, err := services.Reference.Initialize(ctx)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"created": reference.Created, "entries": reference.Entries}).Info(reference.Message)
	return nil
}
