package config

import (
	migration "Reimbursement-Tracker/cmd/database/migrate"
	"Reimbursement-Tracker/internal/utils"
	"Reimbursement-Tracker/pkg/sheet"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

func ConnectDB(config *utils.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}

// OpenStore returns the row store selected by STORE_DRIVER. The postgres
// store is migrated before use.
func OpenStore(config *utils.Config, log logrus.FieldLogger) (sheet.Store, error) {
	switch config.StoreDriver {
	case StoreDriverMemory:
		log.Warn("using the in-memory row store, data is lost on restart")
		return sheet.NewMemoryStore(), nil
	case StoreDriverPostgres, "":
		db, err := ConnectDB(config)
		if err != nil {
			return nil, err
		}
		if err := migration.Migrate(db, log); err != nil {
			return nil, err
		}
		return sheet.NewGormStore(db, config.WorkbookID), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (use %s or %s)", config.StoreDriver, StoreDriverMemory, StoreDriverPostgres)
	}
}
