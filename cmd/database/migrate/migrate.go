package migration

import (
	"Reimbursement-Tracker/entities"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB, log logrus.FieldLogger) error {
	if err := db.AutoMigrate(&entities.SheetRow{}); err != nil {
		return fmt.Errorf("migrate sheet rows: %w", err)
	}

	log.Info("database migration complete")
	return nil
}
