package config

import (
	"Reimbursement-Tracker/internal/utils"
	"os"

	"github.com/sirupsen/logrus"
)

func NewLogger(config *utils.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		log.WithField("level", config.LogLevel).Warn("unknown LOG_LEVEL, using info")
	}
	log.SetLevel(level)
	return log
}
