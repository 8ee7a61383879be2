package logs

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// init нужен для тестов и утилит, которые не вызывают Init
func init() {
	Init("info", "text")
}

// Init настраивает глобальный логгер. Неизвестный уровень превращается в info.
func Init(level, format string) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Log = logger.WithField("service", "besties")
}
