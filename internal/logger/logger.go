package logger

import (
	"github.com/sirupsen/logrus"
)

// Log — общий структурированный логгер приложения.
var Log *logrus.Logger

// Init инициализирует логгер. По умолчанию JSON формат для production,
// текстовый включается отдельно через SetTextFormatter.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}
