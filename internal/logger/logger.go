package logger

import (
	"github.com/sirupsen/logrus"
)

// Log используется всеми пакетами после Init. До Init указывает на логгер по умолчанию.
var Log = logrus.New()

// Init инициализирует структурированный логгер.
func Init(level string, development bool) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if development {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		return
	}
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// WithComponent возвращает entry с полем component.
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
