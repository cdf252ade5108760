package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init пишет в stdout текстом с уровнем info, поэтому пакеты
// и тесты могут логировать без явной инициализации.
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Init настраивает глобальный логгер из переменных окружения.
// Вызывается один раз при старте приложения в main.go.
func Init() {
	InitWith(os.LookupEnv, os.Stdout)
}

// InitWith is Init with an explicit environment lookup and output sink.
func InitWith(lookup func(string) (string, bool), out io.Writer) {
	// 1. Уровень логирования. По умолчанию "info", для отладки "debug".
	logLevel, ok := lookup("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер: "json" для продакшена, текст для разработки.
	logFormat, _ := lookup("LOG_FORMAT")
	if strings.ToLower(logFormat) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(out)
}

// Component returns an entry tagged with the subsystem name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
