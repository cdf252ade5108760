package pathfinding

import (
	"arpg-server/pkg/logger"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Логгер из окружения: LOG_LEVEL=debug показывает отказы поиска и сессии
	logger.Init()

	os.Exit(m.Run())
}
