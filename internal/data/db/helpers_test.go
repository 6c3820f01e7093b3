package db

import (
	"testing"

	"github.com/anish9011/plant/internal/platform/logger"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.NewNop()
}
