package common

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "liyu1981.xyz/cct-cloud-service/pkg/testing"
)

func TestLoggingCapture(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLogger()
	logger.Info("Test log message", zap.String("key", "value"))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Test log message") {
		t.Errorf("expected log output to contain message, got: %s", logOutput)
	}
}

func TestLoggingCaptureNamedWithCategory(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	GetLoggerWith(LoggerNameCCTCore, zap.String(LoggerFieldCCTCategory, LoggerCategoryLiveness)).
		Info("sweep finished")
	GetLoggerWith(LoggerNameCCTCore).Debug("below capture level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "cct_core", record["logger"])
	assert.Equal(t, "liveness", record["category"])
	assert.Equal(t, "sweep finished", record["msg"])
}

func TestLoggerNop(t *testing.T) {
	SetTestLoggerNop()
	assert.NotPanics(t, func() {
		GetLoggerWith(LoggerNameRestfulServer).Error("dropped")
	})
}

func TestConsoleLevel(t *testing.T) {
	// test binaries keep the console quiet whatever GO_ENV says
	t.Setenv(EnvKeyGoEnv, "development")
	assert.True(t, IsTestEnv())
	assert.True(t, IsDevelopment())
	assert.Equal(t, zap.WarnLevel, consoleLevel())
}
