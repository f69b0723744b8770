package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFunctionsCalled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetDebug(true)
	t.Cleanup(func() { SetDebug(false) })

	Info("info message %d", 1)
	Error("error message")
	Debug("debug message")

	output := buf.String()
	assert.Contains(t, output, "INFO: info message 1")
	assert.Contains(t, output, "ERROR: error message")
	assert.Contains(t, output, "DEBUG: debug message")
}

func TestDebugIsGated(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetDebug(false)

	Debug("hidden %s", "detail")
	Info("shown")

	output := buf.String()
	assert.NotContains(t, output, "hidden detail")
	assert.Contains(t, output, "INFO: shown")
}
