package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggersUsableWithoutSetup(t *testing.T) {
	require.NotNil(t, InfoLogger)
	require.NotNil(t, WarningLogger)
	require.NotNil(t, ErrorLogger)

	assert.NotPanics(t, func() {
		Info("info %d", 1)
		Warning("send failed: %v", errors.New("timeout"))
		Error("boom")
	})
}

func TestLevelPrefixes(t *testing.T) {
	var buf bytes.Buffer
	setOutput(&buf)
	defer setOutput(os.Stdout)

	Warning("send failed: %v", errors.New("timeout"))
	Error("record event: %v", errors.New("db down"))

	out := buf.String()
	assert.Contains(t, out, "WARNING: ")
	assert.Contains(t, out, "send failed: timeout")
	assert.Contains(t, out, "ERROR: ")
	assert.Contains(t, out, "record event: db down")
}

func TestSetupLoggerWritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() {
		_ = os.Chdir(wd)
		setOutput(os.Stdout)
	}()

	require.NoError(t, SetupLogger())
	Info("written after setup")

	logFile := filepath.Join(dir, "logs", time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written after setup")
}
