package debuglog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelOff, "OFF"},
	}

	for _, test := range tests {
		if got := test.level.String(); got != test.expected {
			t.Errorf("LogLevel.String() = %q, want %q", got, test.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"DEBUG", LevelDebug},
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"WARN", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"off", LevelOff},
		{"INVALID", LevelInfo},
		{"", LevelInfo},
	}

	for _, test := range tests {
		if got := ParseLogLevel(test.input); got != test.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", test.input, got, test.expected)
		}
	}
}

func TestSetupAndWrite(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "debuglog_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	logPath := filepath.Join(tempDir, "test.log")

	if setupErr := Setup(LevelDebug, logPath); setupErr != nil {
		t.Fatalf("Setup() error = %v", setupErr)
	}
	defer Close()

	Debugf("debug message %d", 1)
	Infof("info message")
	Warnf("warn message")
	Errorf("error message")

	if closeErr := Close(); closeErr != nil {
		t.Fatalf("Close() error = %v", closeErr)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"[DEBUG] debug message 1", "[INFO] info message", "[WARN] warn message", "[ERROR] error message"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("log file missing %q", want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "debuglog_filter_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	logPath := filepath.Join(tempDir, "filter.log")

	if setupErr := Setup(LevelWarn, logPath); setupErr != nil {
		t.Fatalf("Setup() error = %v", setupErr)
	}

	Debugf("should not appear")
	Infof("should not appear either")
	Warnf("should appear")

	if closeErr := Close(); closeErr != nil {
		t.Fatal(closeErr)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(string(content), "should not appear") {
		t.Error("messages below the configured level were written")
	}
	if !strings.Contains(string(content), "should appear") {
		t.Error("warn message missing")
	}
}

func TestSetupOff(t *testing.T) {
	if err := Setup(LevelOff); err != nil {
		t.Fatalf("Setup(LevelOff) error = %v", err)
	}
	if GetLevel() != LevelOff {
		t.Errorf("GetLevel() = %v, want LevelOff", GetLevel())
	}
	// Writing with logging off must not panic.
	Infof("dropped")
}
