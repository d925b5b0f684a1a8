package observability

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies that parseLogLevel correctly parses log level
// strings from environment variables, handling case-insensitivity and whitespace.
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		env    string
		expect zapcore.Level
	}{
		{"", zap.InfoLevel},
		{"INFO", zap.InfoLevel},
		{"DEBUG", zap.DebugLevel},
		{"WARN", zap.WarnLevel},
		{"ERROR", zap.ErrorLevel},
		{"debug", zap.DebugLevel},
		{"  warn  ", zap.WarnLevel},
		{"invalid", zap.InfoLevel},
	}
	for _, tt := range tests {
		level := parseLogLevel(tt.env)
		if got := level.Level(); got != tt.expect {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.env, got, tt.expect)
		}
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger()
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	if logger == nil {
		t.Fatal("NewLogger() returned nil logger")
	}

	logger.Info("test message")
	_ = logger.Sync() // best-effort; can fail on stderr in test env
}

func TestNewLoggerConfig_WritesToStderr(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	config := newLoggerConfig()

	if !reflect.DeepEqual(config.OutputPaths, []string{"stderr"}) {
		t.Errorf("OutputPaths = %v, want [stderr] so stdout carries only summaries", config.OutputPaths)
	}
	if !reflect.DeepEqual(config.ErrorOutputPaths, []string{"stderr"}) {
		t.Errorf("ErrorOutputPaths = %v, want [stderr]", config.ErrorOutputPaths)
	}
	if config.EncoderConfig.TimeKey != "timestamp" {
		t.Errorf("TimeKey = %q, want timestamp", config.EncoderConfig.TimeKey)
	}
	if config.Level.Level() != zap.DebugLevel {
		t.Errorf("Level = %v, want debug from LOG_LEVEL", config.Level.Level())
	}
}
