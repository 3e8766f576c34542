package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Expected default level to be Info, got %s", cfg.Level)
	}
	if cfg.Pretty != false {
		t.Error("Expected default pretty to be false")
	}
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name  string
		level LogLevel
		msg   string
	}{
		{"info_level", LevelInfo, "tour cache hydrated"},
		{"debug_level", LevelDebug, "primary transport attempt"},
		{"warn_level", LevelWarn, "falling back to JSON transport"},
		{"error_level", LevelError, "both transports failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := Setup(Config{Level: tt.level, Pretty: false, Output: buf})

			switch tt.level {
			case LevelDebug:
				logger.Debug().Msg(tt.msg)
			case LevelInfo:
				logger.Info().Msg(tt.msg)
			case LevelWarn:
				logger.Warn().Msg(tt.msg)
			case LevelError:
				logger.Error().Msg(tt.msg)
			}

			if !strings.Contains(buf.String(), tt.msg) {
				t.Errorf("Expected output to contain %q, got %q", tt.msg, buf.String())
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"invalid", zerolog.InfoLevel}, // Should default to Info
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Pretty: false, Output: buf})

	logger := NewLogger("bookings")
	logger.Info().Msg("booking reconciled")

	output := buf.String()
	if !strings.Contains(output, "bookings") {
		t.Errorf("Expected output to contain the component name, got %q", output)
	}
	if !strings.Contains(output, "booking reconciled") {
		t.Errorf("Expected output to contain the message, got %q", output)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelWarn, Pretty: false, Output: buf})

	logger := NewLogger("remote")

	// Below warn level, must not appear.
	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")

	// Warn level and above.
	logger.Warn().Msg("warn message")
	logger.Error().Msg("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("Filtered levels leaked into output: %q", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("Expected warn and error messages in output, got %q", output)
	}
}
