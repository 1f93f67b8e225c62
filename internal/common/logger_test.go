package common

import (
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":        LogLevelInfo,
		"debug":   LogLevelDebug,
		"WARN":    LogLevelWarn,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
		"bogus":   LogLevelInfo,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogLevel_Conversions(t *testing.T) {
	if LogLevelDebug.ToSlogLevel() != slog.LevelDebug {
		t.Fatal("debug should map to slog debug")
	}
	if LogLevelError.String() != "error" {
		t.Fatalf("unexpected string: %s", LogLevelError.String())
	}
}

func TestLogger_WithContext(t *testing.T) {
	l := NewLogger(LogLevelDebug)
	if l.Level() != LogLevelDebug {
		t.Fatalf("unexpected level: %v", l.Level())
	}
	cl := l.WithComponent("client").WithRequest("GET", "http://localhost:8000/assets")
	if cl == nil || cl.Logger == nil {
		t.Fatal("derived logger must be usable")
	}
	// must not panic
	cl.Debug("request sent", "status", 200)
}

func TestDefaultLogger_Swap(t *testing.T) {
	orig := GetLogger()
	defer SetDefaultLogger(orig)

	l := NewJSONLogger(LogLevelWarn)
	SetDefaultLogger(l)
	if GetLogger() != l {
		t.Fatal("default logger not swapped")
	}
	LogWarn("warning message", "k", "v")
	LogInfo("suppressed at warn level")
}
