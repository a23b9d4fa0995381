package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestGetEnvDefaults(t *testing.T) {
	t.Setenv("QUILL_TEST_STR", "hello")
	if got := GetEnv("QUILL_TEST_STR", "fallback"); got != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
	if got := GetEnv("QUILL_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("QUILL_TEST_INT", "42")
	if got := GetEnvInt("QUILL_TEST_INT", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	t.Setenv("QUILL_TEST_INT", "not-a-number")
	if got := GetEnvInt("QUILL_TEST_INT", 7); got != 7 {
		t.Fatalf("expected default on parse failure, got %d", got)
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("QUILL_TEST_FLOAT", "0.4")
	if got := GetEnvFloat("QUILL_TEST_FLOAT", 0.7); got != 0.4 {
		t.Fatalf("expected 0.4, got %v", got)
	}
	if got := GetEnvFloat("QUILL_TEST_FLOAT_MISSING", 0.7); got != 0.7 {
		t.Fatalf("expected default, got %v", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("QUILL_TEST_DUR", "90s")
	if got := GetEnvDuration("QUILL_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
	t.Setenv("QUILL_TEST_DUR", "nonsense")
	if got := GetEnvDuration("QUILL_TEST_DUR", time.Minute); got != time.Minute {
		t.Fatalf("expected default on parse failure, got %v", got)
	}
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	if got := GetLogLevel(); got != logrus.WarnLevel {
		t.Fatalf("expected warn level, got %v", got)
	}
	t.Setenv("LOG_LEVEL", "")
	if got := GetLogLevel(); got != logrus.InfoLevel {
		t.Fatalf("expected info default, got %v", got)
	}
}
