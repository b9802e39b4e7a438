package logger

import (
	"context"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}
}

// Basic logging test (slog-backed)
func TestLoggerBasic(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil")
	}

	ctx := context.Background()
	logger.Info(ctx, "test message", String("k", "v"))
	logger.Warn(ctx, "test warning", Int("n", 1), Float64("f", 1.5))
}

func TestLoggerNamed(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	ctx := context.Background()
	namedLogger.Info(ctx, "test message")
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	for _, level := range []string{"debug", "info", "warn", "error"} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("failed to set level %q: %v", level, err)
		}
	}
	if err := SetLevelString("nonsense"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
