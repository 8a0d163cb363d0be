package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/oggyb/socialgraph/internal/config"
)

// captureOutput points the global logger at a buffer while f runs.
func captureOutput(t *testing.T, c Config, f func()) string {
	t.Helper()

	var buf bytes.Buffer
	c.Output = &buf
	Init(&c)
	t.Cleanup(func() { Init(&Config{Level: "info", Format: FormatText}) })

	f()
	return buf.String()
}

func TestLogger_TextFormat(t *testing.T) {
	out := captureOutput(t, Config{Level: "debug", Format: FormatText, Component: "test"}, func() {
		Info("hello feed", "key", "value")
	})

	if !strings.Contains(out, "hello feed") {
		t.Errorf("expected message, got: %s", out)
	}
	if !strings.Contains(out, "component=test") {
		t.Errorf("expected component field, got: %s", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("expected structured field, got: %s", out)
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	out := captureOutput(t, Config{Level: "info", Format: FormatJSON, Component: "json_test"}, func() {
		Info("json log", "foo", "bar")
	})

	if !strings.Contains(out, `"msg":"json log"`) {
		t.Errorf("expected JSON message, got: %s", out)
	}
	if !strings.Contains(out, `"component":"json_test"`) {
		t.Errorf("expected component in JSON, got: %s", out)
	}
	if !strings.Contains(out, `"foo":"bar"`) {
		t.Errorf("expected structured field in JSON, got: %s", out)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	out := captureOutput(t, Config{Level: "error", Format: FormatText}, func() {
		Info("should not appear")
		Error("should appear")
	})

	if strings.Contains(out, "should not appear") {
		t.Errorf("info log should not appear, got: %s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("error log should appear, got: %s", out)
	}
}

func TestLogger_WithAndForService(t *testing.T) {
	out := captureOutput(t, Config{Level: "debug", Format: FormatText}, func() {
		With("req_id", "123").Info("processing request")
		ForService("search").Debug("searching")
	})

	if !strings.Contains(out, "req_id=123") {
		t.Errorf("expected req_id field, got: %s", out)
	}
	if !strings.Contains(out, "service=search") {
		t.Errorf("expected service field, got: %s", out)
	}
}

func TestLogger_InitFromConfig(t *testing.T) {
	cfg := config.New()
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"
	cfg.Log.Component = "cfg_test"

	InitFromConfig(cfg)
	t.Cleanup(func() { Init(&Config{Level: "info", Format: FormatText}) })

	mu.RLock()
	got := globalConfig()
	mu.RUnlock()

	if got.Format != FormatJSON || got.Component != "cfg_test" || got.Level != "debug" {
		t.Errorf("expected config-based settings, got: %+v", got)
	}
}

func TestLogger_Context(t *testing.T) {
	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "r-1")
	fallback := Discard()

	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Errorf("expected fallback logger without a request logger")
	}

	ctx := NewContext(context.Background(), reqLog)
	FromContext(ctx, fallback).Info("handled")
	if !strings.Contains(buf.String(), "request_id=r-1") {
		t.Errorf("expected request-scoped field, got: %s", buf.String())
	}
}

func globalConfig() Config { return cfg }
