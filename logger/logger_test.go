package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := &Config{Level: level, Format: "json", Writer: &buf}
	return New(cfg, "iterator"), &buf
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.component != "test" {
		t.Errorf("expected component 'test', got %q", l.component)
	}
}

func TestNew_JSONWritesComponent(t *testing.T) {
	l, buf := newBufferLogger(t, "debug")
	l.Debug("cycle cached", Fields("size", 4))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if entry["component"] != "iterator" {
		t.Errorf("expected component=iterator, got %v", entry["component"])
	}
	if entry["message"] != "cycle cached" {
		t.Errorf("unexpected message %v", entry["message"])
	}
	if entry["size"] != float64(4) {
		t.Errorf("expected size=4, got %v", entry["size"])
	}
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug should be filtered at info, got %q", buf.String())
	}
	if l.DebugEnabled() {
		t.Error("DebugEnabled should be false at info level")
	}
	l.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected info output, got %q", buf.String())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: "json"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("ITERX_LOG_LEVEL", "debug")
	os.Setenv("ITERX_LOG_FORMAT", "json")
	defer os.Unsetenv("ITERX_LOG_LEVEL")
	defer os.Unsetenv("ITERX_LOG_FORMAT")

	if l := NewFromEnv("env"); l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestWithFieldsAndError(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithFields(map[string]interface{}{"chain_id": "c1"}).WithError(errors.New("boom")).Error("failed")
	out := buf.String()
	for _, want := range []string{`"chain_id":"c1"`, `"error":"boom"`, `"level":"error"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %q", want, out)
		}
	}
}

func TestWithComponent(t *testing.T) {
	l := NewDefault("root")
	cl := l.WithComponent("tee")
	if cl.component != "tee" {
		t.Errorf("expected component 'tee', got %q", cl.component)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("dropped")
	if l.DebugEnabled() {
		t.Error("nop logger should not enable debug")
	}
}

func TestInitAndGlobal(t *testing.T) {
	var buf bytes.Buffer
	Init(&Config{Level: "debug", Format: "json", Writer: &buf})
	defer Init(&Config{Level: "debug", Format: "json", Writer: &bytes.Buffer{}})

	Debug("global debug")
	if !strings.Contains(buf.String(), "global debug") {
		t.Errorf("expected global logger output, got %q", buf.String())
	}
	if !Get("iterator").DebugEnabled() {
		t.Error("named logger should inherit debug level")
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	prev := globalLogger
	defer func() { globalLogger = prev }()
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := NewDefault("custom")
	Register("my-component", l)
	if got := Get("my-component"); got != l {
		t.Error("expected Get to return the registered logger")
	}
}

func TestGetCachesDerivedLogger(t *testing.T) {
	a := Get("derived")
	b := Get("derived")
	if a != b {
		t.Error("expected Get to cache derived loggers")
	}
	SetGlobalLogger(NewDefault(""))
	if c := Get("derived"); c == a {
		t.Error("expected registry reset after SetGlobalLogger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"disabled", Config{Level: "disabled", Format: "text"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: "info", Format: "console", NoColor: true, Writer: &buf}, "cli")
	l.Info("hello")
	if !strings.Contains(buf.String(), "[INF]") {
		t.Errorf("expected [INF] tag, got %q", buf.String())
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{"key-value pairs", []interface{}{"op", "take", "n", 3}, map[string]interface{}{"op": "take", "n": 3}},
		{"odd count drops tail", []interface{}{"op", "take", "dangling"}, map[string]interface{}{"op": "take"}},
		{"non-string key skipped", []interface{}{1, "x", "k", "v"}, map[string]interface{}{"k": "v"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Fields(tc.input...)
			if len(got) != len(tc.expected) {
				t.Fatalf("got %v, want %v", got, tc.expected)
			}
			for k, v := range tc.expected {
				if got[k] != v {
					t.Errorf("key %q: got %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestErrorFields(t *testing.T) {
	f := ErrorFields("reduce", errors.New("empty"))
	if f[FieldOperation] != "reduce" || f[FieldError] != "empty" {
		t.Errorf("unexpected fields %v", f)
	}
	m := MergeWithError(nil, errors.New("x"))
	if m[FieldError] != "x" {
		t.Errorf("unexpected fields %v", m)
	}
}
