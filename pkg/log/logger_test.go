package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"DEBUG", DEBUG},
		{"debug", DEBUG},
		{"INFO", INFO},
		{"WARN", WARN},
		{"WARNING", WARN},
		{"ERROR", ERROR},
		{"bogus", INFO},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New("test")
	l.SetWriter(&buf)
	l.SetColorize(false)
	l.SetLevel(WARN)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below WARN not filtered:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("messages at or above WARN missing:\n%s", out)
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New("engine")
	l.SetWriter(&buf)
	l.SetColorize(false)

	l.Info("scaled %d lines", 42)

	out := buf.String()
	if !strings.Contains(out, "[INFO ]") {
		t.Errorf("level marker missing: %s", out)
	}
	if !strings.Contains(out, "engine: scaled 42 lines") {
		t.Errorf("prefix or formatted message missing: %s", out)
	}
}

func TestTextFormatFields(t *testing.T) {
	var buf bytes.Buffer
	l := New("test")
	l.SetWriter(&buf)
	l.SetColorize(false)

	l.WithFields(INFO, Fields{"lines": 10, "file": "a.gcode"}, "done")

	out := buf.String()
	// Fields are sorted by key.
	if !strings.Contains(out, "{file=a.gcode, lines=10}") {
		t.Errorf("fields missing or unsorted: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New("cli")
	l.SetWriter(&buf)
	l.SetFormat(FormatJSON)

	l.Warn("fallback to stdin")

	var entry struct {
		Level   string `json:"level"`
		Logger  string `json:"logger"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry.Level != "WARN" || entry.Logger != "cli" || entry.Message != "fallback to stdin" {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New("parent")
	l.SetWriter(&buf)
	l.SetColorize(false)
	l.SetLevel(DEBUG)

	child := l.WithPrefix("child")
	child.Debug("hello")

	out := buf.String()
	if !strings.Contains(out, "child: hello") {
		t.Errorf("child prefix missing: %s", out)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	t.Setenv("FLOW_SCALE_LOG_LEVEL", "DEBUG")
	t.Setenv("FLOW_SCALE_LOG_FORMAT", "json")
	t.Setenv("NO_COLOR", "1")

	l := New("test")
	ConfigureFromEnv(l)

	if l.level != DEBUG {
		t.Errorf("level from env: %v", l.level)
	}
	if l.outFormat != FormatJSON {
		t.Errorf("format from env: %v", l.outFormat)
	}
	if l.colorize {
		t.Error("NO_COLOR should disable colors")
	}
}
