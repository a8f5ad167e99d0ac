package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// captureLogOutput reinitializes the logger to write to a buffer while f
// runs, then restores the default.
func captureLogOutput(level Level, format Format, f func()) string {
	var buf bytes.Buffer
	InitLogger(&buf, level, format)
	defer InitLogger(os.Stderr, LevelWarn, FormatText)
	f()
	return buf.String()
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		format  Format
		logFunc func()
		want    string
		empty   bool
	}{
		{"debug json", LevelDebug, FormatJSON, func() { Debug("dbg", "k", "v") }, `"msg":"dbg"`, false},
		{"info text", LevelInfo, FormatText, func() { Info("inf") }, "msg=inf", false},
		{"debug filtered at warn", LevelWarn, FormatText, func() { Debug("dbg") }, "", true},
		{"info filtered at error", LevelError, FormatJSON, func() { Info("inf") }, "", true},
		{"warn at warn", LevelWarn, FormatText, func() { Warn("wrn") }, "level=WARN", false},
		{"error at error", LevelError, FormatText, func() { Error("err") }, "level=ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureLogOutput(tt.level, tt.format, tt.logFunc)
			if tt.empty {
				if out != "" {
					t.Errorf("expected no output, got %q", out)
				}
				return
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected output to contain %q, got %q", tt.want, out)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]Level{
		"debug": LevelDebug, "INFO": LevelInfo, "Warn": LevelWarn, "error": LevelError,
	} {
		got, err := ParseLevel(s)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", s, got, err, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestSymbolEncoded(t *testing.T) {
	out := captureLogOutput(LevelDebug, FormatJSON, func() {
		SymbolEncoded("EAN-13", "9781565921979", "ABBABACCCCCC", 95, 59, "input", "1-56592-197-6")
	})

	var entry map[string]any
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("output isn't JSON: %v: %q", err, out)
	}
	for k, want := range map[string]any{
		"msg":     "symbol_encoded",
		"family":  "EAN-13",
		"number":  "9781565921979",
		"parity":  "ABBABACCCCCC",
		"modules": float64(95),
		"bars":    float64(59),
		"input":   "1-56592-197-6",
	} {
		if entry[k] != want {
			t.Errorf("%s = %v; want %v", k, entry[k], want)
		}
	}
}

func TestRequestFailed(t *testing.T) {
	out := captureLogOutput(LevelInfo, FormatText, func() {
		RequestFailed("12345", errors.New("bad identifier"))
	})
	for _, want := range []string{"request_failed", "input=12345", `error="bad identifier"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}
