package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"strings"
	"testing"
	"time"
)

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}
	return entry
}

func TestZerologAdapterFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewLogger(&buf, "engine", "debug")

	log.Info("evaluated",
		String("op", "pow"),
		Int("digits", 42),
		Bool("cached", true),
		Duration("elapsed", 1500*time.Millisecond),
		Field{Key: "ratio", Value: 0.5},
	)

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["component"] != "engine" || entry["message"] != "evaluated" || entry["level"] != "info" {
		t.Errorf("unexpected entry %v", entry)
	}
	if entry["op"] != "pow" || entry["digits"] != float64(42) || entry["cached"] != true || entry["ratio"] != 0.5 {
		t.Errorf("fields not encoded: %v", entry)
	}
	if _, ok := entry["elapsed"]; !ok {
		t.Error("duration field missing")
	}
}

func TestZerologAdapterLevels(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewLogger(&buf, "server", "info")

	log.Debug("hidden")
	log.Error("failed", errors.New("boom"), String("path", "/evaluate"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the error line, got %d lines: %q", len(lines), buf.String())
	}
	entry := decodeLine(t, lines[0])
	if entry["level"] != "error" || entry["error"] != "boom" || entry["path"] != "/evaluate" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewLogger(&buf, "app", "shouting")
	log.Debug("hidden")
	log.Printf("value %d", 7)
	log.Println("done")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "value 7") || !strings.Contains(out, "done") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestWithAddsFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewLogger(&buf, "engine", "info").With(String("request_id", "r-1"))
	log.Info("hello")
	if entry := decodeLine(t, strings.TrimSpace(buf.String())); entry["request_id"] != "r-1" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestConsoleLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "cli", "info", true)
	log.Info("ready", String("mode", "compare"))
	if out := buf.String(); !strings.Contains(out, "ready") || !strings.Contains(out, "mode=compare") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	var log Logger = NewStdLoggerAdapter(stdlog.New(&buf, "", 0))
	log.Info("plain")
	log.Info("with", String("k", "v"))
	log.Debug("dbg")
	log.Debug("dbg2", Int("n", 1))
	log.Error("bad", errors.New("boom"))
	log.Error("bad2", errors.New("boom2"), Int("n", 2))
	log.Printf("%s-%d", "x", 1)
	log.Println("y")

	for _, want := range []string{"[INFO] plain", "[INFO] with", "[DEBUG] dbg", "[DEBUG] dbg2", "[ERROR] bad: boom", "[ERROR] bad2: boom2", "x-1", "y"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q in %q", want, buf.String())
		}
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	Discard().Info("nothing")
}
