package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
)

func TestInitWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", FormatJSON)

	Infof("hello %s", "world")
	Debug("hidden")
	Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got error: %v", err)
	}
	if entry["msg"] != "hello world" {
		t.Errorf("Expected msg 'hello world', got %v", entry["msg"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("Expected level INFO, got %v", entry["level"])
	}
}

func TestInitWithWriter_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "debug", FormatConsole)

	Debug("visible")
	Sync()

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("Expected debug message in output, got %q", buf.String())
	}
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("Expected console output, got JSON: %q", buf.String())
	}
}

func TestInitWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "loud", FormatJSON)

	Debug("dropped")
	Warn("kept")
	Sync()

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("Expected debug message to be filtered, got %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("Expected warn message in output, got %q", out)
	}
}

func TestWith_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", FormatJSON)

	With("request_id", "abc").Info("sent")
	Sync()

	if !strings.Contains(buf.String(), `"request_id":"abc"`) {
		t.Errorf("Expected request_id field, got %q", buf.String())
	}
}

func TestInitWithWriter_ConcurrentWithLogging(t *testing.T) {
	InitWithWriter(io.Discard, "info", FormatJSON)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			InitWithWriter(io.Discard, "debug", FormatConsole)
		}()
		go func(i int) {
			defer wg.Done()
			Infof("message %d", i)
			With("n", i).Debug("scoped")
			Sync()
		}(i)
	}
	wg.Wait()

	if Sugar() == nil || GetLogger() == nil {
		t.Fatal("Expected an initialized logger")
	}
}
