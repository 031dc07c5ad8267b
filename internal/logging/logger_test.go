package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"mixdown/internal/logging"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	componentLogger := logging.NewComponentLogger(logger, "export")
	componentLogger.Info("export started",
		logging.String("output", "/out/final.mp4"),
		logging.Bool("hardware", true),
	)

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, " INFO export: export started") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "output=/out/final.mp4") {
		t.Fatalf("missing attr: %q", line)
	}
	if !strings.Contains(line, "hardware=true") {
		t.Fatalf("missing bool attr: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("run", logging.Args(logging.Error(errors.New("exit status 1")))...)

	if !strings.Contains(buf.String(), `error="exit status 1"`) {
		t.Fatalf("expected quoted error value: %q", buf.String())
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("emitted")

	output := buf.String()
	if strings.Contains(output, "suppressed") {
		t.Fatalf("info record must be suppressed: %q", output)
	}
	if !strings.Contains(output, "emitted") {
		t.Fatalf("warn record must be emitted: %q", output)
	}
}

func TestJSONHandlerRemapsKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("hello", logging.Int("count", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if record["msg"] != "hello" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("missing ts key: %v", record)
	}
	if record["count"] != float64(3) {
		t.Fatalf("unexpected count: %v", record["count"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("dropped", logging.Error(nil))
}
