package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewStdLogger()
	l.SetOutput(buf)
	l.Info("replica %s registered", "dbname=replica1")

	output := buf.String()
	if !strings.Contains(output, "INFO") || !strings.Contains(output, "replica dbname=replica1 registered") {
		t.Errorf("Unexpected text output: %s", output)
	}
}

func TestJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewStdLogger()
	l.SetOutput(buf)
	l.SetFormat(LogFormatJSON)
	l.Warn("probe timed out")

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("Failed to unmarshal JSON output: %v", err)
	}
	if data["level"] != "WARN" || data["msg"] != "probe timed out" {
		t.Errorf("Unexpected JSON output: %v", data)
	}
	if _, ok := data["time"]; !ok {
		t.Error("Missing time field in JSON output")
	}
}

func TestWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewStdLogger()
	l.SetOutput(buf)
	l.SetFormat(LogFormatJSON)
	l.WithFields(map[string]any{"replica": "dbname=replica2"}).Info("connected")

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("Failed to unmarshal JSON output: %v", err)
	}
	if data["replica"] != "dbname=replica2" {
		t.Errorf("Expected replica field, got: %v", data)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewStdLogger()
	l.SetOutput(buf)
	l.SetLevel(LogLevelError)

	l.Info("noise")
	l.Warn("noise")
	if buf.Len() != 0 {
		t.Errorf("Expected Info/Warn suppressed at Error level, got: %s", buf.String())
	}

	l.Error("broken")
	if !strings.Contains(buf.String(), "broken") {
		t.Errorf("Expected Error to pass the filter, got: %s", buf.String())
	}
}

func TestSQLLog(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewStdLogger()
	l.SetOutput(buf)
	l.SQL("SELECT * FROM users", 3*time.Millisecond)

	if !strings.Contains(buf.String(), "SELECT * FROM users") {
		t.Errorf("Expected SQL text in output, got: %s", buf.String())
	}
}
