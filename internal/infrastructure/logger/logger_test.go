package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildTagsServiceOnEveryLine(t *testing.T) {
	var buf bytes.Buffer
	log, err := build("info", "json", &buf)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	log.Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if line["service"] != serviceName {
		t.Errorf("service = %v, want %q", line["service"], serviceName)
	}
}

func TestBuildHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := build("warn", "json", &buf)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info line logged at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestBuildRejectsUnknownFormat(t *testing.T) {
	if _, err := build("info", "xml", &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}
