package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"":       log.InfoLevel,
		"DEBUG":  log.DebugLevel,
		" warn ": log.WarnLevel,
		"error":  log.ErrorLevel,
		"trace":  log.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitLog("test", "warn")
	SetOutput(&buf)

	Info("hidden %d", 1)
	Warn("shown %d", 2)
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown 2") {
		t.Fatalf("warn line missing: %q", buf.String())
	}

	buf.Reset()
	SetLevel("debug")
	Debug("plain message without args")
	if !strings.Contains(buf.String(), "plain message without args") {
		t.Fatalf("debug line missing after SetLevel: %q", buf.String())
	}
}
