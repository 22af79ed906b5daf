package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetLogLevel("info")

	if !SetLogLevel("warn") {
		t.Fatalf("warn should be a known level")
	}
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 2") {
		t.Fatalf("missing warn line: %q", out)
	}
}

func TestUnknownLevelKeepsCurrent(t *testing.T) {
	SetLogLevel("error")
	defer SetLogLevel("info")
	if SetLogLevel("chatty") {
		t.Fatalf("unknown level accepted")
	}
	if GetLogLevel() != LevelError {
		t.Fatalf("level changed to %v", GetLogLevel())
	}
}

func TestPlainMessageKeepsPercent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLogLevel("debug")
	defer SetLogLevel("info")

	label := "100% viewers"
	Debug(label)
	if !strings.Contains(buf.String(), "[DEBUG] 100% viewers") {
		t.Fatalf("percent mangled: %q", buf.String())
	}

	buf.Reset()
	Infof("%s of %d", label, 7)
	if !strings.Contains(buf.String(), "[INFO] 100% viewers of 7") {
		t.Fatalf("formatted = %q", buf.String())
	}

	buf.Reset()
	SetLogLevel("warn")
	Info(label)
	if buf.Len() != 0 {
		t.Fatalf("info printed at warn level: %q", buf.String())
	}
}
