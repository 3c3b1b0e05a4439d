package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf})

	logger.Info("compiled unit", "unit", "wstunnel-server-vpn")

	out := buf.String()
	if !strings.Contains(out, "[info]") {
		t.Errorf("expected level marker in output: %q", out)
	}
	if !strings.Contains(out, "compiled unit") {
		t.Errorf("expected message in output: %q", out)
	}
	if !strings.Contains(out, "unit=wstunnel-server-vpn") {
		t.Errorf("expected attribute in output: %q", out)
	}
}

func TestConsoleHandlerComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf}).WithComponent("compiler")

	logger.Warn("skipping disabled instance", "instance", "vpn")

	out := buf.String()
	if !strings.Contains(out, "compiler: skipping disabled instance") {
		t.Errorf("expected component header in output: %q", out)
	}
	if strings.Contains(out, "component=") {
		t.Errorf("component must be promoted to header, not printed as attr: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn message should pass: %q", out)
	}

	logger.SetLevel(LevelDebug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevel did not lower the threshold")
	}
}

func TestQuotedAttrValues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf})

	logger.Info("msg", "cmd", "wstunnel server wss://0.0.0.0:443")

	if !strings.Contains(buf.String(), `cmd="wstunnel server wss://0.0.0.0:443"`) {
		t.Errorf("expected quoted attr value: %q", buf.String())
	}
}
