package cmd

import (
	"testing"
)

func TestRunShow_Formats(t *testing.T) {
	configPath := writeConfig(t, diffTestConfig)

	for _, format := range []string{"", "yaml", "json", "unit"} {
		if err := RunShow(configPath, format, ""); err != nil {
			t.Errorf("RunShow(format=%q) error = %v", format, err)
		}
	}
}

func TestRunShow_UnknownFormat(t *testing.T) {
	configPath := writeConfig(t, diffTestConfig)

	if err := RunShow(configPath, "toml", ""); err == nil {
		t.Error("RunShow() error = nil, want unknown format error")
	}
}

func TestRunShow_UnitFilter(t *testing.T) {
	configPath := writeConfig(t, diffTestConfig)

	if err := RunShow(configPath, "yaml", "wstunnel-client-home"); err != nil {
		t.Errorf("RunShow() error = %v", err)
	}
	if err := RunShow(configPath, "yaml", "wstunnel-client-nope"); err == nil {
		t.Error("RunShow() error = nil, want missing unit error")
	}
}
