package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunBuild_WritesUnitFiles(t *testing.T) {
	configPath := writeConfig(t, `
server "vpn" {
    listen {
        port = 8080
    }
    tls_certificate = "/c.pem"
    tls_key         = "/k.pem"
}
client "home" {
    connect_to      = "wss://vpn.example.com:8080"
    local_to_remote = ["tcp://1212:localhost:1212"]
}
`)
	outDir := t.TempDir()

	if err := RunBuild(configPath, outDir); err != nil {
		t.Fatalf("RunBuild() error = %v", err)
	}

	serverUnit := filepath.Join(outDir, "wstunnel-server-vpn.service")
	data, err := os.ReadFile(serverUnit)
	if err != nil {
		t.Fatalf("expected unit file %s: %v", serverUnit, err)
	}
	if !strings.Contains(string(data), "ExecStart=/usr/bin/wstunnel server") {
		t.Errorf("server unit missing ExecStart, got:\n%s", data)
	}

	if _, err := os.Stat(filepath.Join(outDir, "wstunnel-client-home.service")); err != nil {
		t.Errorf("expected client unit file: %v", err)
	}
}

func TestRunBuild_SkipsDisabled(t *testing.T) {
	configPath := writeConfig(t, `
client "off" {
    enabled         = false
    connect_to      = "wss://h:443"
    local_to_remote = ["tcp://1:a:1"]
}
`)
	outDir := t.TempDir()

	if err := RunBuild(configPath, outDir); err != nil {
		t.Fatalf("RunBuild() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "wstunnel-client-off.service")); !os.IsNotExist(err) {
		t.Errorf("disabled instance should not produce a unit file")
	}
}

func TestRunBuild_InvalidConfig(t *testing.T) {
	configPath := writeConfig(t, `
client "home" {
    connect_to = "wss://h:443"
}
`)

	if err := RunBuild(configPath, t.TempDir()); err == nil {
		t.Error("RunBuild() error = nil, want validation error (no tunnel directions)")
	}
}
