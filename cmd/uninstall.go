package cmd

import (
	"fmt"
	"os"

	"grimm.is/wsforge/internal/brand"
	"grimm.is/wsforge/internal/config"
	"grimm.is/wsforge/internal/systemd"
	"grimm.is/wsforge/internal/unit"
)

// RunUninstall stops and removes every unit declared in the
// configuration, enabled or not, so a disabled instance's stale unit is
// cleaned up too. Requires root.
func RunUninstall(configFile, unitDir string) error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("must run as root to remove units")
	}

	if configFile == "" {
		configFile = brand.DefaultConfigFile()
	}
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var names []string
	for i := range cfg.Servers {
		names = append(names, unit.ServerUnitName(cfg.Servers[i].Name))
	}
	for i := range cfg.Clients {
		names = append(names, unit.ClientUnitName(cfg.Clients[i].Name))
	}
	if len(names) == 0 {
		Printer.Println("No declared instances; nothing to remove.")
		return nil
	}

	installer := systemd.NewInstaller(unitDir, nil)
	if err := installer.Remove(names); err != nil {
		return err
	}

	Printer.Printf("Removed %d unit(s).\n", len(names))
	return nil
}
