package cmd

import (
	"fmt"
	"os"

	"grimm.is/wsforge/internal/systemd"
)

// RunInstall compiles the configuration, writes the unit files into
// unitDir, reloads systemd, and enables and starts the units. Requires
// root.
func RunInstall(configFile, unitDir string) error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("must run as root to install units")
	}

	units, err := compileFile(configFile)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		Printer.Println("No enabled instances; nothing to install.")
		return nil
	}

	installer := systemd.NewInstaller(unitDir, nil)
	if err := installer.Install(units); err != nil {
		return err
	}

	Printer.Printf("Installed %d unit(s).\n", len(units))
	return nil
}
