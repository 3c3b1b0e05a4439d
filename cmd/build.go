package cmd

import (
	"fmt"

	"grimm.is/wsforge/internal/acme"
	"grimm.is/wsforge/internal/brand"
	"grimm.is/wsforge/internal/config"
	"grimm.is/wsforge/internal/systemd"
	"grimm.is/wsforge/internal/unit"
)

// RunBuild compiles the configuration and writes the unit files into
// outDir without touching systemd. This is the offline half of install.
func RunBuild(configFile, outDir string) error {
	units, err := compileFile(configFile)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		Printer.Println("No enabled instances; nothing to build.")
		return nil
	}

	installer := systemd.NewInstaller(outDir, nil)
	paths, err := installer.WriteUnits(units)
	if err != nil {
		return err
	}
	for _, p := range paths {
		Printer.Printf("Wrote %s\n", p)
	}
	return nil
}

// compileFile loads, validates, and compiles a config file using the
// on-disk ACME certificate store.
func compileFile(configFile string) ([]unit.Descriptor, error) {
	if configFile == "" {
		configFile = brand.DefaultConfigFile()
	}
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	compiler := unit.NewCompiler(acme.NewDirProvider(brand.DefaultAcmeDir))
	units, err := compiler.CompileAll(cfg)
	if err != nil {
		return nil, fmt.Errorf("compile failed: %w", err)
	}
	return units, nil
}
