package cmd

import (
	"fmt"
	"strings"

	"grimm.is/wsforge/internal/acme"
	"grimm.is/wsforge/internal/brand"
	"grimm.is/wsforge/internal/config"
	"grimm.is/wsforge/internal/unit"
)

// RunCheck validates the configuration file syntax and semantics.
// With verbose set it also dry-compiles every enabled instance and
// prints the resulting commands. Offline mode assumes every ACME host
// is managed instead of consulting the certificate store.
func RunCheck(configFile string, verbose, offline bool) error {
	if len(configFile) == 0 {
		return fmt.Errorf("usage: %s check [-v] <config-file>\nExample: %s check -v %s", brand.BinaryName, brand.BinaryName, brand.DefaultConfigFile())
	}

	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	if errs := cfg.Validate(); errs.HasErrors() {
		return fmt.Errorf("configuration invalid: %w", errs)
	}

	Printer.Printf("Configuration valid!\n")
	Printer.Printf("Schema Version: %s\n", cfg.SchemaVersion)
	Printer.Printf("Servers: %d\n", len(cfg.Servers))
	Printer.Printf("Clients: %d\n", len(cfg.Clients))

	if verbose {
		Printer.Println()
		printSummary(cfg)

		Printer.Println("\n[DRY RUN] Compiled Units:")
		var provider acme.Provider = acme.NewDirProvider(brand.DefaultAcmeDir)
		if offline {
			provider = &acme.PathProvider{Base: brand.DefaultAcmeDir}
		}
		compiler := unit.NewCompiler(provider)
		units, err := compiler.CompileAll(cfg)
		if err != nil {
			return fmt.Errorf("dry-run compile failed: %w", err)
		}
		for _, u := range units {
			Printer.Printf("\n%s\n", u.Name)
			Printer.Printf("  ExecStart: %s\n", strings.Join(u.Command, " "))
			if len(u.Capabilities) > 0 {
				Printer.Printf("  Capabilities: %s\n", strings.Join(u.Capabilities, " "))
			}
			if len(u.SupplementaryGroups) > 0 {
				Printer.Printf("  Groups: %s\n", strings.Join(u.SupplementaryGroups, " "))
			}
			Printer.Printf("  StartOnBoot: %t\n", u.StartOnBoot)
		}
	}

	return nil
}

func printSummary(cfg *config.Config) {
	Printer.Println("--- Declared Instances ---")
	for i := range cfg.Servers {
		s := &cfg.Servers[i]
		state := "enabled"
		if !s.IsEnabled() {
			state = "disabled"
		}
		Printer.Printf("server %q: %s, listen %s, %s\n", s.Name, state, s.ListenEndpoint().URL(s.Scheme()), tlsSummary(s))
	}
	for i := range cfg.Clients {
		c := &cfg.Clients[i]
		state := "enabled"
		if !c.IsEnabled() {
			state = "disabled"
		}
		Printer.Printf("client %q: %s, connect %s, tunnels %d\n", c.Name, state, c.ConnectTo, len(c.LocalToRemote)+len(c.RemoteToLocal))
	}
}

func tlsSummary(s *config.ServerInstance) string {
	switch {
	case !s.UseHTTPS():
		return "plaintext"
	case s.ACMEHost != "":
		return "acme host " + s.ACMEHost
	case s.TLSCertificate != "":
		return "manual pair"
	default:
		return "built-in certificate"
	}
}
