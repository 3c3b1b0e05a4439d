package main

import (
	"flag"
	"os"

	"grimm.is/wsforge/cmd"
	"grimm.is/wsforge/internal/brand"
	"grimm.is/wsforge/internal/i18n"
)

var printer = i18n.NewCLIPrinter()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		verbose := checkFlags.Bool("verbose", false, "Show instance summary and dry-run compiled units")
		checkFlags.BoolVar(verbose, "v", false, "Verbose (short)")
		offline := checkFlags.Bool("offline", false, "Assume ACME hosts are managed instead of reading the certificate store")
		checkFlags.Parse(os.Args[2:])

		configFile := brand.DefaultConfigFile()
		if len(checkFlags.Args()) > 0 {
			configFile = checkFlags.Arg(0)
		}

		if err := cmd.RunCheck(configFile, *verbose, *offline); err != nil {
			printer.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}

	case "build":
		buildFlags := flag.NewFlagSet("build", flag.ExitOnError)
		outDir := buildFlags.String("out", brand.GetUnitDir(), "Directory to write unit files into")
		buildFlags.StringVar(outDir, "o", brand.GetUnitDir(), "Output directory (short)")
		buildFlags.Parse(os.Args[2:])

		configFile := brand.DefaultConfigFile()
		if len(buildFlags.Args()) > 0 {
			configFile = buildFlags.Arg(0)
		}

		if err := cmd.RunBuild(configFile, *outDir); err != nil {
			printer.Fprintf(os.Stderr, "Build failed: %v\n", err)
			os.Exit(1)
		}

	case "show":
		showFlags := flag.NewFlagSet("show", flag.ExitOnError)
		format := showFlags.String("format", "yaml", "Output format: yaml, json, unit")
		showFlags.StringVar(format, "f", "yaml", "Output format (short)")
		unitName := showFlags.String("unit", "", "Show only the named unit")
		showFlags.StringVar(unitName, "u", "", "Unit name (short)")
		showFlags.Parse(os.Args[2:])

		configFile := brand.DefaultConfigFile()
		if len(showFlags.Args()) > 0 {
			configFile = showFlags.Arg(0)
		}

		if err := cmd.RunShow(configFile, *format, *unitName); err != nil {
			printer.Fprintf(os.Stderr, "Show failed: %v\n", err)
			os.Exit(1)
		}

	case "diff":
		diffFlags := flag.NewFlagSet("diff", flag.ExitOnError)
		unitDir := diffFlags.String("unit-dir", brand.GetUnitDir(), "Directory holding installed unit files")
		diffFlags.Parse(os.Args[2:])

		configFile := brand.DefaultConfigFile()
		if len(diffFlags.Args()) > 0 {
			configFile = diffFlags.Arg(0)
		}

		if err := cmd.RunDiff(configFile, *unitDir); err != nil {
			printer.Fprintf(os.Stderr, "Diff failed: %v\n", err)
			os.Exit(1)
		}

	case "install":
		installFlags := flag.NewFlagSet("install", flag.ExitOnError)
		unitDir := installFlags.String("unit-dir", brand.GetUnitDir(), "Directory to install unit files into")
		installFlags.Parse(os.Args[2:])

		configFile := brand.DefaultConfigFile()
		if len(installFlags.Args()) > 0 {
			configFile = installFlags.Arg(0)
		}

		if err := cmd.RunInstall(configFile, *unitDir); err != nil {
			printer.Fprintf(os.Stderr, "Install failed: %v\n", err)
			os.Exit(1)
		}

	case "uninstall":
		uninstallFlags := flag.NewFlagSet("uninstall", flag.ExitOnError)
		unitDir := uninstallFlags.String("unit-dir", brand.GetUnitDir(), "Directory holding installed unit files")
		uninstallFlags.Parse(os.Args[2:])

		configFile := brand.DefaultConfigFile()
		if len(uninstallFlags.Args()) > 0 {
			configFile = uninstallFlags.Arg(0)
		}

		if err := cmd.RunUninstall(configFile, *unitDir); err != nil {
			printer.Fprintf(os.Stderr, "Uninstall failed: %v\n", err)
			os.Exit(1)
		}

	case "version":
		printer.Printf("%s version %s\n", brand.Name, brand.Version)
		printer.Printf("  Build time: %s\n", brand.BuildTime)
		printer.Printf("  Git commit: %s\n", brand.GitCommit)

	case "help", "-h", "--help":
		printUsage()

	default:
		printer.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printer.Printf(`%s - %s

Usage:
  %s <command> [options] [config-file]

Commands:
  check      Validate configuration file
             Options: --verbose (-v), --offline
  build      Compile configuration and write unit files
             Options: --out (-o) <dir>
  show       Print compiled unit descriptors
             Options: --format (-f) yaml|json|unit, --unit (-u) <name>
  diff       Compare compiled units against installed unit files
             Options: --unit-dir <dir>
  install    Write unit files, reload systemd, enable and start units
             Options: --unit-dir <dir>
  uninstall  Stop, disable, and remove declared units
             Options: --unit-dir <dir>
  version    Print version information

The config file defaults to %s.

Examples:
  %s check -v /etc/wsforge/wsforge.hcl
  %s show -f unit
  %s install
`, brand.Name, brand.Description, brand.BinaryName, brand.DefaultConfigFile(),
		brand.BinaryName, brand.BinaryName, brand.BinaryName)
}
