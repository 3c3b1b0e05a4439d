package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"grimm.is/wsforge/internal/systemd"
	"grimm.is/wsforge/internal/unit"
)

// RunShow compiles the configuration and prints the resulting unit
// descriptors, as YAML by default or JSON with format "json". A
// non-empty unitName restricts output to that unit.
func RunShow(configFile, format, unitName string) error {
	units, err := compileFile(configFile)
	if err != nil {
		return err
	}

	if unitName != "" {
		var match []unit.Descriptor
		for _, u := range units {
			if u.Name == unitName {
				match = append(match, u)
			}
		}
		if len(match) == 0 {
			return fmt.Errorf("no compiled unit named %q", unitName)
		}
		units = match
	}

	switch format {
	case "", "yaml":
		out, err := yaml.Marshal(units)
		if err != nil {
			return fmt.Errorf("failed to marshal descriptors: %w", err)
		}
		os.Stdout.Write(out)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(units); err != nil {
			return fmt.Errorf("failed to marshal descriptors: %w", err)
		}
	case "unit":
		for i := range units {
			if i > 0 {
				Printer.Println()
			}
			Printer.Printf("# %s\n", systemd.UnitFileName(&units[i]))
			os.Stdout.WriteString(systemd.Render(&units[i]))
		}
	default:
		return fmt.Errorf("unknown format %q (yaml, json, unit)", format)
	}
	return nil
}
