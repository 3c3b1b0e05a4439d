package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"grimm.is/wsforge/internal/systemd"
)

// RunDiff compares the units compiled from the configuration against
// the unit files installed in unitDir. It returns an error when they
// differ so scripts can gate on the exit code.
func RunDiff(configFile, unitDir string) error {
	units, err := compileFile(configFile)
	if err != nil {
		return err
	}

	changed := 0
	for i := range units {
		d := &units[i]
		generated := systemd.Render(d)

		path := filepath.Join(unitDir, systemd.UnitFileName(d))
		installed := ""
		if data, err := os.ReadFile(path); err == nil {
			installed = string(data)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("read %s: %w", path, err)
		}

		if generated == installed {
			continue
		}
		changed++

		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(installed),
			B:        difflib.SplitLines(generated),
			FromFile: "Installed " + path,
			ToFile:   "Generated " + d.Name,
			Context:  3,
		}
		text, _ := difflib.GetUnifiedDiffString(diff)
		fmt.Print(text)
	}

	if changed == 0 {
		Printer.Println("No changes detected.")
		return nil
	}
	return fmt.Errorf("%d unit(s) differ from installed state", changed)
}
