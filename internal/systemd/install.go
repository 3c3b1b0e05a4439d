package systemd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"grimm.is/wsforge/internal/clock"
	"grimm.is/wsforge/internal/logging"
	"grimm.is/wsforge/internal/unit"
)

// startTimeout bounds how long Install waits for a started unit to
// report active before giving up on it.
const startTimeout = 30 * time.Second

// pollInterval is the is-active polling cadence.
const pollInterval = 500 * time.Millisecond

// Installer writes rendered unit files into a unit directory and drives
// systemctl to load and start them.
type Installer struct {
	UnitDir string
	Ctl     *Systemctl
	Clock   clock.Clock
	logger  *logging.Logger
}

// NewInstaller returns an installer writing into unitDir. A nil runner
// selects the default systemctl runner.
func NewInstaller(unitDir string, runner CommandRunner) *Installer {
	return &Installer{
		UnitDir: unitDir,
		Ctl:     NewSystemctl(runner),
		Clock:   &clock.RealClock{},
		logger:  logging.Default().WithComponent("installer"),
	}
}

// WriteUnits renders every descriptor into the unit directory and
// returns the written paths. Files are replaced atomically via a
// temporary file so systemd never reads a half-written unit.
func (i *Installer) WriteUnits(units []unit.Descriptor) ([]string, error) {
	if err := os.MkdirAll(i.UnitDir, 0o755); err != nil {
		return nil, fmt.Errorf("create unit directory: %w", err)
	}

	paths := make([]string, 0, len(units))
	for idx := range units {
		d := &units[idx]
		path := filepath.Join(i.UnitDir, UnitFileName(d))
		if err := writeFileAtomic(path, []byte(Render(d))); err != nil {
			return nil, fmt.Errorf("write unit %s: %w", d.Name, err)
		}
		i.logger.Debug("Wrote unit file", "unit", d.Name, "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}

// Install writes the unit files, reloads systemd, enables boot-time
// units, and starts every unit, waiting for each to become active.
func (i *Installer) Install(units []unit.Descriptor) error {
	if _, err := i.WriteUnits(units); err != nil {
		return err
	}
	if err := i.Ctl.DaemonReload(); err != nil {
		return fmt.Errorf("daemon-reload: %w", err)
	}

	for idx := range units {
		d := &units[idx]
		if d.StartOnBoot {
			if err := i.Ctl.Enable(d.Name); err != nil {
				return fmt.Errorf("enable %s: %w", d.Name, err)
			}
		}
		if err := i.Ctl.Start(d.Name); err != nil {
			return fmt.Errorf("start %s: %w", d.Name, err)
		}
		if err := i.waitActive(d.Name); err != nil {
			return err
		}
		i.logger.Info("Unit active", "unit", d.Name)
	}
	return nil
}

// Remove stops and disables the named units and deletes their files,
// then reloads systemd. Missing files are not an error.
func (i *Installer) Remove(names []string) error {
	for _, name := range names {
		if err := i.Ctl.Stop(name); err != nil {
			i.logger.Warn("Stop failed", "unit", name, "error", err)
		}
		if err := i.Ctl.Disable(name); err != nil {
			i.logger.Warn("Disable failed", "unit", name, "error", err)
		}
		path := filepath.Join(i.UnitDir, name+".service")
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return i.Ctl.DaemonReload()
}

func (i *Installer) waitActive(name string) error {
	start := i.Clock.Now()
	for {
		if i.Ctl.IsActive(name) {
			return nil
		}
		if i.Clock.Since(start) >= startTimeout {
			return fmt.Errorf("unit %s did not become active within %s", name, startTimeout)
		}
		i.Clock.Sleep(pollInterval)
	}
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
