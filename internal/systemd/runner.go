package systemd

// CommandRunner abstracts systemctl invocation so installs can be
// exercised without a running systemd.
type CommandRunner interface {
	Run(name string, args ...string) error
	Output(name string, args ...string) ([]byte, error)
}

// RealCommandRunner executes actual commands.
// Methods are implemented in command_linux.go and command_stub.go.
type RealCommandRunner struct{}

// DefaultCommandRunner is the default command runner.
var DefaultCommandRunner CommandRunner = &RealCommandRunner{}

// Systemctl wraps the systemctl verbs the installer needs.
type Systemctl struct {
	runner CommandRunner
}

// NewSystemctl returns a Systemctl using the given runner. A nil runner
// selects the default.
func NewSystemctl(runner CommandRunner) *Systemctl {
	if runner == nil {
		runner = DefaultCommandRunner
	}
	return &Systemctl{runner: runner}
}

// DaemonReload reloads the systemd manager configuration.
func (s *Systemctl) DaemonReload() error {
	return s.runner.Run("systemctl", "daemon-reload")
}

// Enable enables a unit for boot-time start.
func (s *Systemctl) Enable(name string) error {
	return s.runner.Run("systemctl", "enable", name)
}

// Disable removes a unit's boot-time start.
func (s *Systemctl) Disable(name string) error {
	return s.runner.Run("systemctl", "disable", name)
}

// Start starts a unit.
func (s *Systemctl) Start(name string) error {
	return s.runner.Run("systemctl", "start", name)
}

// Stop stops a unit.
func (s *Systemctl) Stop(name string) error {
	return s.runner.Run("systemctl", "stop", name)
}

// Restart restarts a unit.
func (s *Systemctl) Restart(name string) error {
	return s.runner.Run("systemctl", "restart", name)
}

// IsActive reports whether a unit is in the active state.
func (s *Systemctl) IsActive(name string) bool {
	out, err := s.runner.Output("systemctl", "is-active", name)
	if err != nil {
		return false
	}
	return string(out) == "active\n" || string(out) == "active"
}
