package unit

import (
	"fmt"
	"sort"
	"strconv"

	"grimm.is/wsforge/internal/acme"
	"grimm.is/wsforge/internal/brand"
	"grimm.is/wsforge/internal/config"
)

// logLevelEnv is the tunnel binary's logging switch.
const logLevelEnv = "RUST_LOG"

// ServerUnitName returns the unit name for a server instance.
func ServerUnitName(name string) string {
	return fmt.Sprintf("%s-server-%s", brand.UnitPrefix, name)
}

// ClientUnitName returns the unit name for a client instance.
func ClientUnitName(name string) string {
	return fmt.Sprintf("%s-client-%s", brand.UnitPrefix, name)
}

// Compiler turns a validated config snapshot into unit descriptors. The
// ACME provider is the only external lookup; everything else is pure.
type Compiler struct {
	ACME acme.Provider
}

// NewCompiler returns a compiler using the given certificate provider.
func NewCompiler(provider acme.Provider) *Compiler {
	return &Compiler{ACME: provider}
}

// CompileAll validates the whole config and compiles every enabled
// instance, servers first, each role in declaration order. Any failure
// aborts the run before a single descriptor is returned: no partially
// compiled set is ever emitted.
func (c *Compiler) CompileAll(cfg *config.Config) ([]Descriptor, error) {
	if errs := cfg.Validate(); errs.HasErrors() {
		return nil, errs
	}

	var units []Descriptor
	for i := range cfg.Servers {
		s := &cfg.Servers[i]
		if !s.IsEnabled() {
			continue
		}
		d, err := c.CompileServer(s)
		if err != nil {
			return nil, err
		}
		units = append(units, d)
	}
	for i := range cfg.Clients {
		cl := &cfg.Clients[i]
		if !cl.IsEnabled() {
			continue
		}
		d, err := c.CompileClient(cl)
		if err != nil {
			return nil, err
		}
		units = append(units, d)
	}
	return units, nil
}

// CompileServer compiles one server instance. Global validation must
// have passed; apart from the ACME lookup every branch is total.
func (c *Compiler) CompileServer(s *config.ServerInstance) (Descriptor, error) {
	var flags []Flag
	var groups []string

	if s.UseHTTPS() {
		mat, err := ResolveTLS(s, c.ACME)
		if err != nil {
			return Descriptor{}, err
		}
		flags = append(flags,
			ValueFlag("tls-certificate", mat.CertPath),
			ValueFlag("tls-private-key", mat.KeyPath),
		)
		if mat.Group != "" {
			groups = append(groups, mat.Group)
		}
	}

	restrict, err := s.RestrictEndpoints()
	if err != nil {
		// Unreachable after validation; surface it anyway.
		return Descriptor{}, fmt.Errorf("server %q: %w", s.Name, err)
	}
	targets := make([]string, len(restrict))
	for i, ep := range restrict {
		targets[i] = ep.String()
	}
	flags = append(flags,
		RepeatedFlag("restrict-to", targets),
		pingFlag(s.PingIntervalSec),
	)

	listen := s.ListenEndpoint()
	return Descriptor{
		Name:                ServerUnitName(s.Name),
		Description:         fmt.Sprintf("WebSocket tunnel server %s", s.Name),
		Command:             BuildCommand(s.Binary, "server", flags, s.ExtraArgs, listen.URL(s.Scheme())),
		Environment:         environment(s.LogLevel),
		EnvironmentFile:     s.EnvironmentFile,
		Restart:             DefaultRestartPolicy,
		Capabilities:        ServerCapabilities(s),
		Sandbox:             Hardened,
		SupplementaryGroups: groups,
		StartOnBoot:         s.ShouldAutoStart(),
	}, nil
}

// CompileClient compiles one client instance. Total given validated
// input.
func (c *Compiler) CompileClient(cl *config.ClientInstance) (Descriptor, error) {
	flags := []Flag{
		RepeatedFlag("local-to-remote", cl.LocalToRemote),
		RepeatedFlag("remote-to-local", cl.RemoteToLocal),
		ValueFlag("http-proxy", cl.HTTPProxy),
		markFlag(cl.SocketMark),
		ValueFlag("http-upgrade-path-prefix", cl.UpgradePathPrefix),
		ValueFlag("tls-sni-override", cl.TLSSNIOverride),
		verifyFlag(cl.VerifyCertificate()),
		ValueFlag("http-upgrade-credentials", cl.UpgradeCreds),
		RepeatedFlag("http-headers", headerValues(cl.Headers)),
		pingFlag(cl.PingIntervalSec),
	}

	return Descriptor{
		Name:            ClientUnitName(cl.Name),
		Description:     fmt.Sprintf("WebSocket tunnel client %s", cl.Name),
		Command:         BuildCommand(cl.Binary, "client", flags, cl.ExtraArgs, cl.ConnectTo),
		Environment:     environment(cl.LogLevel),
		EnvironmentFile: cl.EnvironmentFile,
		Restart:         DefaultRestartPolicy,
		Capabilities:    ClientCapabilities(cl),
		Sandbox:         Hardened,
		StartOnBoot:     cl.ShouldAutoStart(),
	}, nil
}

func environment(logLevel string) map[string]string {
	if logLevel == "" {
		return nil
	}
	return map[string]string{logLevelEnv: logLevel}
}

func pingFlag(sec *uint) Flag {
	if sec == nil {
		return Flag{Name: "websocket-ping-frequency-sec"}
	}
	return ValueFlag("websocket-ping-frequency-sec", strconv.FormatUint(uint64(*sec), 10))
}

func markFlag(mark *uint) Flag {
	if mark == nil {
		return Flag{Name: "socket-so-mark"}
	}
	return ValueFlag("socket-so-mark", strconv.FormatUint(uint64(*mark), 10))
}

func verifyFlag(verify bool) Flag {
	if verify {
		return BareFlag("tls-verify-certificate")
	}
	return Flag{Name: "tls-verify-certificate"}
}

// headerValues renders custom headers as "Name: value" strings, sorted
// by header name for deterministic output.
func headerValues(headers map[string]string) []string {
	if len(headers) == 0 {
		return nil
	}
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = fmt.Sprintf("%s: %s", name, headers[name])
	}
	return values
}
