package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"grimm.is/wsforge/internal/brand"
)

// CurrentSchemaVersion defines the current schema version of the configuration.
const CurrentSchemaVersion = "1.0"

// Config is the top-level structure for the tunnel endpoint configuration.
type Config struct {
	// Schema version for backward compatibility (e.g., "1.0")
	// If empty, defaults to "1.0"
	SchemaVersion string `hcl:"schema_version,optional" json:"schema_version,omitempty"`

	Servers []ServerInstance `hcl:"server,block" json:"servers,omitempty"`
	Clients []ClientInstance `hcl:"client,block" json:"clients,omitempty"`
}

// ListenBlock declares the server listen endpoint. Both fields are
// optional; defaults are resolved at materialization time.
type ListenBlock struct {
	Host string `hcl:"host,optional" json:"host,omitempty"`
	Port *int   `hcl:"port,optional" json:"port,omitempty"`
}

// ServerInstance is one declared server-role tunnel endpoint.
type ServerInstance struct {
	Name string `hcl:"name,label" json:"name"`

	Enabled   *bool  `hcl:"enabled,optional" json:"enabled,omitempty"`
	AutoStart *bool  `hcl:"auto_start,optional" json:"auto_start,omitempty"`
	Binary    string `hcl:"binary,optional" json:"binary,omitempty"`

	Listen         *ListenBlock `hcl:"listen,block" json:"listen,omitempty"`
	HTTPS          *bool        `hcl:"https,optional" json:"https,omitempty"`
	TLSCertificate string       `hcl:"tls_certificate,optional" json:"tls_certificate,omitempty"`
	TLSKey         string       `hcl:"tls_key,optional" json:"tls_key,omitempty"`
	ACMEHost       string       `hcl:"acme_host,optional" json:"acme_host,omitempty"`
	RestrictTo     []string     `hcl:"restrict_to,optional" json:"restrict_to,omitempty"`

	PingIntervalSec *uint  `hcl:"ping_interval_sec,optional" json:"ping_interval_sec,omitempty"`
	LogLevel        string `hcl:"log_level,optional" json:"log_level,omitempty"`
	EnvironmentFile string `hcl:"environment_file,optional" json:"environment_file,omitempty"`

	// ExtraArgsHCL holds the raw heterogeneous extra_args value; it is
	// converted into ExtraArgs during Normalize.
	ExtraArgsHCL cty.Value `hcl:"extra_args,optional" json:"-"`
	ExtraArgs    Args      `json:"extra_args,omitempty"`
}

// ClientInstance is one declared client-role tunnel endpoint.
type ClientInstance struct {
	Name string `hcl:"name,label" json:"name"`

	Enabled   *bool  `hcl:"enabled,optional" json:"enabled,omitempty"`
	AutoStart *bool  `hcl:"auto_start,optional" json:"auto_start,omitempty"`
	Binary    string `hcl:"binary,optional" json:"binary,omitempty"`

	ConnectTo     string   `hcl:"connect_to" json:"connect_to"`
	LocalToRemote []string `hcl:"local_to_remote,optional" json:"local_to_remote,omitempty"`
	RemoteToLocal []string `hcl:"remote_to_local,optional" json:"remote_to_local,omitempty"`

	AddNetBind        bool              `hcl:"add_net_bind,optional" json:"add_net_bind,omitempty"`
	HTTPProxy         string            `hcl:"http_proxy,optional" json:"http_proxy,omitempty"`
	SocketMark        *uint             `hcl:"socket_mark,optional" json:"socket_mark,omitempty"`
	UpgradePathPrefix string            `hcl:"upgrade_path_prefix,optional" json:"upgrade_path_prefix,omitempty"`
	TLSSNIOverride    string            `hcl:"tls_sni_override,optional" json:"tls_sni_override,omitempty"`
	TLSVerify         *bool             `hcl:"tls_verify_certificate,optional" json:"tls_verify_certificate,omitempty"`
	UpgradeCreds      string            `hcl:"upgrade_credentials,optional" json:"upgrade_credentials,omitempty"`
	Headers           map[string]string `hcl:"headers,optional" json:"headers,omitempty"`

	PingIntervalSec *uint  `hcl:"ping_interval_sec,optional" json:"ping_interval_sec,omitempty"`
	LogLevel        string `hcl:"log_level,optional" json:"log_level,omitempty"`
	EnvironmentFile string `hcl:"environment_file,optional" json:"environment_file,omitempty"`

	ExtraArgsHCL cty.Value `hcl:"extra_args,optional" json:"-"`
	ExtraArgs    Args      `json:"extra_args,omitempty"`
}

// boolOr dereferences an optional bool with a default.
func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// IsEnabled reports whether the instance participates in compilation.
func (s *ServerInstance) IsEnabled() bool { return boolOr(s.Enabled, true) }

// ShouldAutoStart reports whether the compiled unit starts on boot.
func (s *ServerInstance) ShouldAutoStart() bool { return boolOr(s.AutoStart, true) }

// UseHTTPS reports whether the server terminates TLS.
func (s *ServerInstance) UseHTTPS() bool { return boolOr(s.HTTPS, true) }

// Scheme returns the endpoint URL scheme for the listen address.
func (s *ServerInstance) Scheme() string {
	if s.UseHTTPS() {
		return "wss"
	}
	return "ws"
}

// ListenEndpoint returns the effective listen endpoint. Normalize must
// have run; the defaults are resolved there.
func (s *ServerInstance) ListenEndpoint() Endpoint {
	host := "0.0.0.0"
	port := 80
	if s.UseHTTPS() {
		port = 443
	}
	if s.Listen != nil {
		if s.Listen.Host != "" {
			host = s.Listen.Host
		}
		if s.Listen.Port != nil {
			port = *s.Listen.Port
		}
	}
	return Endpoint{Host: host, Port: uint16(port)}
}

// RestrictEndpoints parses the restrict_to allow-list.
func (s *ServerInstance) RestrictEndpoints() ([]Endpoint, error) {
	eps := make([]Endpoint, 0, len(s.RestrictTo))
	for _, raw := range s.RestrictTo {
		ep, err := ParseEndpoint(raw)
		if err != nil {
			return nil, err
		}
		eps = append(eps, ep)
	}
	return eps, nil
}

// IsEnabled reports whether the instance participates in compilation.
func (c *ClientInstance) IsEnabled() bool { return boolOr(c.Enabled, true) }

// ShouldAutoStart reports whether the compiled unit starts on boot.
func (c *ClientInstance) ShouldAutoStart() bool { return boolOr(c.AutoStart, true) }

// VerifyCertificate reports whether upstream TLS certificates are verified.
func (c *ClientInstance) VerifyCertificate() bool { return boolOr(c.TLSVerify, true) }

// Normalize resolves all instance defaults in place. Effective defaults
// are computed once here and are immutable thereafter; compilation never
// consults global state.
func (c *Config) Normalize() error {
	if c.SchemaVersion == "" {
		c.SchemaVersion = CurrentSchemaVersion
	}

	for i := range c.Servers {
		s := &c.Servers[i]
		if s.Binary == "" {
			s.Binary = brand.DefaultTunnelBinary
		}
		// Resolve the listen defaults once; port depends on https.
		host := "0.0.0.0"
		port := 80
		if s.UseHTTPS() {
			port = 443
		}
		if s.Listen != nil {
			if s.Listen.Host != "" {
				host = s.Listen.Host
			}
			if s.Listen.Port != nil {
				port = *s.Listen.Port
			}
		}
		s.Listen = &ListenBlock{Host: host, Port: intPtr(port)}
		if s.ExtraArgs == nil {
			args, err := argsFromCty(s.ExtraArgsHCL)
			if err != nil {
				return fmt.Errorf("server %q: %w", s.Name, err)
			}
			s.ExtraArgs = args
		}
	}

	for i := range c.Clients {
		cl := &c.Clients[i]
		if cl.Binary == "" {
			cl.Binary = brand.DefaultTunnelBinary
		}
		if cl.ExtraArgs == nil {
			args, err := argsFromCty(cl.ExtraArgsHCL)
			if err != nil {
				return fmt.Errorf("client %q: %w", cl.Name, err)
			}
			cl.ExtraArgs = args
		}
	}

	return nil
}

func intPtr(v int) *int { return &v }
