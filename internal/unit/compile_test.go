package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/wsforge/internal/acme"
	"grimm.is/wsforge/internal/config"
)

func intPtr(v int) *int    { return &v }
func uintPtr(v uint) *uint { return &v }
func boolPtr(v bool) *bool { return &v }

func normalized(t *testing.T, cfg *config.Config) *config.Config {
	t.Helper()
	require.NoError(t, cfg.Normalize())
	return cfg
}

func TestCompileServerManualTLS(t *testing.T) {
	cfg := normalized(t, &config.Config{
		Servers: []config.ServerInstance{{
			Name:           "vpn",
			Listen:         &config.ListenBlock{Host: "0.0.0.0", Port: intPtr(8080)},
			TLSCertificate: "/c.pem",
			TLSKey:         "/k.pem",
			RestrictTo:     []string{"127.0.0.1:51820"},
		}},
	})

	units, err := NewCompiler(&acme.StaticProvider{}).CompileAll(cfg)
	require.NoError(t, err)
	require.Len(t, units, 1)

	u := units[0]
	assert.Equal(t, "wstunnel-server-vpn", u.Name)
	assert.Equal(t, []string{
		"/usr/bin/wstunnel", "server",
		"--tls-certificate", "/c.pem",
		"--tls-private-key", "/k.pem",
		"--restrict-to", "127.0.0.1:51820",
		"wss://0.0.0.0:8080",
	}, u.Command)
	assert.Empty(t, u.Capabilities, "port 8080 needs no elevation")
	assert.Empty(t, u.SupplementaryGroups)
	assert.Equal(t, DefaultRestartPolicy, u.Restart)
	assert.Equal(t, Hardened, u.Sandbox)
	assert.True(t, u.StartOnBoot)
}

func TestCompileServerPlaintextLowPort(t *testing.T) {
	cfg := normalized(t, &config.Config{
		Servers: []config.ServerInstance{{
			Name:  "plain",
			HTTPS: boolPtr(false),
		}},
	})

	units, err := NewCompiler(&acme.StaticProvider{}).CompileAll(cfg)
	require.NoError(t, err)
	require.Len(t, units, 1)

	u := units[0]
	assert.Equal(t, []string{"/usr/bin/wstunnel", "server", "ws://0.0.0.0:80"}, u.Command)
	assert.Equal(t, []string{CapBindLowPort}, u.Capabilities)
}

func TestCompileClientSocketMark(t *testing.T) {
	cfg := normalized(t, &config.Config{
		Clients: []config.ClientInstance{{
			Name:          "home",
			ConnectTo:     "wss://h:8443",
			LocalToRemote: []string{"tcp://1212:g.com:443"},
			SocketMark:    uintPtr(100),
		}},
	})

	units, err := NewCompiler(&acme.StaticProvider{}).CompileAll(cfg)
	require.NoError(t, err)
	require.Len(t, units, 1)

	u := units[0]
	assert.Equal(t, "wstunnel-client-home", u.Name)
	assert.Equal(t, []string{
		"/usr/bin/wstunnel", "client",
		"--local-to-remote", "tcp://1212:g.com:443",
		"--socket-so-mark", "100",
		"--tls-verify-certificate",
		"wss://h:8443",
	}, u.Command)
	assert.Equal(t, []string{CapNetAdmin}, u.Capabilities)
}

func TestCompileClientFullOptions(t *testing.T) {
	cfg := normalized(t, &config.Config{
		Clients: []config.ClientInstance{{
			Name:              "full",
			ConnectTo:         "wss://h:8443",
			LocalToRemote:     []string{"tcp://1212:g.com:443"},
			RemoteToLocal:     []string{"tcp://2222:localhost:22"},
			HTTPProxy:         "http://proxy:3128",
			UpgradePathPrefix: "hidden",
			TLSSNIOverride:    "front.example.com",
			TLSVerify:         boolPtr(false),
			UpgradeCreds:      "user:pass",
			Headers:           map[string]string{"X-B": "2", "X-A": "1"},
			PingIntervalSec:   uintPtr(30),
			LogLevel:          "debug",
		}},
	})

	units, err := NewCompiler(&acme.StaticProvider{}).CompileAll(cfg)
	require.NoError(t, err)
	require.Len(t, units, 1)

	u := units[0]
	assert.Equal(t, []string{
		"/usr/bin/wstunnel", "client",
		"--local-to-remote", "tcp://1212:g.com:443",
		"--remote-to-local", "tcp://2222:localhost:22",
		"--http-proxy", "http://proxy:3128",
		"--http-upgrade-path-prefix", "hidden",
		"--tls-sni-override", "front.example.com",
		"--http-upgrade-credentials", "user:pass",
		"--http-headers", "X-A: 1",
		"--http-headers", "X-B: 2",
		"--websocket-ping-frequency-sec", "30",
		"wss://h:8443",
	}, u.Command)
	assert.Equal(t, map[string]string{"RUST_LOG": "debug"}, u.Environment)
}

func TestCompileServerAcmeHost(t *testing.T) {
	provider := &acme.StaticProvider{Certs: map[string]acme.Cert{
		"vpn.example.com": {Directory: "/var/lib/acme/vpn.example.com", Group: "acme"},
	}}
	cfg := normalized(t, &config.Config{
		Servers: []config.ServerInstance{{
			Name:     "edge",
			Listen:   &config.ListenBlock{Port: intPtr(8443)},
			ACMEHost: "vpn.example.com",
		}},
	})

	units, err := NewCompiler(provider).CompileAll(cfg)
	require.NoError(t, err)
	require.Len(t, units, 1)

	u := units[0]
	assert.Contains(t, u.Command, "/var/lib/acme/vpn.example.com/fullchain.pem")
	assert.Contains(t, u.Command, "/var/lib/acme/vpn.example.com/key.pem")
	assert.Equal(t, []string{"acme"}, u.SupplementaryGroups)
}

func TestCompileAllUnresolvedAcmeHostAborts(t *testing.T) {
	cfg := normalized(t, &config.Config{
		Servers: []config.ServerInstance{
			{Name: "ok", TLSCertificate: "/c.pem", TLSKey: "/k.pem"},
			{Name: "bad", ACMEHost: "missing.example.com"},
		},
	})

	units, err := NewCompiler(&acme.StaticProvider{}).CompileAll(cfg)
	assert.Nil(t, units, "no partial output on failure")

	var unresolved *UnresolvedAcmeHostError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "bad", unresolved.Instance)
}

func TestCompileAllValidationAborts(t *testing.T) {
	cfg := normalized(t, &config.Config{
		Servers: []config.ServerInstance{{
			Name:           "conflicted",
			TLSCertificate: "/c.pem",
			TLSKey:         "/k.pem",
			ACMEHost:       "vpn.example.com",
		}},
	})

	units, err := NewCompiler(&acme.StaticProvider{}).CompileAll(cfg)
	assert.Nil(t, units)

	var verrs config.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.HasErrors())
}

func TestCompileAllSkipsDisabled(t *testing.T) {
	cfg := normalized(t, &config.Config{
		Servers: []config.ServerInstance{
			{Name: "off", Enabled: boolPtr(false), TLSCertificate: "/c.pem", TLSKey: "/k.pem"},
		},
		Clients: []config.ClientInstance{
			{Name: "on", ConnectTo: "wss://h:443", LocalToRemote: []string{"tcp://1:a:1"}},
		},
	})

	units, err := NewCompiler(&acme.StaticProvider{}).CompileAll(cfg)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "wstunnel-client-on", units[0].Name)
}

func TestCompileAllServerOrderBeforeClients(t *testing.T) {
	cfg := normalized(t, &config.Config{
		Servers: []config.ServerInstance{
			{Name: "b", TLSCertificate: "/c.pem", TLSKey: "/k.pem"},
			{Name: "a", TLSCertificate: "/c.pem", TLSKey: "/k.pem"},
		},
		Clients: []config.ClientInstance{
			{Name: "c", ConnectTo: "wss://h:443", LocalToRemote: []string{"tcp://1:a:1"}},
		},
	})

	units, err := NewCompiler(&acme.StaticProvider{}).CompileAll(cfg)
	require.NoError(t, err)
	require.Len(t, units, 3)

	// Declaration order within each role, servers first.
	assert.Equal(t, "wstunnel-server-b", units[0].Name)
	assert.Equal(t, "wstunnel-server-a", units[1].Name)
	assert.Equal(t, "wstunnel-client-c", units[2].Name)
}

func TestCompileAllIdempotent(t *testing.T) {
	cfg := normalized(t, &config.Config{
		Servers: []config.ServerInstance{{
			Name:           "vpn",
			TLSCertificate: "/c.pem",
			TLSKey:         "/k.pem",
			RestrictTo:     []string{"127.0.0.1:51820"},
			ExtraArgs: config.Args{
				"nb-worker-threads": config.StrArg("4"),
				"no-color":          config.BoolArg(true),
			},
		}},
	})

	c := NewCompiler(&acme.StaticProvider{})
	first, err := c.CompileAll(cfg)
	require.NoError(t, err)
	second, err := c.CompileAll(cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompileOverlayRemovesComputedFlag(t *testing.T) {
	cfg := normalized(t, &config.Config{
		Servers: []config.ServerInstance{{
			Name:           "vpn",
			TLSCertificate: "/c.pem",
			TLSKey:         "/k.pem",
			RestrictTo:     []string{"127.0.0.1:51820"},
			ExtraArgs:      config.Args{"restrict-to": config.BoolArg(false)},
		}},
	})

	units, err := NewCompiler(&acme.StaticProvider{}).CompileAll(cfg)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.NotContains(t, units[0].Command, "--restrict-to")
}

func TestCompileAutoStartOff(t *testing.T) {
	cfg := normalized(t, &config.Config{
		Clients: []config.ClientInstance{{
			Name:          "manual",
			AutoStart:     boolPtr(false),
			ConnectTo:     "wss://h:443",
			LocalToRemote: []string{"tcp://1:a:1"},
		}},
	})

	units, err := NewCompiler(&acme.StaticProvider{}).CompileAll(cfg)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.False(t, units[0].StartOnBoot)
}
