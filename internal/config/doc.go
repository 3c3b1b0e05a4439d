// Package config handles HCL configuration parsing, validation, and
// defaults materialization for tunnel endpoint instances.
//
// # Overview
//
// Wsforge uses HCL (HashiCorp Configuration Language) for its configuration
// files. This package provides:
//   - HCL parsing with schema validation (JSON accepted as an alternative)
//   - Whole-config invariant validation before compilation
//   - Constructor-time defaults resolution (listen port depends on https)
//
// # Key Types
//
//   - [Config]: top-level structure holding server and client instances
//   - [ServerInstance], [ClientInstance]: one declared tunnel endpoint each
//   - [Args]: user flag overlay merged onto compiler-computed flags
//   - [ValidationErrors]: aggregate of all invariant violations
//
// # Configuration Blocks
//
//	server "vpn" {
//	  listen { host = "0.0.0.0"  port = 8080 }
//	  tls_certificate = "/etc/ssl/c.pem"
//	  tls_key         = "/etc/ssl/k.pem"
//	  restrict_to     = ["127.0.0.1:51820"]
//	}
//
//	client "home" {
//	  connect_to      = "wss://example.com:8443"
//	  local_to_remote = ["tcp://1212:google.com:443"]
//	  socket_mark     = 100
//	}
//
// # Example
//
//	cfg, err := config.LoadFile(path)
//	if err != nil { ... }
//	if errs := cfg.Validate(); errs.HasErrors() { ... }
package config
