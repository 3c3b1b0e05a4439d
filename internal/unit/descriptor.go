// Package unit compiles declared tunnel endpoint instances into
// supervisor-ready unit descriptors. Compilation is a pure, one-shot
// transformation: validation first, then per-instance capability
// derivation, TLS resolution, and command building.
package unit

import (
	"time"
)

// Linux capability tokens granted to compiled units. No others are ever
// granted.
const (
	// CapBindLowPort allows binding ports below 1024.
	CapBindLowPort = "CAP_NET_BIND_SERVICE"
	// CapNetAdmin allows setting SO_MARK on sockets.
	CapNetAdmin = "CAP_NET_ADMIN"
)

// Descriptor is the compiled, supervisor-ready description of a process
// to run and keep alive. Descriptors are handed to the supervisor and
// owned by it thereafter.
type Descriptor struct {
	Name                string            `json:"name" yaml:"name"`
	Description         string            `json:"description" yaml:"description"`
	Command             []string          `json:"command" yaml:"command"`
	Environment         map[string]string `json:"environment,omitempty" yaml:"environment,omitempty"`
	EnvironmentFile     string            `json:"environment_file,omitempty" yaml:"environment_file,omitempty"`
	Restart             RestartPolicy     `json:"restart" yaml:"restart"`
	Capabilities        []string          `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Sandbox             SandboxProfile    `json:"sandbox" yaml:"sandbox"`
	SupplementaryGroups []string          `json:"supplementary_groups,omitempty" yaml:"supplementary_groups,omitempty"`
	StartOnBoot         bool              `json:"start_on_boot" yaml:"start_on_boot"`
}

// RestartPolicy is the bounded-backoff auto-restart contract. It is a
// constant for every compiled unit, never computed from instance fields.
type RestartPolicy struct {
	OnFailure    bool          `json:"on_failure" yaml:"on_failure"`
	InitialDelay time.Duration `json:"initial_delay" yaml:"initial_delay"`
	Steps        int           `json:"steps" yaml:"steps"`
	MaxDelay     time.Duration `json:"max_delay" yaml:"max_delay"`
}

// DefaultRestartPolicy restarts failed tunnels quickly at first, then
// backs off to a capped delay.
var DefaultRestartPolicy = RestartPolicy{
	OnFailure:    true,
	InitialDelay: 2 * time.Second,
	Steps:        20,
	MaxDelay:     5 * time.Minute,
}

// SandboxProfile is the fixed set of filesystem, namespace, and device
// restrictions applied to every compiled unit.
type SandboxProfile struct {
	DynamicUser            bool     `json:"dynamic_user" yaml:"dynamic_user"`
	NoNewPrivileges        bool     `json:"no_new_privileges" yaml:"no_new_privileges"`
	PrivateTmp             bool     `json:"private_tmp" yaml:"private_tmp"`
	PrivateDevices         bool     `json:"private_devices" yaml:"private_devices"`
	ProtectSystem          string   `json:"protect_system" yaml:"protect_system"`
	ProtectHome            bool     `json:"protect_home" yaml:"protect_home"`
	ProtectKernelTunables  bool     `json:"protect_kernel_tunables" yaml:"protect_kernel_tunables"`
	ProtectKernelModules   bool     `json:"protect_kernel_modules" yaml:"protect_kernel_modules"`
	ProtectControlGroups   bool     `json:"protect_control_groups" yaml:"protect_control_groups"`
	RestrictNamespaces     bool     `json:"restrict_namespaces" yaml:"restrict_namespaces"`
	RestrictSUIDSGID       bool     `json:"restrict_suid_sgid" yaml:"restrict_suid_sgid"`
	RestrictRealtime       bool     `json:"restrict_realtime" yaml:"restrict_realtime"`
	LockPersonality        bool     `json:"lock_personality" yaml:"lock_personality"`
	MemoryDenyWriteExecute bool     `json:"memory_deny_write_execute" yaml:"memory_deny_write_execute"`
	AddressFamilies        []string `json:"address_families" yaml:"address_families"`
	SystemCallFilter       []string `json:"system_call_filter" yaml:"system_call_filter"`
}

// Hardened is the sandbox applied to every unit. Only the derived
// capability set and (for ACME-backed servers) supplementary group
// membership vary per instance.
var Hardened = SandboxProfile{
	DynamicUser:            true,
	NoNewPrivileges:        true,
	PrivateTmp:             true,
	PrivateDevices:         true,
	ProtectSystem:          "strict",
	ProtectHome:            true,
	ProtectKernelTunables:  true,
	ProtectKernelModules:   true,
	ProtectControlGroups:   true,
	RestrictNamespaces:     true,
	RestrictSUIDSGID:       true,
	RestrictRealtime:       true,
	LockPersonality:        true,
	MemoryDenyWriteExecute: true,
	AddressFamilies:        []string{"AF_INET", "AF_INET6", "AF_UNIX"},
	SystemCallFilter:       []string{"@system-service"},
}
