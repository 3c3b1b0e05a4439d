// Package systemd renders compiled unit descriptors into systemd unit
// files and drives systemctl to install them. Rendering is deterministic
// so repeated runs over the same config produce byte-identical files.
package systemd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"grimm.is/wsforge/internal/unit"
)

// UnitFileName returns the on-disk file name for a descriptor.
func UnitFileName(d *unit.Descriptor) string {
	return d.Name + ".service"
}

// Render produces the systemd unit file text for a descriptor.
func Render(d *unit.Descriptor) string {
	var b strings.Builder

	b.WriteString("[Unit]\n")
	fmt.Fprintf(&b, "Description=%s\n", d.Description)
	b.WriteString("After=network-online.target\n")
	b.WriteString("Wants=network-online.target\n")

	b.WriteString("\n[Service]\n")
	b.WriteString("Type=exec\n")
	fmt.Fprintf(&b, "ExecStart=%s\n", execStartLine(d.Command))

	// Environment assignments sorted by key for stable output.
	keys := make([]string, 0, len(d.Environment))
	for k := range d.Environment {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "Environment=%q\n", k+"="+d.Environment[k])
	}
	if d.EnvironmentFile != "" {
		// Leading dash so a missing file does not fail the unit.
		fmt.Fprintf(&b, "EnvironmentFile=-%s\n", d.EnvironmentFile)
	}

	if d.Restart.OnFailure {
		b.WriteString("Restart=on-failure\n")
		fmt.Fprintf(&b, "RestartSec=%s\n", strconv.Itoa(int(d.Restart.InitialDelay.Seconds())))
		fmt.Fprintf(&b, "RestartSteps=%d\n", d.Restart.Steps)
		fmt.Fprintf(&b, "RestartMaxDelaySec=%s\n", strconv.Itoa(int(d.Restart.MaxDelay.Seconds())))
	}

	if len(d.Capabilities) > 0 {
		caps := strings.Join(d.Capabilities, " ")
		fmt.Fprintf(&b, "AmbientCapabilities=%s\n", caps)
		fmt.Fprintf(&b, "CapabilityBoundingSet=%s\n", caps)
	} else {
		// Empty assignment drops every capability.
		b.WriteString("CapabilityBoundingSet=\n")
	}
	if len(d.SupplementaryGroups) > 0 {
		fmt.Fprintf(&b, "SupplementaryGroups=%s\n", strings.Join(d.SupplementaryGroups, " "))
	}

	writeSandbox(&b, d.Sandbox)

	if d.StartOnBoot {
		b.WriteString("\n[Install]\n")
		b.WriteString("WantedBy=multi-user.target\n")
	}

	return b.String()
}

func writeSandbox(b *strings.Builder, p unit.SandboxProfile) {
	bools := []struct {
		key string
		on  bool
	}{
		{"DynamicUser", p.DynamicUser},
		{"NoNewPrivileges", p.NoNewPrivileges},
		{"PrivateTmp", p.PrivateTmp},
		{"PrivateDevices", p.PrivateDevices},
		{"ProtectHome", p.ProtectHome},
		{"ProtectKernelTunables", p.ProtectKernelTunables},
		{"ProtectKernelModules", p.ProtectKernelModules},
		{"ProtectControlGroups", p.ProtectControlGroups},
		{"RestrictNamespaces", p.RestrictNamespaces},
		{"RestrictSUIDSGID", p.RestrictSUIDSGID},
		{"RestrictRealtime", p.RestrictRealtime},
		{"LockPersonality", p.LockPersonality},
		{"MemoryDenyWriteExecute", p.MemoryDenyWriteExecute},
	}
	for _, d := range bools {
		if d.on {
			fmt.Fprintf(b, "%s=yes\n", d.key)
		}
	}
	if p.ProtectSystem != "" {
		fmt.Fprintf(b, "ProtectSystem=%s\n", p.ProtectSystem)
	}
	if len(p.AddressFamilies) > 0 {
		fmt.Fprintf(b, "RestrictAddressFamilies=%s\n", strings.Join(p.AddressFamilies, " "))
	}
	for _, f := range p.SystemCallFilter {
		fmt.Fprintf(b, "SystemCallFilter=%s\n", f)
	}
}

// execStartLine joins command tokens, quoting any token systemd would
// otherwise split or misparse.
func execStartLine(command []string) string {
	parts := make([]string, len(command))
	for i, tok := range command {
		parts[i] = quoteToken(tok)
	}
	return strings.Join(parts, " ")
}

func quoteToken(tok string) string {
	if tok != "" && !strings.ContainsAny(tok, " \t\"'\\") {
		return tok
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range tok {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
