// Package validation provides reusable field validators for the config layer.
package validation

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Valid instance name: alphanumeric, dash, underscore. Instance names
	// become part of systemd unit names, so the character set is strict.
	instanceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// Valid overlay flag name: what the tunnel binary accepts after "--".
	flagNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

	// Dangerous characters that should never appear in identifiers
	dangerousChars = []string{";", "|", "&", "$", "`", "(", ")", "<", ">", "\\", "\"", "'", "\n", "\r"}
)

// ValidateInstanceName validates a user-declared instance name.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name cannot be empty")
	}

	if len(name) > 200 {
		return fmt.Errorf("instance name too long (max 200 characters)")
	}

	if !instanceNameRegex.MatchString(name) {
		return fmt.Errorf("invalid instance name: %s (must be alphanumeric with -_)", name)
	}

	for _, char := range dangerousChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("instance name contains dangerous character: %s", char)
		}
	}

	return nil
}

// ValidateFlagName validates an extra_args overlay key.
func ValidateFlagName(name string) error {
	if name == "" {
		return fmt.Errorf("flag name cannot be empty")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("flag name must not include leading dashes: %s", name)
	}
	if !flagNameRegex.MatchString(name) {
		return fmt.Errorf("invalid flag name: %s (must be alphanumeric with -)", name)
	}
	return nil
}

// ParseEndpoint parses a "host:port" string. The host may be an IPv6
// address in brackets.
func ParseEndpoint(s string) (host string, port uint16, err error) {
	h, p, err := net.SplitHostPort(s)
	if err != nil {
		return "", 0, fmt.Errorf("invalid endpoint %q: %w", s, err)
	}
	n, err := strconv.ParseUint(p, 10, 16)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in endpoint %q: %s", s, p)
	}
	return h, uint16(n), nil
}

// ValidatePort checks that a declared port fits in the valid range.
func ValidatePort(port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", port)
	}
	return nil
}
