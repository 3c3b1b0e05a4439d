package config

import (
	"fmt"
	"strings"

	"grimm.is/wsforge/internal/validation"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field    string
	Message  string
	Severity string // "error" (default), "warning"
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validate checks the whole configuration. All instances are checked
// regardless of their enabled flag; compilation must not proceed when the
// result is non-empty.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	errs = append(errs, c.validateServers()...)
	errs = append(errs, c.validateClients()...)

	return errs
}

func (c *Config) validateServers() ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool)

	for i, srv := range c.Servers {
		field := fmt.Sprintf("server[%s]", srv.Name)
		if srv.Name == "" {
			field = fmt.Sprintf("server[%d]", i)
		}

		if err := validation.ValidateInstanceName(srv.Name); err != nil {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: err.Error(),
			})
		}

		if seen[srv.Name] {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate server instance name: %s", srv.Name),
			})
		}
		seen[srv.Name] = true

		// Manual pair completeness: both or neither.
		if (srv.TLSCertificate == "") != (srv.TLSKey == "") {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "tls_certificate and tls_key must be set together",
			})
		}

		// ACME vs manual pair mutual exclusion.
		if srv.UseHTTPS() && srv.ACMEHost != "" && (srv.TLSCertificate != "" || srv.TLSKey != "") {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "acme_host and a manual tls_certificate/tls_key pair are mutually exclusive",
			})
		}

		if srv.Listen != nil && srv.Listen.Port != nil {
			if err := validation.ValidatePort(*srv.Listen.Port); err != nil {
				errs = append(errs, ValidationError{
					Field:   field + ".listen.port",
					Message: err.Error(),
				})
			}
		}

		for j, raw := range srv.RestrictTo {
			if _, err := ParseEndpoint(raw); err != nil {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.restrict_to[%d]", field, j),
					Message: err.Error(),
				})
			}
		}

		errs = append(errs, validateOverlay(field, srv.ExtraArgs)...)
	}

	return errs
}

func (c *Config) validateClients() ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool)

	for i, cl := range c.Clients {
		field := fmt.Sprintf("client[%s]", cl.Name)
		if cl.Name == "" {
			field = fmt.Sprintf("client[%d]", i)
		}

		if err := validation.ValidateInstanceName(cl.Name); err != nil {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: err.Error(),
			})
		}

		if seen[cl.Name] {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate client instance name: %s", cl.Name),
			})
		}
		seen[cl.Name] = true

		if cl.ConnectTo == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".connect_to",
				Message: "connect_to is required",
			})
		}

		if len(cl.LocalToRemote) == 0 && len(cl.RemoteToLocal) == 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "at least one of local_to_remote or remote_to_local must be non-empty",
			})
		}

		errs = append(errs, validateOverlay(field, cl.ExtraArgs)...)
	}

	return errs
}

func validateOverlay(field string, args Args) ValidationErrors {
	var errs ValidationErrors
	for _, name := range args.Names() {
		if err := validation.ValidateFlagName(name); err != nil {
			errs = append(errs, ValidationError{
				Field:   field + ".extra_args",
				Message: err.Error(),
			})
		}
	}
	return errs
}
