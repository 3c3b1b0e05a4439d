package unit

import (
	"fmt"
	"path/filepath"

	"grimm.is/wsforge/internal/acme"
	"grimm.is/wsforge/internal/config"
)

// TLSMaterial is the resolved certificate pair for a server instance,
// plus the group that owns externally managed material.
type TLSMaterial struct {
	CertPath string
	KeyPath  string
	Group    string
}

// UnresolvedAcmeHostError reports a server referencing an acme_host with
// no managed certificate record. It aborts the whole compilation run.
type UnresolvedAcmeHostError struct {
	Instance string
	Host     string
	Err      error
}

func (e *UnresolvedAcmeHostError) Error() string {
	return fmt.Sprintf("server %q: cannot resolve certificate for acme host %q: %v",
		e.Instance, e.Host, e.Err)
}

func (e *UnresolvedAcmeHostError) Unwrap() error { return e.Err }

// ResolveTLS resolves the certificate material of a server instance.
// Only called when the instance uses HTTPS. Validation has already
// enforced that acme_host and the manual pair are mutually exclusive and
// that the manual pair is complete, so the branches here are total.
func ResolveTLS(s *config.ServerInstance, provider acme.Provider) (TLSMaterial, error) {
	if s.ACMEHost != "" {
		cert, err := provider.Lookup(s.ACMEHost)
		if err != nil {
			return TLSMaterial{}, &UnresolvedAcmeHostError{Instance: s.Name, Host: s.ACMEHost, Err: err}
		}
		return TLSMaterial{
			CertPath: filepath.Join(cert.Directory, "fullchain.pem"),
			KeyPath:  filepath.Join(cert.Directory, "key.pem"),
			Group:    cert.Group,
		}, nil
	}

	// Manual pair as given; both empty means the binary's built-in
	// default material.
	return TLSMaterial{CertPath: s.TLSCertificate, KeyPath: s.TLSKey}, nil
}
