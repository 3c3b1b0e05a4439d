// Package acme resolves externally managed certificates. The compiler
// only looks certificates up; issuance and renewal belong to the ACME
// client owning the certificate directory.
package acme

import (
	"fmt"
	"os"
	"path/filepath"
)

// Cert is the resolved record for one managed host.
type Cert struct {
	// Directory containing fullchain.pem and key.pem.
	Directory string
	// Group owning the directory; compiled units join it so the tunnel
	// process can read the key material.
	Group string
}

// Provider looks up certificate records for logical host names.
type Provider interface {
	// Lookup returns the record for host, or an error wrapping
	// ErrUnmanagedHost if no certificate is managed for it.
	Lookup(host string) (Cert, error)
}

// ErrUnmanagedHost marks lookups for hosts without a managed certificate.
var ErrUnmanagedHost = fmt.Errorf("no managed certificate for host")

// DirProvider resolves hosts against an on-disk certificate store laid
// out as <base>/<host>/{fullchain.pem,key.pem}.
type DirProvider struct {
	Base string
}

// NewDirProvider returns a provider rooted at base.
func NewDirProvider(base string) *DirProvider {
	return &DirProvider{Base: base}
}

// Lookup implements Provider.
func (p *DirProvider) Lookup(host string) (Cert, error) {
	dir := filepath.Join(p.Base, host)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Cert{}, fmt.Errorf("%w: %s", ErrUnmanagedHost, host)
	}

	group, err := dirGroup(info)
	if err != nil {
		return Cert{}, fmt.Errorf("resolve owner group of %s: %w", dir, err)
	}

	return Cert{Directory: dir, Group: group}, nil
}

// StaticProvider is a map-backed provider for tests and offline checks.
type StaticProvider struct {
	Certs map[string]Cert
}

// Lookup implements Provider.
func (p *StaticProvider) Lookup(host string) (Cert, error) {
	cert, ok := p.Certs[host]
	if !ok {
		return Cert{}, fmt.Errorf("%w: %s", ErrUnmanagedHost, host)
	}
	return cert, nil
}

// PathProvider maps every host to <base>/<host> without consulting the
// filesystem. Used for offline checks where the certificate store may
// not exist on the machine running the compiler.
type PathProvider struct {
	Base string
}

// Lookup implements Provider. It never fails.
func (p *PathProvider) Lookup(host string) (Cert, error) {
	return Cert{Directory: filepath.Join(p.Base, host)}, nil
}
