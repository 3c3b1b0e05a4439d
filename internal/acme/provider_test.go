package acme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	p := &StaticProvider{Certs: map[string]Cert{
		"vpn.example.com": {Directory: "/var/lib/acme/vpn.example.com", Group: "acme"},
	}}

	cert, err := p.Lookup("vpn.example.com")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/acme/vpn.example.com", cert.Directory)
	assert.Equal(t, "acme", cert.Group)

	_, err = p.Lookup("other.example.com")
	assert.ErrorIs(t, err, ErrUnmanagedHost)
	assert.Contains(t, err.Error(), "other.example.com")
}

func TestDirProvider(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "vpn.example.com"), 0750))

	p := NewDirProvider(base)

	cert, err := p.Lookup("vpn.example.com")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "vpn.example.com"), cert.Directory)

	_, err = p.Lookup("missing.example.com")
	assert.True(t, errors.Is(err, ErrUnmanagedHost))
}

func TestDirProviderRejectsFiles(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "not-a-dir"), nil, 0644))

	p := NewDirProvider(base)
	_, err := p.Lookup("not-a-dir")
	assert.ErrorIs(t, err, ErrUnmanagedHost)
}

func TestPathProviderAlwaysResolves(t *testing.T) {
	p := &PathProvider{Base: "/var/lib/acme"}
	cert, err := p.Lookup("vpn.example.com")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/acme/vpn.example.com", cert.Directory)
	assert.Empty(t, cert.Group)
}
