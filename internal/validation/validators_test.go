package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateInstanceName(t *testing.T) {
	valid := []string{"vpn", "home-office", "relay_2", "A1"}
	for _, name := range valid {
		assert.NoError(t, ValidateInstanceName(name), name)
	}

	invalid := []string{"", "has space", "semi;colon", "dot.ted", "a/b", "$(rm)"}
	for _, name := range invalid {
		assert.Error(t, ValidateInstanceName(name), name)
	}
}

func TestValidateFlagName(t *testing.T) {
	assert.NoError(t, ValidateFlagName("restrict-to"))
	assert.NoError(t, ValidateFlagName("nb-worker-threads"))

	assert.Error(t, ValidateFlagName(""))
	assert.Error(t, ValidateFlagName("--restrict-to"))
	assert.Error(t, ValidateFlagName("bad flag"))
	assert.Error(t, ValidateFlagName("-x"))
}

func TestParseEndpoint(t *testing.T) {
	host, port, err := ParseEndpoint("127.0.0.1:51820")
	assert.NoError(t, err)
	assert.Equal(t, "127.0.0.1", host)
	assert.Equal(t, uint16(51820), port)

	host, port, err = ParseEndpoint("[::1]:8080")
	assert.NoError(t, err)
	assert.Equal(t, "::1", host)
	assert.Equal(t, uint16(8080), port)

	_, _, err = ParseEndpoint("nocolon")
	assert.Error(t, err)

	_, _, err = ParseEndpoint("host:99999")
	assert.Error(t, err)
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort(0))
	assert.NoError(t, ValidatePort(443))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(-1))
	assert.Error(t, ValidatePort(65536))
}
