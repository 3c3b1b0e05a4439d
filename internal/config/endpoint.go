package config

import (
	"fmt"
	"net"
	"strconv"

	"grimm.is/wsforge/internal/validation"
)

// Endpoint is a host/port pair.
type Endpoint struct {
	Host string `json:"host"`
	Port uint16 `json:"port"`
}

// String serializes as "host:port". IPv6 hosts are bracketed.
func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}

// URL returns the endpoint as a URL with the given scheme.
func (e Endpoint) URL(scheme string) string {
	return fmt.Sprintf("%s://%s", scheme, e.String())
}

// ParseEndpoint parses a "host:port" string into an Endpoint.
func ParseEndpoint(s string) (Endpoint, error) {
	host, port, err := validation.ParseEndpoint(s)
	if err != nil {
		return Endpoint{}, err
	}
	return Endpoint{Host: host, Port: port}, nil
}
