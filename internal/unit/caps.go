package unit

import (
	"grimm.is/wsforge/internal/config"
)

// ServerCapabilities derives the capability set for a server instance:
// binding a privileged port is the only elevation a server ever needs.
func ServerCapabilities(s *config.ServerInstance) []string {
	if s.ListenEndpoint().Port < 1024 {
		return []string{CapBindLowPort}
	}
	return nil
}

// ClientCapabilities derives the capability set for a client instance.
// Low-port binds are opt-in; SO_MARK requires CAP_NET_ADMIN.
func ClientCapabilities(c *config.ClientInstance) []string {
	var caps []string
	if c.AddNetBind {
		caps = append(caps, CapBindLowPort)
	}
	if c.SocketMark != nil {
		caps = append(caps, CapNetAdmin)
	}
	return caps
}
