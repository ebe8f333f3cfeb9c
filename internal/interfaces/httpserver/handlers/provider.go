package handlers

import (
	"github.com/rs/zerolog"

	"swipehub/session-api/internal/domain/session"
)

// Provider wires HTTP handlers.
type Provider struct {
	Session *SessionHandler
	Deploy  *DeployHandler
}

func NewProvider(service *session.Service, notifier session.Notifier, relay Relay, log zerolog.Logger) *Provider {
	return &Provider{
		Session: NewSessionHandler(service, notifier, log),
		Deploy:  NewDeployHandler(relay, log),
	}
}
