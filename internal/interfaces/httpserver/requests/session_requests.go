package requests

import (
	"swipehub/session-api/internal/domain/session"
)

// CreateSessionRequest carries the creator's chosen session parameters.
// Filter fields are provider-ready comma-joined id lists.
type CreateSessionRequest struct {
	Username   string `json:"username" binding:"required"`
	Type       string `json:"type" binding:"required,oneof=movie series"`
	Categories string `json:"categories"`
	Languages  string `json:"languages"`
	Platform   string `json:"platform"`
	Region     string `json:"region"`
	Order      string `json:"order"`
}

// ToConfig converts the request to a domain session config. Creator and
// creation time are filled in by the service.
func (r *CreateSessionRequest) ToConfig() session.Config {
	return session.Config{
		Type:       session.ContentType(r.Type),
		Categories: r.Categories,
		Languages:  r.Languages,
		Platform:   r.Platform,
		Region:     r.Region,
		Order:      r.Order,
	}
}

// JoinSessionRequest carries the joining member's username.
type JoinSessionRequest struct {
	Username string `json:"username" binding:"required"`
}

// JoinSessionURI binds the session code path segment.
type JoinSessionURI struct {
	SessionID string `uri:"id" binding:"required,sessioncode"`
}

// DeployMessageRequest is the payload the deployment relay forwards.
// Field presence is checked by hand so the relay can answer with its
// legacy plain-text statuses.
type DeployMessageRequest struct {
	Title  *string `json:"title"`
	Branch *string `json:"branch"`
	State  *string `json:"state"`
}
