package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"swipehub/session-api/internal/interfaces/httpserver/requests"
)

// Relay forwards deployment status messages to the chat channel.
type Relay interface {
	Send(ctx context.Context, text string) error
	RelayToken() string
}

// DeployHandler accepts CI deployment notifications and forwards them.
// Responses are the plain-text statuses the existing CI hooks expect.
type DeployHandler struct {
	relay Relay
	log   zerolog.Logger
}

func NewDeployHandler(relay Relay, log zerolog.Logger) *DeployHandler {
	return &DeployHandler{
		relay: relay,
		log:   log.With().Str("component", "deploy-handler").Logger(),
	}
}

// Messages validates the relay token and forwards a formatted deployment
// status. Titles tagged :NF: are acknowledged without forwarding.
func (h *DeployHandler) Messages(c *gin.Context) {
	var req requests.DeployMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == nil || req.Branch == nil || req.State == nil {
		c.String(http.StatusOK, "Data Error")
		return
	}

	key := c.Query("token")
	expected := h.relay.RelayToken()
	if expected == "" || strings.ToLower(key) != expected {
		c.String(http.StatusOK, "Unauthorized!")
		return
	}

	if strings.Contains(*req.Title, ":NF:") {
		c.String(http.StatusOK, "Done!")
		return
	}

	content := fmt.Sprintf("Deployment: %s\nBranch : %s\nStatus: %s", *req.Title, *req.Branch, *req.State)
	if err := h.relay.Send(c.Request.Context(), content); err != nil {
		h.log.Error().Err(err).Msg("failed to forward deployment message")
		c.String(http.StatusOK, "Error")
		return
	}
	c.String(http.StatusOK, "Done")
}
