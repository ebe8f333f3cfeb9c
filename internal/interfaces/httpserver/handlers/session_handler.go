package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"swipehub/session-api/internal/domain/session"
	"swipehub/session-api/internal/interfaces/httpserver/middlewares"
	"swipehub/session-api/internal/interfaces/httpserver/requests"
	"swipehub/session-api/internal/interfaces/httpserver/responses"
	"swipehub/session-api/internal/utils/platformerrors"
)

// SessionHandler exposes the session lifecycle endpoints.
type SessionHandler struct {
	service  *session.Service
	notifier session.Notifier
	log      zerolog.Logger
}

func NewSessionHandler(service *session.Service, notifier session.Notifier, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service:  service,
		notifier: notifier,
		log:      log.With().Str("component", "session-handler").Logger(),
	}
}

// Create registers a new session and returns the creator token.
func (h *SessionHandler) Create(c *gin.Context) {
	var req requests.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(c.Request.Context(),
			platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"request body is not valid", err), "request body is not valid")
		return
	}

	result, err := h.service.Create(c.Request.Context(), req.Username, req.ToConfig())
	if err != nil {
		h.fail(c, "CreateSession", err, "failed to create session")
		return
	}

	c.JSON(http.StatusOK, responses.BuildCreateSessionResponse(result))
}

// Join admits a username into an existing session.
func (h *SessionHandler) Join(c *gin.Context) {
	var uri requests.JoinSessionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		responses.HandleError(c, platformerrors.NewError(c.Request.Context(),
			platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"session id is not valid", err), "session id is not valid")
		return
	}
	var req requests.JoinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c, platformerrors.NewError(c.Request.Context(),
			platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"request body is not valid", err), "request body is not valid")
		return
	}

	result, err := h.service.Join(c.Request.Context(), req.Username, uri.SessionID)
	if err != nil {
		h.fail(c, "JoinSession", err, "failed to join session")
		return
	}

	c.JSON(http.StatusOK, responses.BuildJoinSessionResponse(result))
}

// MoreCards extends the caller's session deck by one provider page.
func (h *SessionHandler) MoreCards(c *gin.Context) {
	claims, ok := middlewares.ClaimsFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "verified claims are required")
		return
	}

	if err := h.service.MoreCards(c.Request.Context(), claims); err != nil {
		h.fail(c, "RequestMoreCards", err, "failed to extend deck")
		return
	}

	c.Status(http.StatusNoContent)
}

// Leave removes the caller from their session.
func (h *SessionHandler) Leave(c *gin.Context) {
	claims, ok := middlewares.ClaimsFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "verified claims are required")
		return
	}

	if err := h.service.Leave(c.Request.Context(), claims); err != nil {
		h.fail(c, "LeaveSession", err, "failed to leave session")
		return
	}

	c.Status(http.StatusNoContent)
}

// fail maps an operation error onto the response and raises a side-channel
// alert for faults that are not the caller's doing.
func (h *SessionHandler) fail(c *gin.Context, caller string, err error, message string) {
	var platformErr *platformerrors.PlatformError
	status := http.StatusInternalServerError
	if errors.As(err, &platformErr) {
		status = platformerrors.ErrorTypeToHTTPStatus(platformErr.GetErrorType())
	}

	if status >= http.StatusInternalServerError {
		h.notifier.Alert(c.Request.Context(), caller, err)
	}
	platformerrors.LogError(h.log, platformErr)
	responses.HandleError(c, err, message)
}
