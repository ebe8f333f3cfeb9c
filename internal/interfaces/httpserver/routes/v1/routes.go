package v1

import (
	"github.com/gin-gonic/gin"

	"swipehub/session-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	auth     gin.HandlerFunc
}

func NewRoutes(provider *handlers.Provider, auth gin.HandlerFunc) *Routes {
	return &Routes{handlers: provider, auth: auth}
}

// Register attaches all v1 routes under /v1 prefix. Card and leave calls
// carry claims, so they sit behind the auth middleware.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")
	group.POST("/sessions", r.handlers.Session.Create)
	group.POST("/sessions/:id/join", r.handlers.Session.Join)

	authed := group.Group("", r.auth)
	authed.POST("/sessions/cards", r.handlers.Session.MoreCards)
	authed.POST("/sessions/leave", r.handlers.Session.Leave)
}
