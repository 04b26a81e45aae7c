package api

import (
	"log/slog"
	"net/http"
	"strings"

	"campus-parking/internal/pkg/cookie"
	"campus-parking/internal/realtime"
	"campus-parking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub            *realtime.Hub
	tokenValidator usecase.TokenValidator
	upgrader       websocket.Upgrader
}

func NewWSHandler(hub *realtime.Hub, tokenValidator usecase.TokenValidator) *WSHandler {
	return &WSHandler{
		hub:            hub,
		tokenValidator: tokenValidator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the CORS layer for the REST surface;
			// the websocket endpoint authenticates per connection instead.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// @Summary Realtime updates
// @Description Upgrade to a websocket pushing zone, booking and notification changes
// @Tags realtime
// @Param token query string false "Access token (alternative to cookie/header)"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]string
// @Router /ws [get]
func (h *WSHandler) Serve(c *gin.Context) {
	token := h.connectionToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
		return
	}

	userID, _, err := h.tokenValidator.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the handshake failure.
		slog.Debug("websocket upgrade failed", "error", err)
		return
	}

	realtime.NewClient(h.hub, conn, userID).Serve()
}

// connectionToken also accepts a query parameter because browser websocket
// clients cannot set an Authorization header on the dial.
func (h *WSHandler) connectionToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return c.Query("token")
}
