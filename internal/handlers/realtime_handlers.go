package handlers

import (
	"net/http"
	"strings"
	"time"

	"club_manager_backend/internal/realtime"
	"club_manager_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second
)

// RealtimeHandler upgrades HTTP requests to websocket subscriptions on the
// change broker.
type RealtimeHandler struct {
	broker   *realtime.Broker
	upgrader websocket.Upgrader
}

// NewRealtimeHandler creates a new RealtimeHandler.
func NewRealtimeHandler(broker *realtime.Broker) *RealtimeHandler {
	return &RealtimeHandler{
		broker: broker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS middleware already gates the HTTP surface.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe upgrades the connection and streams change notifications until
// the client disconnects. A "collections" query parameter with comma
// separated names narrows the stream; without it every change is delivered.
// Browsers cannot set headers on websocket dials, so the JWT is accepted
// from a "token" query parameter as well as the Authorization header.
func (h *RealtimeHandler) Subscribe(c *gin.Context) {
	if !h.authenticate(c) {
		return
	}

	var collections []string
	if raw := c.Query("collections"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				collections = append(collections, name)
			}
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.LogError(err, "RealtimeHandler: websocket upgrade failed")
		return
	}

	sub := h.broker.Subscribe(collections...)
	defer sub.Close()
	defer conn.Close()

	// Reader goroutine drains control frames and unblocks the writer on
	// disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case n, open := <-sub.C:
			if !open {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(n); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// authenticate validates the JWT before the upgrade so failures produce a
// plain HTTP 401 instead of a broken websocket handshake.
func (h *RealtimeHandler) authenticate(c *gin.Context) bool {
	tokenString := c.Query("token")
	if tokenString == "" {
		parts := strings.Split(c.GetHeader("Authorization"), " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", ""))
		return false
	}
	if _, err := utils.ValidateToken(tokenString); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token.", err.Error()))
		return false
	}
	return true
}
