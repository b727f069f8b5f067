package events

import (
	"log"
	"net/http"

	jwtsvc "reviewloop/internal/pkg/jwt"
	"reviewloop/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub *Hub
	jwt *jwtsvc.Service

	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, jwt *jwtsvc.Service) *Handler {
	return &Handler{
		hub: hub,
		jwt: jwt,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origin policy is enforced by the CORS middleware on the
			// HTTP side; the ws endpoint authenticates by token
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	if public != nil {
		public.GET("/ws/events", h.Subscribe)
	}
}

// Subscribe upgrades the connection and streams dashboard events until
// the client disconnects. Browsers cannot set an Authorization header
// on a websocket request, so the token comes from the query string.
func (h *Handler) Subscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing token")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed user_id=%d error=%v", claims.UserID, err)
		return
	}

	h.hub.Register(claims.UserID, conn)
	defer h.hub.Unregister(claims.UserID)

	// drain control/client frames; the feed is one-way
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
