package floorfeed

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"clubfloor/internal/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

type Handler struct {
	hub        *Hub
	jwtService *jwt.Service
}

func NewHandler(hub *Hub, jwtService *jwt.Service) *Handler {
	return &Handler{hub: hub, jwtService: jwtService}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ws/floor", h.HandleWebSocket)
}

// HandleWebSocket upgrades the connection and joins the floor feed.
//
// Endpoint: GET /ws/floor?token=JWT_TOKEN
//
// Authentication goes through a query parameter because browser
// WebSocket clients cannot set an Authorization header.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Token is required. Use ?token=YOUR_JWT_TOKEN",
		})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired token",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	log.Printf("floorfeed_connected user_id=%d", claims.UserID)
	h.hub.ServeWS(conn, claims.UserID)
	log.Printf("floorfeed_disconnected user_id=%d", claims.UserID)
}
