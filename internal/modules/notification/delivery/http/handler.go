package handler

import (
	"log"
	"net/http"
	"strconv"

	notification "github.com/torcriss/CocoReddit-sub000/internal/modules/notification/service"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/torcriss/CocoReddit-sub000/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin enforcement happens in the CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type NotificationHandler struct {
	service     notification.NotificationService
	redisClient *redis.Client
}

func NewNotificationHandler(service notification.NotificationService, redisClient *redis.Client) *NotificationHandler {
	return &NotificationHandler{
		service:     service,
		redisClient: redisClient,
	}
}

func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notifications, err := h.service.GetNotifications(c.Request.Context(), ident, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), ident)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid notification id"))
		return
	}

	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), ident, id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.MarkAllAsRead(c.Request.Context(), ident); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all marked as read"})
}

// HandleWebSocket bridges the recipient's redis notification channels onto a
// websocket connection for live delivery.
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	ident, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.redisClient == nil {
		response.Error(c, apperror.New(http.StatusServiceUnavailable, "live notifications unavailable", nil))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Author identity is recorded under any historical alias, so subscribe
	// to every alias channel.
	channels := make([]string, 0, len(ident.Aliases()))
	for _, alias := range ident.Aliases() {
		channels = append(channels, notification.Channel(alias))
	}

	sub := h.redisClient.Subscribe(c.Request.Context(), channels...)
	defer sub.Close()

	// Drain client frames so pings are answered and closure is noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
