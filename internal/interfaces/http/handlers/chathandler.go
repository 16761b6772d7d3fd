package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"remory/internal/infrastructure/auth"
	"remory/internal/infrastructure/services"
	"remory/internal/shared/logger"
	"remory/internal/shared/utils"
)

// TokenDecoder verifies the handshake credential.
type TokenDecoder interface {
	Decode(tokenString string) (*auth.Claims, error)
}

type ChatHandler struct {
	hub      *services.ChatHub
	decoder  TokenDecoder
	upgrader websocket.Upgrader
	logger   logger.Interface
}

func NewChatHandler(hub *services.ChatHub, decoder TokenDecoder, logger logger.Interface) *ChatHandler {
	return &ChatHandler{
		hub:     hub,
		decoder: decoder,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser websocket clients cannot set custom headers, so the
			// token arrives as a query parameter and origins stay open.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// JoinRoom handles GET /ws/chat/rooms/:roomID. The websocket path bypasses
// the dual-token filter; the access token is checked here at handshake time
// instead.
func (h *ChatHandler) JoinRoom(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = utils.BearerToken(c, utils.AuthorizationHeader)
	}

	claims, err := h.decoder.Decode(token)
	if err != nil || claims.TokenClass != auth.TokenClassAccess || claims.Expired() {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Valid access token required")
		return
	}

	roomID := c.Param("roomID")
	if roomID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "room ID is required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err, "room_id", roomID)
		return
	}

	sender := claims.DisplayName
	if sender == "" {
		sender = claims.SubjectID
	}
	h.hub.Serve(c.Request.Context(), roomID, sender, conn)
}
