package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bb3/bodybuddy/internal/middleware"
	"github.com/bb3/bodybuddy/internal/services"
	"github.com/bb3/bodybuddy/pkg/response"
)

type ChatHandler struct {
	chats *services.ChatService
}

func NewChatHandler(chats *services.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// Create opens a chat room in a gym the caller belongs to.
// POST /api/gyms/:id/chats
func (h *ChatHandler) Create(c *gin.Context) {
	gymID := pathID(c)
	if gymID == 0 {
		return
	}

	var req services.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	chat, err := h.chats.CreateChat(gymID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, chat)
}

// ListByGym returns a gym's chat rooms.
// GET /api/gyms/:id/chats
func (h *ChatHandler) ListByGym(c *gin.Context) {
	gymID := pathID(c)
	if gymID == 0 {
		return
	}

	chats, err := h.chats.ListByGym(gymID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, chats)
}

// Join enters a chat room.
// POST /api/chats/:id/join
func (h *ChatHandler) Join(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	if err := h.chats.Join(id, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "joined"})
}

// SendMessage posts a message to a room the caller has joined.
// POST /api/chats/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	var req services.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	msg, err := h.chats.SendMessage(id, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, msg)
}

// Messages returns a room's history, oldest first.
// GET /api/chats/:id/messages
func (h *ChatHandler) Messages(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	msgs, err := h.chats.Messages(id, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msgs)
}
