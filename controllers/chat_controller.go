package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Chats *services.ChatService
}

func NewChatController(s *services.ChatService) *ChatController {
	return &ChatController{Chats: s}
}

func (cc *ChatController) Rooms(c *gin.Context) {
	var q services.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := cc.Chats.Rooms(c.Request.Context(), q, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get chat rooms success", "chat_rooms", page)
}

func (cc *ChatController) CreateRoom(c *gin.Context) {
	room, err := cc.Chats.CreateRoom(c.Request.Context(), caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Create chat room success", room)
}

func (cc *ChatController) Messages(c *gin.Context) {
	roomID, err := services.ParseRoomID(c.Param("chat_room_id"))
	if err != nil {
		c.Error(err)
		return
	}
	var q services.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := cc.Chats.Messages(c.Request.Context(), roomID, q, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get messages success", "messages", page)
}

func (cc *ChatController) Send(c *gin.Context) {
	roomID, err := services.ParseRoomID(c.Param("chat_room_id"))
	if err != nil {
		c.Error(err)
		return
	}
	var req services.MessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := cc.Chats.Send(c.Request.Context(), roomID, req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Send message success", msg)
}

func (cc *ChatController) DeleteRoom(c *gin.Context) {
	roomID, err := services.ParseRoomID(c.Param("chat_room_id"))
	if err != nil {
		c.Error(err)
		return
	}
	if err := cc.Chats.DeleteRoom(c.Request.Context(), roomID, caller(c)); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete chat room success", nil)
}
