package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

const (
	msgChatRoomNotFound  = "chat room not found"
	msgChatNoPermission  = "you are not a member of this chat room"
	msgNoAdminAvailable  = "no admin is available"
	msgAdminCannotOpen   = "admins cannot open a chat room with themselves"
	msgInvalidChatRoomID = "invalid chat room id"
)

type ChatService struct {
	store      ChatStore
	db         *gorm.DB
	hub        Broadcaster
	adminEmail string
	now        func() time.Time
}

func NewChatService(store ChatStore, db *gorm.DB, hub Broadcaster, adminEmail string) *ChatService {
	return &ChatService{store: store, db: db, hub: hub, adminEmail: adminEmail, now: time.Now}
}

type MessageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

func ParseRoomID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, utils.BadRequest(msgInvalidChatRoomID)
	}
	return id, nil
}

// admin picks the configured support admin, falling back to the first admin.
func (s *ChatService) admin() (*models.User, error) {
	var u models.User
	q := s.db.Where("role = ?", models.RoleAdmin)
	if s.adminEmail != "" {
		if err := q.Session(&gorm.Session{}).Where("email = ?", s.adminEmail).First(&u).Error; err == nil {
			return &u, nil
		}
	}
	if err := q.Order("id").First(&u).Error; err != nil {
		return nil, utils.NotFoundOr(err, msgNoAdminAvailable)
	}
	return &u, nil
}

// member loads a room and checks the caller belongs to it.
func (s *ChatService) member(ctx context.Context, id primitive.ObjectID, c utils.Caller) (*models.ChatRoom, error) {
	room, err := s.store.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, utils.NotFound(msgChatRoomNotFound)
	}
	if !room.HasMember(c.ID) {
		return nil, utils.Forbidden(msgChatNoPermission)
	}
	return room, nil
}

func (s *ChatService) Rooms(ctx context.Context, q SearchQuery, c utils.Caller) (*Page[models.ChatRoom], error) {
	page, limit := utils.NormalizePage(q.Page, q.Limit)
	rooms, total, err := s.store.RoomsFor(ctx, c.ID, page, limit)
	if err != nil {
		return nil, err
	}
	return &Page[models.ChatRoom]{Items: rooms, Pagination: utils.NewPagination(page, limit, total)}, nil
}

// CreateRoom opens the caller's room with the admin, or returns the existing one.
func (s *ChatService) CreateRoom(ctx context.Context, c utils.Caller) (*models.ChatRoom, error) {
	if c.IsAdmin() {
		return nil, utils.BadRequest(msgAdminCannotOpen)
	}
	user, err := first[models.User](s.db, c.ID, msgUserNotFound)
	if err != nil {
		return nil, err
	}
	admin, err := s.admin()
	if err != nil {
		return nil, err
	}
	room, err := s.store.FindRoom(ctx, user.ID, admin.ID)
	if err != nil || room != nil {
		return room, err
	}
	now := s.now()
	room = &models.ChatRoom{
		Name:      fmt.Sprintf("%s - %s", user.FullName, admin.FullName),
		UserID:    user.ID,
		AdminID:   admin.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *ChatService) Messages(ctx context.Context, roomID primitive.ObjectID, q SearchQuery, c utils.Caller) (*Page[models.ChatDetail], error) {
	if _, err := s.member(ctx, roomID, c); err != nil {
		return nil, err
	}
	page, limit := utils.NormalizePage(q.Page, q.Limit)
	msgs, total, err := s.store.Messages(ctx, roomID, page, limit)
	if err != nil {
		return nil, err
	}
	return &Page[models.ChatDetail]{Items: msgs, Pagination: utils.NewPagination(page, limit, total)}, nil
}

// Send stores the message and pushes it to both participants' sockets.
func (s *ChatService) Send(ctx context.Context, roomID primitive.ObjectID, req MessageRequest, c utils.Caller) (*models.ChatDetail, error) {
	room, err := s.member(ctx, roomID, c)
	if err != nil {
		return nil, err
	}
	msg := &models.ChatDetail{RoomID: room.ID, SenderID: c.ID, Message: req.Message, CreatedAt: s.now()}
	if err := s.store.AddMessage(ctx, msg); err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.Send(room.UserID, "chat.message", msg)
		s.hub.Send(room.AdminID, "chat.message", msg)
	}
	return msg, nil
}

func (s *ChatService) DeleteRoom(ctx context.Context, roomID primitive.ObjectID, c utils.Caller) error {
	if _, err := s.member(ctx, roomID, c); err != nil {
		return err
	}
	return s.store.DeleteRoom(ctx, roomID)
}
