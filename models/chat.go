package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat data lives in MongoDB. A room pairs one user with the admin.
type ChatRoom struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	UserID      uint               `bson:"user_id" json:"user_id"`
	AdminID     uint               `bson:"admin_id" json:"admin_id"`
	LastMessage *ChatDetail        `bson:"last_message,omitempty" json:"last_message,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

func (r *ChatRoom) HasMember(userID uint) bool {
	return r.UserID == userID || r.AdminID == userID
}

type ChatDetail struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RoomID    primitive.ObjectID `bson:"room_id" json:"chat_room_id"`
	SenderID  uint               `bson:"sender_id" json:"sender_id"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
