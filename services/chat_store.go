package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tuonghuynh11/HealthAppAPI/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatStore persists chat rooms and messages. Lookups return nil, nil when absent.
type ChatStore interface {
	FindRoom(ctx context.Context, userID, adminID uint) (*models.ChatRoom, error)
	GetRoom(ctx context.Context, id primitive.ObjectID) (*models.ChatRoom, error)
	CreateRoom(ctx context.Context, room *models.ChatRoom) error
	RoomsFor(ctx context.Context, userID uint, page, limit int) ([]models.ChatRoom, int64, error)
	AddMessage(ctx context.Context, msg *models.ChatDetail) error
	Messages(ctx context.Context, roomID primitive.ObjectID, page, limit int) ([]models.ChatDetail, int64, error)
	DeleteRoom(ctx context.Context, id primitive.ObjectID) error
}

type MongoChatStore struct {
	rooms    *mongo.Collection
	messages *mongo.Collection
}

func NewMongoChatStore(db *mongo.Database) *MongoChatStore {
	return &MongoChatStore{rooms: db.Collection("chat_rooms"), messages: db.Collection("chat_details")}
}

// EnsureIndexes creates the lookup indexes used by the store.
func (s *MongoChatStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.rooms.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "admin_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("chat room indexes: %w", err)
	}
	_, err = s.messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("chat message indexes: %w", err)
	}
	return nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (*T, error) {
	var out T
	err := coll.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MongoChatStore) FindRoom(ctx context.Context, userID, adminID uint) (*models.ChatRoom, error) {
	return findOne[models.ChatRoom](ctx, s.rooms, bson.M{"user_id": userID, "admin_id": adminID})
}

func (s *MongoChatStore) GetRoom(ctx context.Context, id primitive.ObjectID) (*models.ChatRoom, error) {
	return findOne[models.ChatRoom](ctx, s.rooms, bson.M{"_id": id})
}

func (s *MongoChatStore) CreateRoom(ctx context.Context, room *models.ChatRoom) error {
	res, err := s.rooms.InsertOne(ctx, room)
	if err != nil {
		return fmt.Errorf("insert chat room: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		room.ID = id
	}
	return nil
}

func pageOpts(page, limit int) *options.FindOptions {
	return options.Find().SetSkip(int64((page - 1) * limit)).SetLimit(int64(limit))
}

func (s *MongoChatStore) RoomsFor(ctx context.Context, userID uint, page, limit int) ([]models.ChatRoom, int64, error) {
	filter := bson.M{"$or": bson.A{bson.M{"user_id": userID}, bson.M{"admin_id": userID}}}
	total, err := s.rooms.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cur, err := s.rooms.Find(ctx, filter, pageOpts(page, limit).SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, 0, err
	}
	rooms := []models.ChatRoom{}
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

// AddMessage inserts the message and makes it the room's last message.
func (s *MongoChatStore) AddMessage(ctx context.Context, msg *models.ChatDetail) error {
	res, err := s.messages.InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = id
	}
	_, err = s.rooms.UpdateByID(ctx, msg.RoomID, bson.M{"$set": bson.M{
		"last_message": msg,
		"updated_at":   msg.CreatedAt,
	}})
	return err
}

func (s *MongoChatStore) Messages(ctx context.Context, roomID primitive.ObjectID, page, limit int) ([]models.ChatDetail, int64, error) {
	filter := bson.M{"room_id": roomID}
	total, err := s.messages.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cur, err := s.messages.Find(ctx, filter, pageOpts(page, limit).SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, 0, err
	}
	msgs := []models.ChatDetail{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}

func (s *MongoChatStore) DeleteRoom(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.messages.DeleteMany(ctx, bson.M{"room_id": id}); err != nil {
		return fmt.Errorf("delete chat messages: %w", err)
	}
	_, err := s.rooms.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
