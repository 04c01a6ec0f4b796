package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/tuonghuynh11/HealthAppAPI/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sentEvent struct {
	UserID uint
	Kind   string
	Data   any
}

type fakeHub struct {
	mu     sync.Mutex
	events []sentEvent
}

func (h *fakeHub) Send(userID uint, kind string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, sentEvent{userID, kind, payload})
}

type fakePusher struct {
	calls []uint
	err   error
}

func (p *fakePusher) PushToUser(_ context.Context, userID uint, _, _ string, _ map[string]string) error {
	p.calls = append(p.calls, userID)
	return p.err
}

type notified struct {
	UserID uint
	Type   models.NotificationType
	Title  string
}

type fakeNotifier struct{ sent []notified }

func (n *fakeNotifier) Notify(_ context.Context, userID uint, t models.NotificationType, title, _ string) error {
	n.sent = append(n.sent, notified{userID, t, title})
	return nil
}

type memChatStore struct {
	rooms    map[primitive.ObjectID]*models.ChatRoom
	messages []models.ChatDetail
}

func newMemChatStore() *memChatStore {
	return &memChatStore{rooms: map[primitive.ObjectID]*models.ChatRoom{}}
}

func (m *memChatStore) FindRoom(_ context.Context, userID, adminID uint) (*models.ChatRoom, error) {
	for _, r := range m.rooms {
		if r.UserID == userID && r.AdminID == adminID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memChatStore) GetRoom(_ context.Context, id primitive.ObjectID) (*models.ChatRoom, error) {
	return m.rooms[id], nil
}

func (m *memChatStore) CreateRoom(_ context.Context, room *models.ChatRoom) error {
	room.ID = primitive.NewObjectID()
	m.rooms[room.ID] = room
	return nil
}

func (m *memChatStore) RoomsFor(_ context.Context, userID uint, _, _ int) ([]models.ChatRoom, int64, error) {
	var out []models.ChatRoom
	for _, r := range m.rooms {
		if r.HasMember(userID) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, int64(len(out)), nil
}

func (m *memChatStore) AddMessage(_ context.Context, msg *models.ChatDetail) error {
	r, ok := m.rooms[msg.RoomID]
	if !ok {
		return errors.New("room not found")
	}
	msg.ID = primitive.NewObjectID()
	m.messages = append(m.messages, *msg)
	cp := *msg
	r.LastMessage = &cp
	r.UpdatedAt = msg.CreatedAt
	return nil
}

func (m *memChatStore) Messages(_ context.Context, roomID primitive.ObjectID, _, _ int) ([]models.ChatDetail, int64, error) {
	var out []models.ChatDetail
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].RoomID == roomID {
			out = append(out, m.messages[i])
		}
	}
	return out, int64(len(out)), nil
}

func (m *memChatStore) DeleteRoom(_ context.Context, id primitive.ObjectID) error {
	delete(m.rooms, id)
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.RoomID != id {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return nil
}

type fakeStorage struct {
	keys []string
	err  error
}

func (s *fakeStorage) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return "https://cdn.example.com/" + key, nil
}

type fakeModerator struct{ labels []string }

func (m fakeModerator) Moderate(context.Context, []byte) ([]string, error) { return m.labels, nil }
