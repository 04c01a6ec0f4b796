package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/testutil"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestChatRoomLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	store := newMemChatStore()
	hub := &fakeHub{}
	admin := testutil.Admin(t, db)
	svc := NewChatService(store, db, hub, "")
	ctx := context.Background()
	alice := testutil.Member(t, db)
	bob := testutil.Member(t, db)

	room, err := svc.CreateRoom(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, room.UserID)
	assert.Equal(t, admin.ID, room.AdminID)

	again, err := svc.CreateRoom(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, room.ID, again.ID, "existing room is reused")

	_, err = svc.CreateRoom(ctx, admin)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	msg, err := svc.Send(ctx, room.ID, MessageRequest{Message: "hello"}, alice)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, msg.SenderID)
	require.Len(t, hub.events, 2)
	assert.ElementsMatch(t, []uint{alice.ID, admin.ID}, []uint{hub.events[0].UserID, hub.events[1].UserID})
	assert.Equal(t, "chat.message", hub.events[0].Kind)

	_, err = svc.Send(ctx, room.ID, MessageRequest{Message: "reply"}, admin)
	require.NoError(t, err)

	page, err := svc.Messages(ctx, room.ID, SearchQuery{}, admin)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "reply", page.Items[0].Message)

	_, err = svc.Messages(ctx, room.ID, SearchQuery{}, bob)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))

	rooms, err := svc.Rooms(ctx, SearchQuery{}, alice)
	require.NoError(t, err)
	require.Len(t, rooms.Items, 1)
	require.NotNil(t, rooms.Items[0].LastMessage)
	assert.Equal(t, "reply", rooms.Items[0].LastMessage.Message)

	require.NoError(t, svc.DeleteRoom(ctx, room.ID, alice))
	_, err = svc.Messages(ctx, room.ID, SearchQuery{}, alice)
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestChatAdminByEmail(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.Admin(t, db)
	support := testutil.NewUser(t, db, models.RoleAdmin)
	svc := NewChatService(newMemChatStore(), db, nil, support.Email)

	room, err := svc.CreateRoom(context.Background(), testutil.Member(t, db))
	require.NoError(t, err)
	assert.Equal(t, support.ID, room.AdminID)
}

func TestChatNoAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewChatService(newMemChatStore(), db, nil, "")
	_, err := svc.CreateRoom(context.Background(), testutil.Member(t, db))
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestParseRoomID(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := ParseRoomID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseRoomID("not-an-id")
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}
