package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/testutil"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify_RespectsSettings(t *testing.T) {
	db := testutil.NewDB(t)
	hub := &fakeHub{}
	push := &fakePusher{err: errors.New("endpoint disabled")}
	svc := NewNotificationService(db, hub, push)
	user := testutil.Member(t, db)

	off := false
	settings, err := NewUserService(db, nil).UpdateNotifySettings(user, NotifySettingsRequest{IsWater: &off})
	require.NoError(t, err)
	assert.False(t, settings.IsWater)
	assert.True(t, settings.IsChallenge)

	require.NoError(t, svc.Notify(context.Background(), user.ID, models.NotifyWater, "Drink", "Time for water"))
	assert.Empty(t, hub.events)
	assert.Empty(t, push.calls)

	require.NoError(t, svc.Notify(context.Background(), user.ID, models.NotifyChallenge, "Joined", "Good luck"), "push failures are logged, not returned")
	require.Len(t, hub.events, 1)
	assert.Equal(t, user.ID, hub.events[0].UserID)
	assert.Equal(t, "notification", hub.events[0].Kind)
	assert.Equal(t, []uint{user.ID}, push.calls)

	page, err := svc.List(SearchQuery{}, user)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Joined", page.Items[0].Title)
	assert.False(t, page.Items[0].IsRead)

	n, err := svc.MarkAllRead(user)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestNotificationSend_TurnedOff(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewNotificationService(db, nil, nil)
	user := testutil.Member(t, db)

	off := false
	_, err := NewUserService(db, nil).UpdateNotifySettings(user, NotifySettingsRequest{IsAdmin: &off})
	require.NoError(t, err)

	n, err := svc.Send(context.Background(), SendNotificationRequest{UserID: user.ID, Title: "Hi", Message: "Hello"})
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = svc.Send(context.Background(), SendNotificationRequest{UserID: 999, Title: "Hi", Message: "Hello"})
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestReportUpdateStatus(t *testing.T) {
	db := testutil.NewDB(t)
	notifier := &fakeNotifier{}
	svc := NewReportService(db, notifier)
	user := testutil.Member(t, db)

	r, err := svc.Add(ReportRequest{Title: "Broken image", Description: "The dish image is missing"}, user)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackUnread, r.Status)

	_, err = svc.UpdateStatus(context.Background(), UpdateReportStatusRequest{ReportIDs: []uint{r.ID, 999}, Status: models.FeedbackRead})
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
	unchanged, err := svc.GetByID(r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackUnread, unchanged.Status)

	_, err = svc.UpdateStatus(context.Background(), UpdateReportStatusRequest{ReportIDs: []uint{r.ID}, Status: models.FeedbackResponded})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), UpdateReportStatusRequest{ReportIDs: []uint{r.ID}, Status: models.FeedbackResponded})
	require.NoError(t, err)

	require.Len(t, notifier.sent, 1, "only the first transition to Responded notifies")
	assert.Equal(t, user.ID, notifier.sent[0].UserID)
	assert.Equal(t, models.NotifyAdmin, notifier.sent[0].Type)

	detail, err := svc.GetByID(r.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.From)
	assert.Equal(t, user.ID, detail.From.ID)
}
