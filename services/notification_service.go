package services

import (
	"context"
	"fmt"
	"log"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

// NotificationSender is what other services use to reach a user.
type NotificationSender interface {
	Notify(ctx context.Context, userID uint, t models.NotificationType, title, message string) error
}

// NotificationService persists notifications and fans them out to the
// websocket hub and mobile push. Both outlets are optional.
type NotificationService struct {
	db   *gorm.DB
	hub  Broadcaster
	push Pusher
}

func NewNotificationService(db *gorm.DB, hub Broadcaster, push Pusher) *NotificationService {
	return &NotificationService{db: db, hub: hub, push: push}
}

type SendNotificationRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type ToggleRequest struct {
	Enabled bool `json:"enabled"`
}

// Notify is a no-op when the recipient turned the notification type off.
func (s *NotificationService) Notify(ctx context.Context, userID uint, t models.NotificationType, title, message string) error {
	_, err := s.deliver(ctx, userID, t, title, message)
	return err
}

func (s *NotificationService) deliver(ctx context.Context, userID uint, t models.NotificationType, title, message string) (*models.Notification, error) {
	var user models.User
	if err := s.db.Select("id", "notify_is_challenge", "notify_is_eating", "notify_is_workout",
		"notify_is_water", "notify_is_admin", "notify_is_health").First(&user, userID).Error; err != nil {
		return nil, utils.NotFoundOr(err, msgUserNotFound)
	}
	if !user.NotifySettings.Allows(t) {
		return nil, nil
	}

	n := &models.Notification{UserID: userID, Title: title, Message: message, Type: t}
	if err := s.db.Create(n).Error; err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	if s.hub != nil {
		s.hub.Send(userID, "notification", n)
	}
	if s.push != nil {
		data := map[string]string{"type": string(t), "notificationId": fmt.Sprintf("%d", n.ID)}
		if err := s.push.PushToUser(ctx, userID, title, message, data); err != nil {
			log.Printf("push notification %d: %v", n.ID, err)
		}
	}
	return n, nil
}

// Send is the admin-initiated notification.
func (s *NotificationService) Send(ctx context.Context, req SendNotificationRequest) (*models.Notification, error) {
	return s.deliver(ctx, req.UserID, models.NotifyAdmin, req.Title, req.Message)
}

var notificationList = listSpec{
	sortable:    columns("created_at"),
	defaultSort: "created_at",
	defaultDesc: true,
}

func (s *NotificationService) List(q SearchQuery, c utils.Caller) (*Page[models.Notification], error) {
	db := s.db.Model(&models.Notification{}).Where("user_id = ?", c.ID)
	return paginate[models.Notification](db, notificationList, q)
}

// MarkAllRead returns how many notifications changed.
func (s *NotificationService) MarkAllRead(c utils.Caller) (int64, error) {
	res := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", c.ID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
