package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(s *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: s}
}

func (nc *NotificationController) List(c *gin.Context) {
	var q services.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := nc.Notifications.List(q, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get notifications success", "notifications", page)
}

// PATCH /notifications/read
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	n, err := nc.Notifications.MarkAllRead(caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Read all notifications success", gin.H{"updated": n})
}

// POST /notifications/send (admin)
func (nc *NotificationController) Send(c *gin.Context) {
	var req services.SendNotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := nc.Notifications.Send(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	if n == nil {
		ok(c, "Notification is turned off by the user", nil)
		return
	}
	created(c, "Send notification success", n)
}
