package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	Push *services.PushService
}

func NewDeviceController(ps *services.PushService) *DeviceController {
	return &DeviceController{Push: ps}
}

func (dc *DeviceController) Register(c *gin.Context) {
	var req services.RegisterDeviceRequest
	if !bindJSON(c, &req) {
		return
	}
	dev, err := dc.Push.RegisterDevice(c.Request.Context(), caller(c).ID, req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Register device success", gin.H{"endpoint_arn": dev.EndpointARN})
}

// POST /notifications/toggle
func (dc *DeviceController) Toggle(c *gin.Context) {
	var req services.ToggleRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := dc.Push.SetEnabled(caller(c).ID, req.Enabled); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Notifications updated", gin.H{"enabled": req.Enabled})
}
