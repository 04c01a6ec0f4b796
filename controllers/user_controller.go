package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users    *services.UserService
	Tracking *services.HealthTrackingService
	Water    *services.WaterService
}

func NewUserController(users *services.UserService, tracking *services.HealthTrackingService, water *services.WaterService) *UserController {
	return &UserController{Users: users, Tracking: tracking, Water: water}
}

func (uc *UserController) List(c *gin.Context) {
	var q services.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := uc.Users.List(q)
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get users success", "users", page)
}

func (uc *UserController) Me(c *gin.Context) {
	p, err := uc.Users.Me(caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get my profile success", p)
}

func (uc *UserController) UpdateMe(c *gin.Context) {
	var req services.UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := uc.Users.UpdateMe(c.Request.Context(), caller(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update my profile success", p)
}

func (uc *UserController) UpdateNotifySettings(c *gin.Context) {
	var req services.NotifySettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := uc.Users.UpdateNotifySettings(caller(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update notify settings success", out)
}

func (uc *UserController) Ban(c *gin.Context) {
	id, err := idParam(c, "user_id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := uc.Users.Ban(id); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Ban user success", nil)
}

func (uc *UserController) Unban(c *gin.Context) {
	id, err := idParam(c, "user_id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := uc.Users.Unban(id); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Unban user success", nil)
}

func (uc *UserController) UpsertHealthTracking(c *gin.Context) {
	var req services.HealthTrackingRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := uc.Tracking.Upsert(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Save health tracking success", out)
}

func (uc *UserController) GetHealthTracking(c *gin.Context) {
	var q services.HealthTrackingQuery
	if !bindQuery(c, &q) {
		return
	}
	out, err := uc.Tracking.Get(q, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get health tracking success", out)
}

func (uc *UserController) AddHealthTrackingDetail(c *gin.Context) {
	var req services.HealthTrackingDetailRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := uc.Tracking.AddDetail(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add health tracking detail success", out)
}

func (uc *UserController) AddWater(c *gin.Context) {
	var req services.WaterRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := uc.Water.Add(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Add water success", out)
}

func (uc *UserController) GetWater(c *gin.Context) {
	var q services.WaterQuery
	if !bindQuery(c, &q) {
		return
	}
	out, err := uc.Water.Get(q, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get water success", out)
}
