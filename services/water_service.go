package services

import (
	"fmt"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgWaterNotFound = "water not found"

type WaterService struct{ db *gorm.DB }

func NewWaterService(db *gorm.DB) *WaterService { return &WaterService{db: db} }

type WaterRequest struct {
	Date string  `json:"date" binding:"required,datetime=2006-01-02"`
	Goal float64 `json:"goal" binding:"gte=0"`
	Step float64 `json:"step" binding:"gte=0"`
}

type WaterQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// Add records a drink: goal and step are replaced, progress grows by step.
func (s *WaterService) Add(req WaterRequest, c utils.Caller) (*models.Water, error) {
	row := models.Water{UserID: c.ID, Date: req.Date, Goal: req.Goal, Step: req.Step, Progress: req.Step}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"goal":       req.Goal,
			"step":       req.Step,
			"progress":   gorm.Expr("waters.progress + ?", req.Step),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("upsert water: %w", err)
	}
	return s.Get(WaterQuery{Date: req.Date}, c)
}

func (s *WaterService) Get(q WaterQuery, c utils.Caller) (*models.Water, error) {
	var w models.Water
	if err := s.db.Where("user_id = ? AND date = ?", c.ID, q.Date).First(&w).Error; err != nil {
		return nil, utils.NotFoundOr(err, msgWaterNotFound)
	}
	return &w, nil
}
