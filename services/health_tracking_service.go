package services

import (
	"fmt"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgHealthTrackingNotFound = "health tracking not found"

// HealthTrackingService keeps the per-day calorie totals.
type HealthTrackingService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewHealthTrackingService(db *gorm.DB, loc *time.Location) *HealthTrackingService {
	if loc == nil {
		loc = time.Local
	}
	return &HealthTrackingService{db: db, loc: loc, now: time.Now}
}

type HealthTrackingRequest struct {
	Date   string  `json:"date" binding:"required,datetime=2006-01-02"`
	Type   string  `json:"type" binding:"required,oneof='Calories Consumed' 'Calories Burned'"`
	Value  float64 `json:"value" binding:"gte=0"`
	Target float64 `json:"target" binding:"gte=0"`
}

type HealthTrackingQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
	Type string `form:"type" binding:"required,oneof='Calories Consumed' 'Calories Burned'"`
}

type HealthTrackingDetailRequest struct {
	Type       string  `json:"type" binding:"required,oneof='Calories Consumed' 'Calories Burned'"`
	ExerciseID *uint   `json:"exercise_id"`
	DishID     *uint   `json:"dish_id"`
	Name       string  `json:"name"`
	Value      float64 `json:"value" binding:"gt=0"`
}

// today is the calendar date in the service's zone.
func (s *HealthTrackingService) today() string {
	return s.now().In(s.loc).Format(time.DateOnly)
}

// Upsert sets value and target for (caller, date, type).
func (s *HealthTrackingService) Upsert(req HealthTrackingRequest, c utils.Caller) (*models.HealthTracking, error) {
	row := models.HealthTracking{UserID: c.ID, Date: req.Date, Type: req.Type, Value: req.Value, Target: req.Target}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "target", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("upsert health tracking: %w", err)
	}
	return s.Get(HealthTrackingQuery{Date: req.Date, Type: req.Type}, c)
}

func (s *HealthTrackingService) Get(q HealthTrackingQuery, c utils.Caller) (*models.HealthTracking, error) {
	var row models.HealthTracking
	err := s.db.Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("user_id = ? AND date = ? AND type = ?", c.ID, q.Date, q.Type).
		First(&row).Error
	if err != nil {
		return nil, utils.NotFoundOr(err, msgHealthTrackingNotFound)
	}
	return &row, nil
}

// AddDetail appends an entry to today's tracking and adds its value to the total.
// The tracking row must already exist (the daily job seeds it).
func (s *HealthTrackingService) AddDetail(req HealthTrackingDetailRequest, c utils.Caller) (*models.HealthTracking, error) {
	date := s.today()
	tracking, err := s.Get(HealthTrackingQuery{Date: date, Type: req.Type}, c)
	if err != nil {
		return nil, err
	}
	name := req.Name
	err = s.db.Transaction(func(tx *gorm.DB) error {
		switch {
		case req.ExerciseID != nil:
			ex, err := first[models.Exercise](tx, *req.ExerciseID, msgExerciseNotFound)
			if err != nil {
				return err
			}
			if name == "" {
				name = ex.Name
			}
		case req.DishID != nil:
			d, err := first[models.Dish](tx, *req.DishID, msgDishNotFound)
			if err != nil {
				return err
			}
			if name == "" {
				name = d.Name
			}
		}
		detail := models.HealthTrackingDetail{
			HealthTrackingID: tracking.ID,
			ExerciseID:       req.ExerciseID,
			DishID:           req.DishID,
			Name:             name,
			Value:            req.Value,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return err
		}
		return tx.Model(&models.HealthTracking{}).Where("id = ?", tracking.ID).
			Update("value", gorm.Expr("value + ?", req.Value)).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(HealthTrackingQuery{Date: date, Type: req.Type}, c)
}
