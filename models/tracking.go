package models

// HealthTracking is a per-day running total. The (user_id, date, type) index
// keeps one row per natural key.
type HealthTracking struct {
	Base
	UserID  uint                   `gorm:"uniqueIndex:idx_tracking_day;not null" json:"user_id"`
	Date    string                 `gorm:"uniqueIndex:idx_tracking_day;size:10;not null" json:"date"`
	Type    string                 `gorm:"uniqueIndex:idx_tracking_day;size:32;not null" json:"type"`
	Value   float64                `json:"value"`
	Target  float64                `json:"target"`
	Details []HealthTrackingDetail `gorm:"constraint:OnDelete:CASCADE" json:"healthTrackingDetails"`
}

type HealthTrackingDetail struct {
	Base
	HealthTrackingID uint    `gorm:"index;not null" json:"health_tracking_id"`
	ExerciseID       *uint   `gorm:"index" json:"exercise_id"`
	DishID           *uint   `gorm:"index" json:"dish_id"`
	Name             string  `json:"name"`
	Value            float64 `json:"value"`
}

type Water struct {
	Base
	UserID   uint    `gorm:"uniqueIndex:idx_water_day;not null" json:"user_id"`
	Date     string  `gorm:"uniqueIndex:idx_water_day;size:10;not null" json:"date"`
	Goal     float64 `json:"goal"` // ml
	Step     float64 `json:"step"`
	Progress float64 `json:"progress"`
}
