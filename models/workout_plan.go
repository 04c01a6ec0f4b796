package models

type WorkoutPlan struct {
	Base
	Name          string              `gorm:"index;not null" json:"name"`
	Description   string              `gorm:"type:text" json:"description"`
	Image         string              `json:"image"`
	Level         string              `gorm:"size:16;index" json:"level"`
	Status        string              `gorm:"size:16;index" json:"status"`
	NumberOfWeeks int                 `json:"number_of_weeks"`
	TotalCalories float64             `json:"total_calories"`
	StartDate     string              `gorm:"size:10" json:"start_date"`
	EndDate       string              `gorm:"size:10" json:"end_date"`
	Rating        float64             `json:"rating"`
	UserID        *uint               `gorm:"index" json:"user_id"`
	Details       []WorkoutPlanDetail `gorm:"constraint:OnDelete:CASCADE" json:"details"`
}

type WorkoutPlanDetail struct {
	Base
	WorkoutPlanID uint   `gorm:"index;not null" json:"workout_plan_id"`
	Day           int    `json:"day"`
	Week          int    `json:"week"`
	Status        string `gorm:"size:16" json:"status"`
	Sets          []Set  `gorm:"many2many:workout_plan_detail_sets" json:"sets"`
}
