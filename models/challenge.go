package models

import (
	"gorm.io/datatypes"
)

// MealCopy is the meal embedded in a challenge.
type MealCopy struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	MealType    string         `json:"meal_type"`
	Calories    float64        `json:"calories"`
	Dishes      []MealDishCopy `json:"dishes"`
}

type MealDishCopy struct {
	DishID   uint    `json:"dish_id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Calories float64 `json:"calories"`
	Quantity float64 `json:"quantity"`
}

type Challenge struct {
	Base
	Name          string                        `gorm:"index;not null" json:"name"`
	Type          string                        `gorm:"size:16;index" json:"type"`
	Description   string                        `gorm:"type:text" json:"description"`
	Image         string                        `json:"image"`
	Target        string                        `gorm:"size:32" json:"target"`
	TargetImage   string                        `json:"target_image"`
	FitnessGoal   string                        `json:"fitness_goal"`
	Prize         string                        `json:"prize"`
	StartDate     string                        `gorm:"size:10" json:"start_date"`
	EndDate       string                        `gorm:"size:10" json:"end_date"`
	Status        string                        `gorm:"size:16;index" json:"status"`
	CreatedBy     uint                          `json:"created_by"`
	MealID        *uint                         `gorm:"index" json:"meal_id"`
	WorkoutPlanID *uint                         `gorm:"index" json:"workout_plan_id"`
	MealSnapshot  datatypes.JSONType[*MealCopy] `json:"meal"`
	PlanSnapshot  datatypes.JSONType[*PlanTree] `json:"workout_plan"`
}

// ChallengeCopy is what a user keeps after joining.
type ChallengeCopy struct {
	ChallengeID uint      `json:"challenge_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Target      string    `json:"target"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Meal        *MealCopy `json:"meal"`
	Workout     *PlanTree `json:"workout_plan"`
}

type UserChallenge struct {
	Base
	UserID      uint                              `gorm:"uniqueIndex:idx_user_challenge;not null" json:"user_id"`
	ChallengeID uint                              `gorm:"uniqueIndex:idx_user_challenge;not null" json:"challenge_id"`
	Status      string                            `gorm:"size:16" json:"status"`
	Snapshot    datatypes.JSONType[ChallengeCopy] `json:"challenge"`
}
