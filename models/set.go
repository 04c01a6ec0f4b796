package models

type Set struct {
	Base
	Name              string        `gorm:"index;not null" json:"name"`
	Type              string        `gorm:"size:16" json:"type"`                 // Beginner | Intermediate | Advanced
	Description       string        `gorm:"type:text" json:"description"`
	Image             string        `json:"image"`
	NumberOfExercises int           `json:"number_of_exercises"`
	TotalCalories     float64       `json:"total_calories"`
	Rating            float64       `json:"rating"`
	IsFavorite        bool          `json:"is_favorite"`
	UserID            *uint         `gorm:"index" json:"user_id"`
	ChallengeID       *uint         `gorm:"index" json:"challenge_id,omitempty"` // set only on a challenge's inline workout
	SetExercises      []SetExercise `gorm:"constraint:OnDelete:CASCADE" json:"set_exercises"`
}

type SetExercise struct {
	Base
	SetID                   uint      `gorm:"index;not null" json:"set_id"`
	ExerciseID              uint      `gorm:"index;not null" json:"exercise_id"`
	Exercise                *Exercise `json:"exercise,omitempty"`
	Duration                int       `json:"duration"`       // seconds
	Reps                    int       `json:"reps"`
	Round                   int       `json:"round"`
	RestPerRound            int       `json:"rest_per_round"` // seconds
	EstimatedCaloriesBurned float64   `json:"estimated_calories_burned"`
	Status                  string    `gorm:"size:16" json:"status"`
	Orders                  int       `json:"orders"`
}
