package models

type Exercise struct {
	Base
	Name                   string  `gorm:"index;not null" json:"name"`
	Category               string  `gorm:"size:16;index" json:"category"` // Cardio | Strength
	Description            string  `gorm:"type:text" json:"description"`
	Instructions           string  `gorm:"type:text" json:"instructions"`
	TargetMuscle           string  `json:"target_muscle"`
	Equipment              string  `json:"equipment"`
	Image                  string  `json:"image"`
	Video                  string  `json:"video"`
	CaloriesBurnPerMinutes float64 `json:"calories_burn_per_minutes"`
	Rating                 float64 `json:"rating"`
}

// ExerciseOption is the id+name projection used by pickers.
type ExerciseOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
