package models

// Nutrient values are per one unit of the ingredient.
type Ingredient struct {
	Base
	Name        string  `gorm:"index;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Image       string  `json:"image"`
	Unit        string  `gorm:"size:16" json:"unit"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Fat         float64 `json:"fat"`
	Carbs       float64 `json:"carbs"`
	Sugar       float64 `json:"sugar"`
	Sodium      float64 `json:"sodium"`
	Cholesterol float64 `json:"cholesterol"`
}
