package models

// Meal holds copies of dishes so later dish edits do not rewrite a logged meal.
type Meal struct {
	Base
	Name        string     `gorm:"index;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Image       string     `json:"image"`
	MealType    string     `gorm:"size:16;index" json:"meal_type"`
	Date        string     `gorm:"size:10;index" json:"date"` // YYYY-MM-DD
	PrepTime    int        `json:"prep_time"`
	Calories    float64    `json:"calories"`
	Status      string     `gorm:"size:16" json:"status"`
	UserID      *uint      `gorm:"index" json:"user_id"`
	Dishes      []MealDish `gorm:"constraint:OnDelete:CASCADE" json:"dishes"`
}

type MealDish struct {
	Base
	MealID      uint    `gorm:"index;not null" json:"meal_id"`
	DishID      uint    `gorm:"index;not null" json:"dish_id"`
	Name        string  `json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Image       string  `json:"image"`
	Calories    float64 `json:"calories"`
	Quantity    float64 `json:"quantity"`
}
