package models

type Dish struct {
	Base
	Name        string           `gorm:"index;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Image       string           `json:"image"`
	Video       string           `json:"video"`
	Instruction string           `gorm:"type:text" json:"instruction"`
	PrepTime    int              `json:"prep_time"` // minutes
	CookTime    int              `json:"cook_time"`
	Calories    float64          `json:"calories"`
	Rating      float64          `json:"rating"`
	UserID      *uint            `gorm:"index" json:"user_id"`
	Ingredients []DishIngredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
}

type DishIngredient struct {
	Base
	DishID       uint        `gorm:"index;not null" json:"dish_id"`
	IngredientID uint        `gorm:"index;not null" json:"ingredient_id"`
	Ingredient   *Ingredient `json:"ingredient,omitempty"`
	Quantity     float64     `json:"quantity"`
	Unit         string      `gorm:"size:16" json:"unit"`
}
