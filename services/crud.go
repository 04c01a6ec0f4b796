package services

import (
	"fmt"

	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

type RatingRequest struct {
	Value float64 `json:"value" binding:"required,min=1,max=5"`
}

// Patch collects the columns a partial update touches.
type Patch map[string]any

func setIf[T any](p Patch, column string, v *T) {
	if v != nil {
		p[column] = *v
	}
}

func first[T any](db *gorm.DB, id uint, notFound string, preloads ...string) (*T, error) {
	var row T
	q := db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&row, id).Error; err != nil {
		return nil, utils.NotFoundOr(err, notFound)
	}
	return &row, nil
}

func applyPatch[T any](db *gorm.DB, id uint, p Patch) error {
	if len(p) == 0 {
		return nil
	}
	if err := db.Model(new(T)).Where("id = ?", id).Updates(map[string]any(p)).Error; err != nil {
		return fmt.Errorf("update %T %d: %w", *new(T), id, err)
	}
	return nil
}

// rate folds a vote into the rating column of row id.
func rate[T any](db *gorm.DB, id uint, vote float64, notFound string) error {
	var ratings []float64
	if err := db.Model(new(T)).Where("id = ?", id).Pluck("rating", &ratings).Error; err != nil {
		return err
	}
	if len(ratings) == 0 {
		return utils.NotFound(notFound)
	}
	return db.Model(new(T)).Where("id = ?", id).Update("rating", utils.Rate(ratings[0], vote)).Error
}
