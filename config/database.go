package config

import (
	"fmt"
	"log"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectAttempts = 10

// InitDB connects to Postgres, retrying with capped exponential backoff, then migrates.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= connectAttempts; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err == nil {
			sqlDB, _ := db.DB()
			if err = sqlDB.Ping(); err == nil {
				log.Printf("database connected (attempt %d)", i)
				break
			}
		}
		log.Printf("database attempt %d failed: %v", i, err)

		wait := time.Duration(1<<uint(i-1)) * time.Second
		if wait > 10*time.Second {
			wait = 10 * time.Second
		}
		time.Sleep(wait)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database after %d attempts: %w", connectAttempts, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Models is the AutoMigrate list, parents before children.
func Models() []any {
	return []any{
		&models.User{},
		&models.RefreshToken{},
		&models.UserDevice{},
		&models.Notification{},
		&models.Exercise{},
		&models.Ingredient{},
		&models.Set{},
		&models.SetExercise{},
		&models.WorkoutPlan{},
		&models.WorkoutPlanDetail{},
		&models.Dish{},
		&models.DishIngredient{},
		&models.Meal{},
		&models.MealDish{},
		&models.Challenge{},
		&models.UserChallenge{},
		&models.HealthTracking{},
		&models.HealthTrackingDetail{},
		&models.Water{},
		&models.Report{},
		&models.Contact{},
	}
}

func Migrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
	}
	return nil
}
