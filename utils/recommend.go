package utils

import (
	"math"
	"strconv"

	"github.com/tuonghuynh11/HealthAppAPI/models"
)

const (
	kcalPerKg                  = 7700
	DefaultCalorieChangePerDay = 1500
)

var activityMultipliers = map[string]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

func ValidActivityLevel(level string) bool {
	_, ok := activityMultipliers[level]
	return ok
}

type CalorieInput struct {
	CurrentWeight       float64
	DesiredWeight       float64
	Height              float64 // cm
	Age                 int
	Gender              string
	ActivityLevel       string
	CalorieChangePerDay float64
}

type CalorieRecommendation struct {
	BMR           string  `json:"bmr"`
	TDEE          string  `json:"tdee"`
	MinCalories   float64 `json:"minCalories"`
	MaxCalories   float64 `json:"maxCalories"`
	TotalCalories float64 `json:"totalCalories"`
	DaysToGoal    float64 `json:"daysToGoal"`
	Unit          string  `json:"unit"`
}

// BMR uses Mifflin-St Jeor.
func BMR(weight, height float64, age int, gender string) float64 {
	base := 10*weight + 6.25*height - 5*float64(age)
	if gender == models.GenderFemale {
		return base - 161
	}
	return base + 5
}

func TDEE(bmr float64, activityLevel string) float64 {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = 1.2
	}
	return bmr * mult
}

// DaysToGoal is how long a weight change takes at dailyChange kcal/day.
func DaysToGoal(current, desired, dailyChange float64) float64 {
	if dailyChange == 0 {
		return 0
	}
	return math.Abs((desired - current) * kcalPerKg / dailyChange)
}

func RecommendCalories(in CalorieInput) CalorieRecommendation {
	change := in.CalorieChangePerDay
	if change <= 0 {
		change = DefaultCalorieChangePerDay
	}
	bmr := BMR(in.CurrentWeight, in.Height, in.Age, in.Gender)
	tdee := TDEE(bmr, in.ActivityLevel)
	minCal, maxCal := tdee-change, tdee+change
	avg := math.Round((minCal + maxCal) / 2)
	days := DaysToGoal(in.CurrentWeight, in.DesiredWeight, avg)

	return CalorieRecommendation{
		BMR:           strconv.FormatFloat(bmr, 'f', 2, 64),
		TDEE:          strconv.FormatFloat(tdee, 'f', 2, 64),
		MinCalories:   math.Round(minCal),
		MaxCalories:   math.Round(maxCal),
		TotalCalories: avg * days,
		DaysToGoal:    math.Round(days),
		Unit:          "cal/day",
	}
}
