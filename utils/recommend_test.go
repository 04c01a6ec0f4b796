package utils

import (
	"testing"

	"github.com/tuonghuynh11/HealthAppAPI/models"

	"github.com/stretchr/testify/assert"
)

func TestRecommendCalories(t *testing.T) {
	rec := RecommendCalories(CalorieInput{
		CurrentWeight: 80,
		DesiredWeight: 70,
		Height:        175,
		Age:           30,
		Gender:        models.GenderMale,
		ActivityLevel: models.ActivityLight,
	})

	assert.Equal(t, "1748.75", rec.BMR)
	assert.Equal(t, "2404.53", rec.TDEE)
	assert.Equal(t, 905.0, rec.MinCalories)
	assert.Equal(t, 3905.0, rec.MaxCalories)
	assert.Equal(t, 32.0, rec.DaysToGoal)
	assert.InDelta(t, 77000, rec.TotalCalories, 1)
	assert.Equal(t, "cal/day", rec.Unit)
}

func TestBMR_Female(t *testing.T) {
	assert.InDelta(t, 10*60+6.25*165-5*25-161, BMR(60, 165, 25, models.GenderFemale), 1e-9)
}

func TestTDEE_UnknownLevelUsesSedentary(t *testing.T) {
	assert.InDelta(t, 1200, TDEE(1000, "couch"), 1e-9)
	assert.InDelta(t, 1900, TDEE(1000, models.ActivityVeryActive), 1e-9)
}

func TestDaysToGoal_ZeroChange(t *testing.T) {
	assert.Zero(t, DaysToGoal(80, 70, 0))
}

func TestCalculateAge(t *testing.T) {
	dob := date(1990, 6, 15)
	assert.Equal(t, 35, CalculateAge(dob, date(2026, 6, 14)))
	assert.Equal(t, 36, CalculateAge(dob, date(2026, 6, 15)))
	assert.Equal(t, 0, CalculateAge(date(2030, 1, 1), date(2026, 1, 1)))
}

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(175, 70)
	assert.NoError(t, err)
	assert.Equal(t, 22.86, bmi)
	assert.Equal(t, "Normal weight", BMICategory(bmi))

	_, err = CalculateBMI(0, 70)
	assert.Error(t, err)
}
