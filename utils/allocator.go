package utils

import (
	"math"
	"strings"

	"github.com/tuonghuynh11/HealthAppAPI/models"
)

const (
	maxRepsPerRound = 15
	restPerRound    = 30 // seconds
)

type exerciseCost struct {
	CaloriesPerRep float64
	SecondsPerRep  float64
}

// Keyed by lower-cased exercise name.
var exerciseCosts = map[string]exerciseCost{
	"push up":          {0.5, 2},
	"squat":            {0.32, 2.5},
	"burpee":           {1.0, 4},
	"jumping jack":     {0.2, 1},
	"lunge":            {0.35, 2.5},
	"sit up":           {0.25, 2},
	"mountain climber": {0.3, 1},
	"crunch":           {0.2, 1.5},
	"pull up":          {1.0, 3},
	"jump rope":        {0.1, 0.5},
	"plank jack":       {0.3, 1.5},
	"high knees":       {0.15, 0.8},
}

type PlannedExercise struct {
	ExerciseID              uint    `json:"exercise_id"`
	Name                    string  `json:"name"`
	Reps                    int     `json:"reps"`
	Round                   int     `json:"round"`
	Duration                int     `json:"duration"` // seconds
	RestPerRound            int     `json:"rest_per_round"`
	EstimatedCaloriesBurned float64 `json:"estimated_calories_burned"`
}

type PlannedSet struct {
	SetExercises  []PlannedExercise `json:"set_exercises"`
	TotalCalories float64           `json:"total_calories"`
}

// GetSetExercises splits budget kcal evenly over numberOfSets*exercisesPerSet slots,
// cycling through exercises so each is reused before any repeats.
func GetSetExercises(budget float64, numberOfSets, exercisesPerSet int, exercises []models.Exercise) []PlannedSet {
	if numberOfSets <= 0 || exercisesPerSet <= 0 || len(exercises) == 0 {
		return nil
	}
	share := budget / float64(numberOfSets*exercisesPerSet)

	queue := append([]models.Exercise(nil), exercises...)
	sets := make([]PlannedSet, 0, numberOfSets)
	for i := 0; i < numberOfSets; i++ {
		set := PlannedSet{SetExercises: make([]PlannedExercise, 0, exercisesPerSet)}
		for j := 0; j < exercisesPerSet; j++ {
			ex := queue[0]
			queue = append(queue[1:], ex)

			p := planExercise(ex, share)
			set.SetExercises = append(set.SetExercises, p)
			set.TotalCalories += p.EstimatedCaloriesBurned
		}
		set.TotalCalories = Round(set.TotalCalories, 2)
		sets = append(sets, set)
	}
	return sets
}

func planExercise(ex models.Exercise, share float64) PlannedExercise {
	p := PlannedExercise{ExerciseID: ex.ID, Name: ex.Name}
	if share <= 0 {
		return p
	}

	if cost, ok := exerciseCosts[strings.ToLower(strings.TrimSpace(ex.Name))]; ok {
		reps := int(math.Ceil(share / cost.CaloriesPerRep))
		rounds := int(math.Ceil(float64(reps) / maxRepsPerRound))
		perRound := int(math.Ceil(float64(reps) / float64(rounds)))
		total := float64(perRound * rounds)

		p.Reps = perRound
		p.Round = rounds
		p.Duration = int(math.Ceil(total * cost.SecondsPerRep))
		p.RestPerRound = restPerRound
		p.EstimatedCaloriesBurned = Round(total*cost.CaloriesPerRep, 2)
		return p
	}

	// Not in the rep table: time the exercise from its catalog burn rate.
	if ex.CaloriesBurnPerMinutes > 0 {
		p.Round = 1
		p.Duration = int(math.Ceil(share / ex.CaloriesBurnPerMinutes * 60))
		p.EstimatedCaloriesBurned = Round(share, 2)
	}
	return p
}
