package services

import (
	"net/http"
	"testing"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/testutil"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetExercises_KeepTotalsInStep(t *testing.T) {
	db := testutil.NewDB(t)
	sets := NewSetService(db)
	admin := testutil.Admin(t, db)
	ex, err := NewExerciseService(db).Add(ExerciseRequest{Name: "Lunge", Category: models.CategoryStrength})
	require.NoError(t, err)

	set, err := sets.Add(SetRequest{
		Name: "Legs", Type: models.LevelBeginner,
		SetExercises: []SetExerciseRequest{{ExerciseID: ex.ID, Reps: 10, EstimatedCaloriesBurned: 20}},
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, set.NumberOfExercises)
	assert.Equal(t, 20.0, set.TotalCalories)
	firstRow := set.SetExercises[0].ID

	added, err := sets.AddSetExercise(set.ID, SetExerciseRequest{ExerciseID: ex.ID, Reps: 8, EstimatedCaloriesBurned: 30}, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, added.Orders)

	steps := []struct {
		name  string
		do    func() error
		count int
		total float64
	}{
		{"after add", func() error { return nil }, 2, 50},
		{"after update", func() error {
			kcal := 25.0
			_, err := sets.UpdateSetExercise(set.ID, firstRow, UpdateSetExerciseRequest{EstimatedCaloriesBurned: &kcal}, admin)
			return err
		}, 2, 55},
		{"after delete", func() error { return sets.DeleteSetExercise(set.ID, added.ID, admin) }, 1, 25},
	}
	for _, st := range steps {
		require.NoError(t, st.do(), st.name)
		got, err := sets.GetByID(set.ID, admin)
		require.NoError(t, err)
		assert.Equal(t, st.count, got.NumberOfExercises, st.name)
		assert.Equal(t, st.total, got.TotalCalories, st.name)
	}

	_, err = sets.AddSetExercise(set.ID, SetExerciseRequest{ExerciseID: 9999}, admin)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
	_, err = sets.GetSetExercise(set.ID, added.ID, admin)
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestSetDelete_BlockedByWorkoutPlan(t *testing.T) {
	f, countSets := newChallengeFixture(t)
	sets := NewSetService(f.challenges.db)
	setID := f.plan.Details[0].Sets[0].ID

	err := sets.Delete(setID, f.admin)
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
	assert.Equal(t, msgSetInUse, err.Error())
	assert.EqualValues(t, 1, countSets())

	user := testutil.Member(t, f.challenges.db)
	err = sets.Delete(setID, user)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
}

func TestSetDelete_BlockedByChallengeWorkout(t *testing.T) {
	f, countSets := newChallengeFixture(t)
	sets := NewSetService(f.challenges.db)
	before := countSets()

	ch, err := f.challenges.Add(ChallengeRequest{
		Name: "Core week", Type: models.ChallengeFitness,
		StartDate: "2026-06-01", EndDate: "2026-06-07",
		WorkoutSource: WorkoutSource{WorkoutPlan: &WorkoutPlanRequest{
			Name: "Core", Level: models.LevelBeginner,
			Details: []WorkoutPlanDetailRequest{{Day: 1, Week: 1, Sets: []SetRequest{{
				Name: "Abs", Type: models.LevelBeginner,
				SetExercises: []SetExerciseRequest{{ExerciseID: f.exerciseID, Reps: 20}},
			}}}},
		}},
	}, f.admin)
	require.NoError(t, err)
	inline := ch.PlanSnapshot.Data().Details[0].Sets[0].ID

	page, err := sets.Search(SearchQuery{}, f.admin)
	require.NoError(t, err)
	assert.EqualValues(t, before, page.TotalItems, "challenge sets stay out of the catalog")
	for _, s := range page.Items {
		assert.NotEqual(t, inline, s.ID)
	}

	err = sets.Delete(inline, f.admin)
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
	assert.Equal(t, msgSetInChallenge, err.Error())
	assert.Equal(t, before+1, countSets())

	// a replacement inline workout is tagged too
	updated, err := f.challenges.UpdateWorkout(ch.ID, WorkoutSource{WorkoutPlan: &WorkoutPlanRequest{
		Name: "Core v2", Level: models.LevelBeginner,
		Details: []WorkoutPlanDetailRequest{{Day: 2, Week: 1, Sets: []SetRequest{{Name: "Plank", Type: models.LevelBeginner}}}},
	}})
	require.NoError(t, err)
	replaced := updated.PlanSnapshot.Data().Details[0].Sets[0].ID
	err = sets.Delete(replaced, f.admin)
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
	assert.Equal(t, before+1, countSets())

	require.NoError(t, f.challenges.Delete(ch.ID))
	assert.Equal(t, before, countSets())
}
