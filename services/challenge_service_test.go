package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/testutil"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type challengeFixture struct {
	challenges *ChallengeService
	plans      *WorkoutPlanService
	notifier   *fakeNotifier
	admin      utils.Caller
	plan       *models.WorkoutPlan
	exerciseID uint
}

func newChallengeFixture(t *testing.T) (*challengeFixture, func() int64) {
	db := testutil.NewDB(t)
	f := &challengeFixture{
		plans:    NewWorkoutPlanService(db),
		notifier: &fakeNotifier{},
		admin:    testutil.Admin(t, db),
	}
	f.challenges = NewChallengeService(db, f.notifier)

	ex, err := NewExerciseService(db).Add(ExerciseRequest{Name: "Push Up", Category: models.CategoryStrength})
	require.NoError(t, err)
	f.exerciseID = ex.ID

	f.plan, err = f.plans.Add(WorkoutPlanRequest{
		Name:  "Four weeks",
		Level: models.LevelBeginner,
		Details: []WorkoutPlanDetailRequest{{
			Day: 1, Week: 1,
			Sets: []SetRequest{{
				Name: "Upper", Type: models.LevelBeginner,
				SetExercises: []SetExerciseRequest{{ExerciseID: ex.ID, Reps: 12, EstimatedCaloriesBurned: 20}},
			}},
		}},
	}, f.admin)
	require.NoError(t, err)

	countSets := func() int64 {
		var n int64
		require.NoError(t, db.Model(&models.Set{}).Count(&n).Error)
		return n
	}
	return f, countSets
}

func (f *challengeFixture) add(t *testing.T) *models.Challenge {
	ch, err := f.challenges.Add(ChallengeRequest{
		Name:          "Summer shred",
		Type:          models.ChallengeFitness,
		StartDate:     "2026-06-01",
		EndDate:       "2026-08-31",
		WorkoutSource: WorkoutSource{WorkoutPlanID: &f.plan.ID},
	}, f.admin)
	require.NoError(t, err)
	return ch
}

func TestChallengeJoin_ClonesSets(t *testing.T) {
	f, countSets := newChallengeFixture(t)
	ch := f.add(t)
	user := testutil.Member(t, f.challenges.db)

	tree := ch.PlanSnapshot.Data()
	require.NotNil(t, tree)
	originalID := tree.Details[0].Sets[0].ID
	before := countSets()

	uc, err := f.challenges.Join(context.Background(), ch.ID, user)
	require.NoError(t, err)
	assert.Equal(t, models.GoalStart, uc.Status)

	joined := uc.Snapshot.Data().Workout
	require.NotNil(t, joined)
	clone := joined.Details[0].Sets[0]
	assert.NotEqual(t, originalID, clone.ID)
	require.NotNil(t, clone.UserID)
	assert.Equal(t, user.ID, *clone.UserID)
	assert.Equal(t, before+1, countSets())

	stored, err := f.challenges.GetByID(ch.ID)
	require.NoError(t, err)
	assert.Equal(t, originalID, stored.PlanSnapshot.Data().Details[0].Sets[0].ID)
	assert.Nil(t, stored.PlanSnapshot.Data().Details[0].Sets[0].UserID)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, models.NotifyChallenge, f.notifier.sent[0].Type)
}

func TestChallengeJoin_Twice(t *testing.T) {
	f, _ := newChallengeFixture(t)
	ch := f.add(t)
	user := testutil.Member(t, f.challenges.db)

	_, err := f.challenges.Join(context.Background(), ch.ID, user)
	require.NoError(t, err)
	_, err = f.challenges.Join(context.Background(), ch.ID, user)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
	assert.Equal(t, msgChallengeAlreadyJoined, err.Error())

	joined, err := f.challenges.Joined(user)
	require.NoError(t, err)
	assert.Len(t, joined, 1)
}

func TestChallengeDelete_BlockedWhileJoined(t *testing.T) {
	f, _ := newChallengeFixture(t)
	ch := f.add(t)
	_, err := f.challenges.Join(context.Background(), ch.ID, testutil.Member(t, f.challenges.db))
	require.NoError(t, err)

	err = f.challenges.Delete(ch.ID)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
	_, err = f.challenges.GetByID(ch.ID)
	assert.NoError(t, err)
}

func TestWorkoutPlanDelete_BlockedByChallenge(t *testing.T) {
	f, _ := newChallengeFixture(t)
	f.add(t)

	err := f.plans.Delete(f.plan.ID, f.admin)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}

func TestChallengeInlineWorkout(t *testing.T) {
	f, countSets := newChallengeFixture(t)
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
	assert.Nil(t, ch.WorkoutPlanID)
	assert.Equal(t, before+1, countSets())

	node := ch.PlanSnapshot.Data().Details[0].Sets[0]
	assert.NotZero(t, node.ID)
	require.Len(t, node.Exercises, 1)
	assert.Equal(t, "Push Up", node.Exercises[0].Name)

	require.NoError(t, f.challenges.Delete(ch.ID))
	assert.Equal(t, before, countSets())
}

func TestChallengeActivation(t *testing.T) {
	f, _ := newChallengeFixture(t)
	ch := f.add(t)

	off, err := f.challenges.Deactivate(ch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeInactive, off.Status)

	on, err := f.challenges.Activate(ch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeActive, on.Status)

	_, err = f.challenges.Activate(9999)
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}
