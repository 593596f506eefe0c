package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/diet-tracker-api/internal/errors"
)

func TestCreateMeasurement_Defaults(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "fit@example.com")

	fixed := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	env.measurements.today = func() time.Time { return fixed }

	m, err := env.measurements.Create(actor, MeasurementInput{Weight: ptr(80)})
	require.NoError(t, err)

	assert.Equal(t, fixed, m.Date)
	assert.Equal(t, 80, m.Weight)
	assert.Equal(t, 0, m.Height)
	assert.Equal(t, actor.UserID, m.UserID)
}

func TestCreateMeasurement_Validation(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "fit@example.com")

	_, err := env.measurements.Create(actor, MeasurementInput{Weight: ptr(-5), Thigh: ptr(32768)})
	verr, ok := apierrors.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "weight")
	assert.Contains(t, verr.Fields, "thigh")
}

func TestUpdateMeasurement_Partial(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "fit@example.com")

	m, err := env.measurements.Create(actor, MeasurementInput{Weight: ptr(80), Height: ptr(180)})
	require.NoError(t, err)

	updated, err := env.measurements.Update(actor, m.ID, MeasurementInput{Weight: ptr(78)})
	require.NoError(t, err)
	assert.Equal(t, 78, updated.Weight)
	assert.Equal(t, 180, updated.Height)

	updated, err = env.measurements.SetImage(actor, m.ID, "/media/uploads/measurement_picture/x.png")
	require.NoError(t, err)
	assert.Equal(t, "/media/uploads/measurement_picture/x.png", updated.Image)
}

func TestGoals(t *testing.T) {
	env := setupTestEnv(t)
	actor := env.createUser(t, "goal@example.com")
	other := env.createUser(t, "other@example.com")

	goal, err := env.measurements.CreateGoal(actor, GoalInput{CurrentWeight: ptr(90), GoalWeight: ptr(75)})
	require.NoError(t, err)
	assert.Equal(t, actor.UserID, goal.UserID)

	updated, err := env.measurements.UpdateGoal(actor, goal.ID, GoalInput{GoalWeight: ptr(72)})
	require.NoError(t, err)
	assert.Equal(t, 90, updated.CurrentWeight)
	assert.Equal(t, 72, updated.GoalWeight)

	_, err = env.measurements.GetGoal(other, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	rows, _, err := env.measurements.ListGoals(other, ListInput{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, env.measurements.DeleteGoal(actor, goal.ID))
	_, err = env.measurements.GetGoal(actor, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}
