package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStepper() (*StepController, *SymptomModel, *AreaSelection) {
	symptoms := NewSymptomModel()
	areas := NewAreaSelection()
	return NewStepController(symptoms.Len, areas.Len), symptoms, areas
}

func TestStepControllerGatesFirstStepOnSymptoms(t *testing.T) {
	t.Parallel()

	stepper, symptoms, _ := newTestStepper()
	assert.False(t, stepper.CanProceed(StepSymptoms))
	assert.False(t, stepper.Advance())
	assert.Equal(t, StepSymptoms, stepper.Current())

	_, _, err := symptoms.Add("Cough")
	require.NoError(t, err)
	assert.True(t, stepper.CanProceed(StepSymptoms))
	assert.True(t, stepper.Advance())
	assert.Equal(t, StepBodyAreas, stepper.Current())
}

func TestStepControllerSecondStepAcceptsAreasOrSymptoms(t *testing.T) {
	t.Parallel()

	stepper, symptoms, areas := newTestStepper()
	assert.False(t, stepper.CanProceed(StepBodyAreas))

	_, err := areas.Toggle("chest")
	require.NoError(t, err)
	assert.True(t, stepper.CanProceed(StepBodyAreas))

	_, err = areas.Toggle("chest")
	require.NoError(t, err)
	_, _, err = symptoms.Add("Fever")
	require.NoError(t, err)
	assert.True(t, stepper.CanProceed(StepBodyAreas))
	assert.True(t, stepper.CanProceed(StepRecommendations))
}

func TestStepControllerStaysWithinBounds(t *testing.T) {
	t.Parallel()

	stepper, symptoms, _ := newTestStepper()
	_, _, err := symptoms.Add("Fever")
	require.NoError(t, err)

	assert.False(t, stepper.Retreat())
	assert.Equal(t, StepSymptoms, stepper.Current())

	stepper.Advance()
	stepper.Advance()
	assert.False(t, stepper.Advance())
	assert.Equal(t, StepRecommendations, stepper.Current())

	assert.True(t, stepper.Retreat())
	assert.Equal(t, StepBodyAreas, stepper.Current())
}

func TestStepControllerJumpToOnlyBackwards(t *testing.T) {
	t.Parallel()

	stepper, symptoms, _ := newTestStepper()
	assert.ErrorIs(t, stepper.JumpTo(StepBodyAreas), ErrStepAhead)
	assert.ErrorIs(t, stepper.JumpTo(0), ErrStepAhead)

	_, _, err := symptoms.Add("Fever")
	require.NoError(t, err)
	stepper.Advance()
	stepper.Advance()

	require.NoError(t, stepper.JumpTo(StepSymptoms))
	assert.Equal(t, StepSymptoms, stepper.Current())
	assert.ErrorIs(t, stepper.JumpTo(StepRecommendations), ErrStepAhead)
}

func TestStepControllerStepsReportProgress(t *testing.T) {
	t.Parallel()

	stepper, symptoms, _ := newTestStepper()
	_, _, err := symptoms.Add("Fever")
	require.NoError(t, err)
	stepper.Advance()

	steps := stepper.Steps()
	require.Len(t, steps, 3)
	assert.Equal(t, StepCompleted, steps[0].State)
	assert.Equal(t, StepCurrent, steps[1].State)
	assert.Equal(t, StepUpcoming, steps[2].State)

	stepper.Reset()
	assert.Equal(t, StepSymptoms, stepper.Current())
}

func TestAreaSelectionToggle(t *testing.T) {
	t.Parallel()

	areas := NewAreaSelection()
	selected, err := areas.Toggle("head")
	require.NoError(t, err)
	assert.True(t, selected)

	_, err = areas.Toggle("back")
	require.NoError(t, err)
	assert.Equal(t, []string{"head", "back"}, areas.Selected())

	selected, err = areas.Toggle("head")
	require.NoError(t, err)
	assert.False(t, selected)
	assert.Equal(t, []string{"back"}, areas.Selected())

	_, err = areas.Toggle("tail")
	assert.ErrorIs(t, err, ErrUnknownBodyArea)

	areas.Clear()
	assert.Equal(t, 0, areas.Len())
}
