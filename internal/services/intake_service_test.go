package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/hospitalconnect/internal/clock"
)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestIntakeService() (*IntakeService, *clock.Fake) {
	clk := clock.NewFake(testNow)
	return NewIntakeService(clk), clk
}

func TestIntakeServiceWalksThroughSteps(t *testing.T) {
	t.Parallel()

	service, _ := newTestIntakeService()
	session := service.Create("client-a")
	assert.Equal(t, StepSymptoms, session.Step)
	assert.False(t, session.CanProceed)

	session, err := service.Advance("client-a", session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepSymptoms, session.Step)

	session, err = service.AddSymptom("client-a", session.ID, "Fever")
	require.NoError(t, err)
	assert.True(t, session.CanProceed)

	session, err = service.Advance("client-a", session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepBodyAreas, session.Step)

	session, err = service.ToggleArea("client-a", session.ID, "chest")
	require.NoError(t, err)
	assert.Equal(t, []string{"chest"}, session.Areas)

	session, err = service.Advance("client-a", session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepRecommendations, session.Step)

	doctors, err := service.Recommendations("client-a", session.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"dr-smith", "dr-davis"}, doctorIDs(doctors))

	session, err = service.JumpTo("client-a", session.ID, StepSymptoms)
	require.NoError(t, err)
	assert.Equal(t, StepSymptoms, session.Step)
	assert.Len(t, session.Symptoms, 1)
}

func TestIntakeServiceHidesOtherClientsSessions(t *testing.T) {
	t.Parallel()

	service, _ := newTestIntakeService()
	session := service.Create("client-a")

	_, err := service.Get("client-b", session.ID)
	assert.ErrorIs(t, err, ErrIntakeNotFound)
	_, err = service.AddSymptom("client-b", session.ID, "Fever")
	assert.ErrorIs(t, err, ErrIntakeNotFound)
	assert.ErrorIs(t, service.Delete("client-b", session.ID), ErrIntakeNotFound)

	require.NoError(t, service.Delete("client-a", session.ID))
	assert.Equal(t, 0, service.Len())
}

func TestIntakeServiceEmergencyTracksSymptomChanges(t *testing.T) {
	t.Parallel()

	service, _ := newTestIntakeService()
	session := service.Create("client-a")

	session, err := service.AddSymptom("client-a", session.ID, "Sore Throat")
	require.NoError(t, err)
	assert.Equal(t, EmergencyNone, session.Emergency.Level)

	symptomID := session.Symptoms[0].ID
	session, err = service.UpdateSymptom("client-a", session.ID, symptomID, "severity", 9)
	require.NoError(t, err)
	assert.Equal(t, EmergencyUrgent, session.Emergency.Level)
	assert.True(t, session.Emergency.Visible)

	session, err = service.DismissEmergency("client-a", session.ID)
	require.NoError(t, err)
	assert.False(t, session.Emergency.Visible)

	session, err = service.AddSymptom("client-a", session.ID, "chest pain")
	require.NoError(t, err)
	assert.Equal(t, EmergencyCritical, session.Emergency.Level)
	assert.True(t, session.Emergency.Visible)

	session, err = service.RemoveSymptom("client-a", session.ID, "chest-pain")
	require.NoError(t, err)
	assert.Equal(t, EmergencyUrgent, session.Emergency.Level)
}

func TestIntakeServiceSelectDoctorRequiresRecommendation(t *testing.T) {
	t.Parallel()

	service, _ := newTestIntakeService()
	session := service.Create("client-a")

	_, err := service.SelectDoctor("client-a", session.ID, "dr-smith")
	assert.ErrorIs(t, err, ErrIntakeNoMatches)

	_, err = service.AddSymptom("client-a", session.ID, "Headache")
	require.NoError(t, err)

	_, err = service.SelectDoctor("client-a", session.ID, "dr-wilson")
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	doctor, err := service.SelectDoctor("client-a", session.ID, "dr-johnson")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Michael Johnson", doctor.Name)

	snapshot, err := service.Get("client-a", session.ID)
	require.NoError(t, err)
	assert.Equal(t, "dr-johnson", snapshot.SelectedDoctorID)
}

func TestIntakeServiceResetClearsEverything(t *testing.T) {
	t.Parallel()

	service, _ := newTestIntakeService()
	session := service.Create("client-a")
	_, err := service.AddSymptom("client-a", session.ID, "chest pain")
	require.NoError(t, err)
	_, err = service.ToggleArea("client-a", session.ID, "chest")
	require.NoError(t, err)
	_, err = service.Advance("client-a", session.ID)
	require.NoError(t, err)

	session, err = service.Reset("client-a", session.ID)
	require.NoError(t, err)
	assert.Equal(t, StepSymptoms, session.Step)
	assert.Empty(t, session.Symptoms)
	assert.Empty(t, session.Areas)
	assert.Equal(t, EmergencyNone, session.Emergency.Level)
	assert.Empty(t, session.SelectedDoctorID)
}

func TestIntakeServicePurgeIdle(t *testing.T) {
	t.Parallel()

	service, clk := newTestIntakeService()
	stale := service.Create("client-a")
	clk.Advance(20 * time.Minute)
	fresh := service.Create("client-b")
	clk.Advance(15 * time.Minute)

	assert.Equal(t, 1, service.PurgeIdle(30*time.Minute))
	_, err := service.Get("client-a", stale.ID)
	assert.ErrorIs(t, err, ErrIntakeNotFound)
	_, err = service.Get("client-b", fresh.ID)
	assert.NoError(t, err)
}

func TestIntakeServiceRejectsUnknownArea(t *testing.T) {
	t.Parallel()

	service, _ := newTestIntakeService()
	session := service.Create("client-a")
	_, err := service.ToggleArea("client-a", session.ID, "wing")
	assert.ErrorIs(t, err, ErrUnknownBodyArea)
}
