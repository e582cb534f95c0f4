package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/hospitalconnect/internal/models"
)

func TestSymptomModelAddDeduplicatesCaseInsensitively(t *testing.T) {
	t.Parallel()

	model := NewSymptomModel()
	first, added, err := model.Add("Headache")
	require.NoError(t, err)
	require.True(t, added)

	again, added, err := model.Add("  HEADACHE ")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 1, model.Len())
}

func TestSymptomModelAddUsesCatalogAndDefaults(t *testing.T) {
	t.Parallel()

	model := NewSymptomModel()
	symptom, _, err := model.Add("chest pain")
	require.NoError(t, err)

	assert.Equal(t, "chest-pain", symptom.ID)
	assert.Equal(t, "Chest Pain", symptom.Name)
	assert.Equal(t, models.CategoryCardiovascular, symptom.Category)
	assert.Equal(t, models.DefaultSymptomSeverity, symptom.Severity)
	assert.Equal(t, "1-3 days", symptom.Duration)
}

func TestSymptomModelAddFallsBackToGeneral(t *testing.T) {
	t.Parallel()

	model := NewSymptomModel()
	symptom, _, err := model.Add("Itchy  elbow")
	require.NoError(t, err)

	assert.Equal(t, "itchy-elbow", symptom.ID)
	assert.Equal(t, models.CategoryGeneral, symptom.Category)
	assert.Equal(t, "User-reported symptom", symptom.Description)
}

func TestSymptomModelAddRejectsBlankName(t *testing.T) {
	t.Parallel()

	_, _, err := NewSymptomModel().Add("   ")
	assert.ErrorIs(t, err, ErrInvalidSymptomName)
}

func TestSymptomModelAddKeepsIDsUnique(t *testing.T) {
	t.Parallel()

	model := NewSymptomModel()
	first, _, err := model.Add("back pain")
	require.NoError(t, err)
	second, added, err := model.Add("back-pain")
	require.NoError(t, err)
	require.True(t, added)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "back-pain-2", second.ID)
}

func TestSymptomModelUpdateClampsSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  int
	}{
		{name: "below range", value: -4, want: 1},
		{name: "above range", value: 42, want: 10},
		{name: "json number", value: float64(7), want: 7},
		{name: "zero", value: 0, want: 1},
		{name: "huge json number", value: float64(1e20), want: 10},
		{name: "huge negative json number", value: float64(-1e20), want: 1},
		{name: "fractional above range", value: 10.7, want: 10},
		{name: "huge int64", value: int64(math.MaxInt64), want: 10},
		{name: "negative int64", value: int64(math.MinInt64), want: 1},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			model := NewSymptomModel()
			symptom, _, err := model.Add("Fever")
			require.NoError(t, err)

			updated, err := model.Update(symptom.ID, "severity", test.value)
			require.NoError(t, err)
			assert.Equal(t, test.want, updated.Severity)
		})
	}
}

func TestSymptomModelUpdateRejectsNonFiniteSeverity(t *testing.T) {
	t.Parallel()

	model := NewSymptomModel()
	symptom, _, err := model.Add("Fever")
	require.NoError(t, err)

	for _, value := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := model.Update(symptom.ID, "severity", value)
		assert.ErrorIs(t, err, ErrInvalidSymptomField)
	}
	assert.Equal(t, symptom.Severity, model.Symptoms()[0].Severity)
}

func TestSymptomModelUpdateDuration(t *testing.T) {
	t.Parallel()

	model := NewSymptomModel()
	symptom, _, err := model.Add("Fever")
	require.NoError(t, err)

	updated, err := model.Update(symptom.ID, "duration", "1-2 weeks")
	require.NoError(t, err)
	assert.Equal(t, "1-2 weeks", updated.Duration)

	_, err = model.Update(symptom.ID, "duration", "forever")
	assert.ErrorIs(t, err, ErrInvalidSymptomDuration)

	_, err = model.Update(symptom.ID, "color", "red")
	assert.ErrorIs(t, err, ErrInvalidSymptomField)

	_, err = model.Update("missing", "severity", 3)
	assert.ErrorIs(t, err, ErrSymptomNotFound)
}

func TestSymptomModelRemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	model := NewSymptomModel()
	symptom, _, err := model.Add("Nausea")
	require.NoError(t, err)

	model.Remove(symptom.ID)
	model.Remove(symptom.ID)
	model.Remove("never-added")
	assert.Equal(t, 0, model.Len())
}

func TestSymptomModelSymptomsReturnsCopy(t *testing.T) {
	t.Parallel()

	model := NewSymptomModel()
	_, _, err := model.Add("Cough")
	require.NoError(t, err)

	listed := model.Symptoms()
	listed[0].Severity = 10
	assert.Equal(t, models.DefaultSymptomSeverity, model.Symptoms()[0].Severity)
}

func TestSearchSymptoms(t *testing.T) {
	t.Parallel()

	assert.Empty(t, SearchSymptoms(""))
	assert.Empty(t, SearchSymptoms("h"))

	results := SearchSymptoms("PAIN")
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 6)
	for _, result := range results {
		assert.Contains(t, result.Name+" "+result.Description, "ain")
	}

	assert.Len(t, SearchSymptoms("e"), 0)
	assert.LessOrEqual(t, len(SearchSymptoms("in")), 6)
}
