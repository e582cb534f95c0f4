package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/hospitalconnect/internal/models"
	"github.com/terraincognita07/hospitalconnect/internal/services"
)

type draftResponse struct {
	Form          models.RegistrationForm `json:"form"`
	Sections      []string                `json:"sections"`
	SchemaVersion int                     `json:"schema_version"`
}

func TestRegistrationDraftRoundTrip(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	client := app.client(t)

	draft := draftResponse{}
	client.json(http.MethodGet, "/api/registration/draft", nil, http.StatusOK, &draft)
	assert.Equal(t, models.RegistrationDraftSchemaVersion, draft.SchemaVersion)
	assert.Equal(t, models.RegistrationSections(), draft.Sections)
	assert.Empty(t, draft.Form.FirstName)

	client.json(http.MethodPut, "/api/registration/draft", payload{"first_name": "Asha", "last_name": "Rao"}, http.StatusAccepted, nil)
	client.json(http.MethodGet, "/api/registration/draft", nil, http.StatusOK, &draft)
	assert.Equal(t, "Asha", draft.Form.FirstName)

	other := draftResponse{}
	app.client(t).json(http.MethodGet, "/api/registration/draft", nil, http.StatusOK, &other)
	assert.Empty(t, other.Form.FirstName)

	response, _ := client.do(http.MethodDelete, "/api/registration/draft", nil)
	require.Equal(t, http.StatusNoContent, response.StatusCode)
	client.json(http.MethodGet, "/api/registration/draft", nil, http.StatusOK, &draft)
	assert.Empty(t, draft.Form.FirstName)
}

func TestRegistrationSectionValidation(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	client := app.client(t)

	result := services.SectionResult{}
	client.json(http.MethodPost, "/api/registration/sections/address/validate", payload{"zip_code": "1234"}, http.StatusUnprocessableEntity, &result)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "zip_code")

	client.json(http.MethodPost, "/api/registration/sections/address/validate", payload{
		"street_address": "1 Main St",
		"city":           "Springfield",
		"state":          "IL",
		"zip_code":       "62701-1234",
	}, http.StatusOK, &result)
	assert.True(t, result.Valid)
	assert.Contains(t, result.CompletedSections, "address")

	response, body := client.do(http.MethodPost, "/api/registration/sections/hobbies/validate", payload{})
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, services.ErrUnknownRegistrationSection.Error(), readAPIError(t, body))
}

func TestRegistrationSubmit(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	client := app.client(t)

	response, _ := client.do(http.MethodPost, "/api/registration/submit", payload{"first_name": "Asha"})
	assert.Equal(t, http.StatusUnprocessableEntity, response.StatusCode)

	client.json(http.MethodPut, "/api/registration/draft", payload{"first_name": "Asha"}, http.StatusAccepted, nil)

	result := services.RegistrationResult{}
	client.json(http.MethodPost, "/api/registration/submit", payload{
		"first_name":                     "Asha",
		"last_name":                      "Rao",
		"date_of_birth":                  "1990-04-02",
		"gender":                         "female",
		"ssn":                            "123-45-6789",
		"phone":                          "555-0101",
		"email":                          "asha@example.com",
		"street_address":                 "1 Main St",
		"city":                           "Springfield",
		"state":                          "IL",
		"zip_code":                       "62701",
		"insurance_provider":             "none",
		"emergency_contact_name":         "Ravi Rao",
		"emergency_contact_relationship": "spouse",
		"emergency_contact_phone":        "555-0102",
		"insurance_card":                 "card.png",
		"photo_id":                       "id.png",
		"agree_to_terms":                 true,
		"agree_to_privacy":               true,
		"agree_to_treatment":             true,
	}, http.StatusCreated, &result)
	assert.Regexp(t, `^HC-2024-\d{3}$`, result.PatientID)
	assert.Equal(t, "Asha Rao", result.Name)

	draft := draftResponse{}
	client.json(http.MethodGet, "/api/registration/draft", nil, http.StatusOK, &draft)
	assert.Empty(t, draft.Form.FirstName, "submission clears the draft")
}
