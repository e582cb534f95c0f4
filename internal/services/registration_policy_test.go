package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/hospitalconnect/internal/models"
)

func TestValidateRegistrationSection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		section string
		mutate  func(*models.RegistrationForm)
		want    map[string]string
	}{
		{
			name:    "complete personal section",
			section: models.SectionPersonal,
			mutate:  func(*models.RegistrationForm) {},
			want:    map[string]string{},
		},
		{
			name:    "missing email",
			section: models.SectionPersonal,
			mutate:  func(form *models.RegistrationForm) { form.Email = " " },
			want:    map[string]string{"email": "Email address is required"},
		},
		{
			name:    "malformed zip",
			section: models.SectionAddress,
			mutate:  func(form *models.RegistrationForm) { form.ZipCode = "6270" },
			want:    map[string]string{"zip_code": "Please enter a valid ZIP code"},
		},
		{
			name:    "zip plus four",
			section: models.SectionAddress,
			mutate:  func(form *models.RegistrationForm) { form.ZipCode = "62701-1234" },
			want:    map[string]string{},
		},
		{
			name:    "insured requires policy details",
			section: models.SectionInsurance,
			mutate:  func(form *models.RegistrationForm) { form.InsuranceProvider = "aetna" },
			want: map[string]string{
				"policy_number":           "Policy number is required",
				"primary_insured_name":    "Primary insured name is required",
				"relationship_to_insured": "Relationship to insured is required",
			},
		},
		{
			name:    "documents missing photo id",
			section: models.SectionDocuments,
			mutate:  func(form *models.RegistrationForm) { form.PhotoID = "" },
			want:    map[string]string{"photo_id": "Photo ID is required"},
		},
		{
			name:    "medical history is optional",
			section: models.SectionMedical,
			mutate:  func(form *models.RegistrationForm) { *form = models.NewRegistrationForm() },
			want:    map[string]string{},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			form := completeRegistrationForm()
			test.mutate(&form)
			errs, err := ValidateRegistrationSection(form, test.section)
			require.NoError(t, err)
			assert.Equal(t, test.want, map[string]string(errs))
		})
	}
}

func TestValidateRegistrationSubmissionRequiresConsents(t *testing.T) {
	t.Parallel()

	form := completeRegistrationForm()
	assert.Empty(t, ValidateRegistrationSubmission(form))

	form.AgreeToTerms = false
	form.AgreeToPrivacy = false
	errs := ValidateRegistrationSubmission(form)
	assert.Contains(t, errs, "agree_to_terms")
	assert.Contains(t, errs, "agree_to_privacy")
	assert.NotContains(t, errs, "agree_to_treatment")
}

func TestNormalizeRegistrationFormDropsUnknownSections(t *testing.T) {
	t.Parallel()

	form := models.RegistrationForm{
		CompletedSections: []string{"personal", "billing", "personal", "address"},
	}
	normalized := NormalizeRegistrationForm(form)

	assert.Equal(t, []string{"personal", "address"}, normalized.CompletedSections)
	assert.Equal(t, "english", normalized.PreferredLanguage)
	assert.Equal(t, []string{"email"}, normalized.CommunicationPreferences)
	assert.NotNil(t, normalized.Allergies)
}
