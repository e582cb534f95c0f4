package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/terraincognita07/hospitalconnect/internal/models"
)

var ErrUnknownRegistrationSection = errors.New("unknown registration section")

var (
	registrationEmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	registrationZipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

const insuranceProviderNone = "none"

// requiredRegistrationSections are checked again on submit. Medical history
// and preferences are optional.
var requiredRegistrationSections = []string{
	models.SectionPersonal,
	models.SectionAddress,
	models.SectionInsurance,
	models.SectionEmergency,
	models.SectionDocuments,
}

func IsKnownRegistrationSection(section string) bool {
	for _, known := range models.RegistrationSections() {
		if known == section {
			return true
		}
	}
	return false
}

func ValidateRegistrationSection(form models.RegistrationForm, section string) (ValidationErrors, error) {
	errs := ValidationErrors{}
	switch section {
	case models.SectionPersonal:
		errs.requireText("first_name", form.FirstName, "First name is required")
		errs.requireText("last_name", form.LastName, "Last name is required")
		errs.requireText("date_of_birth", form.DateOfBirth, "Date of birth is required")
		errs.requireText("gender", form.Gender, "Gender is required")
		errs.requireText("ssn", form.SSN, "Social Security Number is required")
		errs.requireText("phone", form.Phone, "Phone number is required")
		switch {
		case strings.TrimSpace(form.Email) == "":
			errs["email"] = "Email address is required"
		case !registrationEmailPattern.MatchString(form.Email):
			errs["email"] = "Please enter a valid email address"
		}
	case models.SectionAddress:
		errs.requireText("street_address", form.StreetAddress, "Street address is required")
		errs.requireText("city", form.City, "City is required")
		errs.requireText("state", form.State, "State is required")
		switch zip := strings.TrimSpace(form.ZipCode); {
		case zip == "":
			errs["zip_code"] = "ZIP code is required"
		case !registrationZipPattern.MatchString(zip):
			errs["zip_code"] = "Please enter a valid ZIP code"
		}
	case models.SectionInsurance:
		provider := strings.TrimSpace(form.InsuranceProvider)
		if provider == "" {
			errs["insurance_provider"] = "Insurance provider is required"
		}
		if provider != "" && provider != insuranceProviderNone {
			errs.requireText("policy_number", form.PolicyNumber, "Policy number is required")
			errs.requireText("primary_insured_name", form.PrimaryInsuredName, "Primary insured name is required")
			errs.requireText("relationship_to_insured", form.RelationshipToInsured, "Relationship to insured is required")
		}
	case models.SectionEmergency:
		errs.requireText("emergency_contact_name", form.EmergencyContactName, "Emergency contact name is required")
		errs.requireText("emergency_contact_relationship", form.EmergencyContactRelationship, "Relationship is required")
		errs.requireText("emergency_contact_phone", form.EmergencyContactPhone, "Emergency contact phone is required")
	case models.SectionDocuments:
		errs.requireText("insurance_card", form.InsuranceCard, "Insurance card is required")
		errs.requireText("photo_id", form.PhotoID, "Photo ID is required")
	case models.SectionMedical, models.SectionPrefs:
	default:
		return nil, ErrUnknownRegistrationSection
	}
	return errs, nil
}

// ValidateRegistrationSubmission merges the errors of every required section
// with the three consents.
func ValidateRegistrationSubmission(form models.RegistrationForm) ValidationErrors {
	all := ValidationErrors{}
	for _, section := range requiredRegistrationSections {
		errs, _ := ValidateRegistrationSection(form, section)
		for field, message := range errs {
			all[field] = message
		}
	}
	if !form.AgreeToTerms {
		all["agree_to_terms"] = "You must agree to the terms and conditions"
	}
	if !form.AgreeToPrivacy {
		all["agree_to_privacy"] = "You must agree to the privacy policy"
	}
	if !form.AgreeToTreatment {
		all["agree_to_treatment"] = "You must consent to treatment"
	}
	return all
}

// MarkSectionCompleted appends section once, keeping completion order.
func MarkSectionCompleted(completed []string, section string) []string {
	for _, existing := range completed {
		if existing == section {
			return completed
		}
	}
	return append(completed, section)
}

func NormalizeRegistrationForm(form models.RegistrationForm) models.RegistrationForm {
	defaults := models.NewRegistrationForm()
	form.Email = strings.TrimSpace(form.Email)
	form.ZipCode = strings.TrimSpace(form.ZipCode)
	form.InsuranceProvider = strings.TrimSpace(form.InsuranceProvider)
	if strings.TrimSpace(form.PreferredLanguage) == "" {
		form.PreferredLanguage = defaults.PreferredLanguage
	}
	if form.CommunicationPreferences == nil {
		form.CommunicationPreferences = defaults.CommunicationPreferences
	}
	if form.MedicalConditions == nil {
		form.MedicalConditions = []string{}
	}
	if form.Allergies == nil {
		form.Allergies = []string{}
	}
	if form.AccessibilityNeeds == nil {
		form.AccessibilityNeeds = []string{}
	}

	completed := make([]string, 0, len(form.CompletedSections))
	for _, section := range form.CompletedSections {
		if IsKnownRegistrationSection(section) {
			completed = MarkSectionCompleted(completed, section)
		}
	}
	form.CompletedSections = completed
	return form
}
