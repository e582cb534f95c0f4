package models

const (
	SectionPersonal  = "personal"
	SectionAddress   = "address"
	SectionInsurance = "insurance"
	SectionEmergency = "emergency"
	SectionMedical   = "medical"
	SectionPrefs     = "preferences"
	SectionDocuments = "documents"
)

func RegistrationSections() []string {
	return []string{
		SectionPersonal,
		SectionAddress,
		SectionInsurance,
		SectionEmergency,
		SectionMedical,
		SectionPrefs,
		SectionDocuments,
	}
}

// RegistrationForm mirrors the patient registration page. Document fields
// carry the uploaded file name; an empty name means nothing was uploaded.
type RegistrationForm struct {
	Title       string `json:"title"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	BloodType   string `json:"blood_type"`
	SSN         string `json:"ssn"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`

	StreetAddress string `json:"street_address"`
	Apartment     string `json:"apartment"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`

	InsuranceProvider          string `json:"insurance_provider"`
	PolicyNumber               string `json:"policy_number"`
	GroupNumber                string `json:"group_number"`
	PrimaryInsuredName         string `json:"primary_insured_name"`
	RelationshipToInsured      string `json:"relationship_to_insured"`
	InsurancePhone             string `json:"insurance_phone"`
	InsuranceEffectiveDate     string `json:"insurance_effective_date"`
	HasSecondaryInsurance      bool   `json:"has_secondary_insurance"`
	SecondaryInsuranceProvider string `json:"secondary_insurance_provider"`
	SecondaryPolicyNumber      string `json:"secondary_policy_number"`

	EmergencyContactName         string `json:"emergency_contact_name"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship"`
	EmergencyContactPhone        string `json:"emergency_contact_phone"`
	EmergencyContactAltPhone     string `json:"emergency_contact_alt_phone"`
	EmergencyContactEmail        string `json:"emergency_contact_email"`

	MedicalConditions    []string `json:"medical_conditions"`
	Allergies            []string `json:"allergies"`
	CurrentMedications   string   `json:"current_medications"`
	PrimaryCarePhysician string   `json:"primary_care_physician"`
	MedicalNotes         string   `json:"medical_notes"`

	PreferredLanguage        string   `json:"preferred_language"`
	CommunicationPreferences []string `json:"communication_preferences"`
	AccessibilityNeeds       []string `json:"accessibility_needs"`
	ReceiveHealthTips        bool     `json:"receive_health_tips"`
	ReceiveServiceUpdates    bool     `json:"receive_service_updates"`
	ParticipateInSurveys     bool     `json:"participate_in_surveys"`

	InsuranceCard  string `json:"insurance_card"`
	PhotoID        string `json:"photo_id"`
	MedicalRecords string `json:"medical_records"`

	AgreeToTerms     bool `json:"agree_to_terms"`
	AgreeToPrivacy   bool `json:"agree_to_privacy"`
	AgreeToTreatment bool `json:"agree_to_treatment"`

	CompletedSections []string `json:"completed_sections"`
}

func NewRegistrationForm() RegistrationForm {
	return RegistrationForm{
		PreferredLanguage:        "english",
		CommunicationPreferences: []string{"email"},
		MedicalConditions:        []string{},
		Allergies:                []string{},
		AccessibilityNeeds:       []string{},
		CompletedSections:        []string{},
	}
}
