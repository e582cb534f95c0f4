package models

type DoctorStatus string

const (
	DoctorOnline    DoctorStatus = "online"
	DoctorBusy      DoctorStatus = "busy"
	DoctorScheduled DoctorStatus = "scheduled"
	DoctorOffline   DoctorStatus = "offline"
)

const (
	SpecialtyInternalMedicine = "Internal Medicine"
	SpecialtyNeurology        = "Neurology"
	SpecialtyCardiology       = "Cardiology"
	SpecialtyGastroenterology = "Gastroenterology"
	SpecialtyOrthopedics      = "Orthopedics"
)

// DoctorRecord is static reference data. MatchScore is precomputed and
// never derived from intake input.
type DoctorRecord struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Specialty          string       `json:"specialty"`
	SubSpecialty       string       `json:"sub_specialty"`
	Rating             float64      `json:"rating"`
	ExperienceYears    int          `json:"experience_years"`
	Location           string       `json:"location"`
	AvailabilityLabel  string       `json:"availability_label"`
	Status             DoctorStatus `json:"status"`
	MatchScore         int          `json:"match_score"`
	Languages          []string     `json:"languages"`
	ConsultationFee    int          `json:"consultation_fee"`
	SpecializationTags []string     `json:"specialization_tags"`
	NextSlot           string       `json:"next_slot"`
}

// DoctorRoster returns a fresh copy of the roster on every call so callers
// can never mutate the shared reference data.
func DoctorRoster() []DoctorRecord {
	return []DoctorRecord{
		{
			ID:                 "dr-smith",
			Name:               "Dr. Sarah Smith",
			Specialty:          SpecialtyInternalMedicine,
			SubSpecialty:       "General Practice",
			Rating:             4.8,
			ExperienceYears:    12,
			Location:           "Building A, Floor 2, Room 205",
			AvailabilityLabel:  "Available Now",
			Status:             DoctorOnline,
			MatchScore:         95,
			Languages:          []string{"English", "Spanish"},
			ConsultationFee:    150,
			SpecializationTags: []string{"Fever", "Headache", "General Health", "Preventive Care"},
			NextSlot:           "10:30 AM Today",
		},
		{
			ID:                 "dr-johnson",
			Name:               "Dr. Michael Johnson",
			Specialty:          SpecialtyNeurology,
			SubSpecialty:       "Headache & Migraine",
			Rating:             4.9,
			ExperienceYears:    15,
			Location:           "Building B, Floor 3, Room 312",
			AvailabilityLabel:  "Available in 30 min",
			Status:             DoctorBusy,
			MatchScore:         92,
			Languages:          []string{"English"},
			ConsultationFee:    200,
			SpecializationTags: []string{"Headache", "Migraine", "Dizziness", "Neurological Disorders"},
			NextSlot:           "11:00 AM Today",
		},
		{
			ID:                 "dr-davis",
			Name:               "Dr. Emily Davis",
			Specialty:          SpecialtyCardiology,
			SubSpecialty:       "Heart & Chest Conditions",
			Rating:             4.7,
			ExperienceYears:    18,
			Location:           "Building C, Floor 1, Room 108",
			AvailabilityLabel:  "Available at 2:00 PM",
			Status:             DoctorScheduled,
			MatchScore:         88,
			Languages:          []string{"English", "French"},
			ConsultationFee:    250,
			SpecializationTags: []string{"Chest Pain", "Heart Conditions", "Shortness of Breath", "Cardiovascular Health"},
			NextSlot:           "2:00 PM Today",
		},
		{
			ID:                 "dr-wilson",
			Name:               "Dr. James Wilson",
			Specialty:          SpecialtyGastroenterology,
			SubSpecialty:       "Digestive Health",
			Rating:             4.6,
			ExperienceYears:    10,
			Location:           "Building A, Floor 3, Room 301",
			AvailabilityLabel:  "Available Tomorrow",
			Status:             DoctorOffline,
			MatchScore:         85,
			Languages:          []string{"English"},
			ConsultationFee:    180,
			SpecializationTags: []string{"Stomach Pain", "Nausea", "Digestive Issues", "Abdominal Pain"},
			NextSlot:           "9:00 AM Tomorrow",
		},
	}
}

func FindDoctor(id string) (DoctorRecord, bool) {
	for _, doctor := range DoctorRoster() {
		if doctor.ID == id {
			return doctor, true
		}
	}
	return DoctorRecord{}, false
}

// DefaultBookingDoctor is used when the booking page is opened without a
// hand-off from the symptom checker.
func DefaultBookingDoctor() DoctorRecord {
	doctor, _ := FindDoctor("dr-smith")
	return doctor
}
