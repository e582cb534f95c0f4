package models

type SymptomCategory string

const (
	CategoryNeurological    SymptomCategory = "neurological"
	CategoryGeneral         SymptomCategory = "general"
	CategoryRespiratory     SymptomCategory = "respiratory"
	CategoryDigestive       SymptomCategory = "digestive"
	CategoryCardiovascular  SymptomCategory = "cardiovascular"
	CategoryMusculoskeletal SymptomCategory = "musculoskeletal"
)

const (
	DurationUnderOneDay    = "less than 1 day"
	DurationOneToThreeDays = "1-3 days"
	DurationFourToSeven    = "4-7 days"
	DurationOneToTwoWeeks  = "1-2 weeks"
	DurationOverTwoWeeks   = "more than 2 weeks"

	DefaultSymptomSeverity = 5
	DefaultSymptomDuration = DurationOneToThreeDays
	MinSymptomSeverity     = 1
	MaxSymptomSeverity     = 10
)

// Symptom is one entry of an intake session. Name is unique per session.
type Symptom struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    SymptomCategory `json:"category"`
	Severity    int             `json:"severity"`
	Duration    string          `json:"duration"`
	Description string          `json:"description"`
}

type CatalogSymptom struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    SymptomCategory `json:"category"`
	Description string          `json:"description"`
}

func DurationBuckets() []string {
	return []string{
		DurationUnderOneDay,
		DurationOneToThreeDays,
		DurationFourToSeven,
		DurationOneToTwoWeeks,
		DurationOverTwoWeeks,
	}
}

func IsValidDuration(value string) bool {
	for _, bucket := range DurationBuckets() {
		if bucket == value {
			return true
		}
	}
	return false
}

func CommonSymptoms() []CatalogSymptom {
	return []CatalogSymptom{
		{ID: "headache", Name: "Headache", Category: CategoryNeurological, Description: "Pain in head or neck area"},
		{ID: "fever", Name: "Fever", Category: CategoryGeneral, Description: "Body temperature above normal"},
		{ID: "cough", Name: "Cough", Category: CategoryRespiratory, Description: "Sudden expulsion of air from lungs"},
		{ID: "fatigue", Name: "Fatigue", Category: CategoryGeneral, Description: "Extreme tiredness or exhaustion"},
		{ID: "nausea", Name: "Nausea", Category: CategoryDigestive, Description: "Feeling of sickness with urge to vomit"},
		{ID: "dizziness", Name: "Dizziness", Category: CategoryNeurological, Description: "Feeling unsteady or lightheaded"},
		{ID: "chest-pain", Name: "Chest Pain", Category: CategoryCardiovascular, Description: "Pain or discomfort in chest area"},
		{ID: "shortness-breath", Name: "Shortness of Breath", Category: CategoryRespiratory, Description: "Difficulty breathing normally"},
		{ID: "stomach-pain", Name: "Stomach Pain", Category: CategoryDigestive, Description: "Pain in abdominal area"},
		{ID: "back-pain", Name: "Back Pain", Category: CategoryMusculoskeletal, Description: "Pain in back or spine area"},
		{ID: "joint-pain", Name: "Joint Pain", Category: CategoryMusculoskeletal, Description: "Pain in joints or bones"},
		{ID: "sore-throat", Name: "Sore Throat", Category: CategoryRespiratory, Description: "Pain or irritation in throat"},
	}
}

func QuickSelectSymptoms() []string {
	return []string{"Headache", "Fever", "Cough", "Fatigue", "Nausea", "Dizziness"}
}
