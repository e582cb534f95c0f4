package models

type BodyArea struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Symptoms []string `json:"symptoms"`
}

func BodyAreas() []BodyArea {
	return []BodyArea{
		{ID: "head", Name: "Head & Face", Symptoms: []string{"Headache", "Dizziness", "Eye pain", "Jaw pain"}},
		{ID: "neck", Name: "Neck", Symptoms: []string{"Neck pain", "Stiff neck", "Throat pain"}},
		{ID: "chest", Name: "Chest", Symptoms: []string{"Chest pain", "Shortness of breath", "Heart palpitations"}},
		{ID: "abdomen", Name: "Abdomen", Symptoms: []string{"Stomach pain", "Nausea", "Bloating"}},
		{ID: "back", Name: "Back", Symptoms: []string{"Back pain", "Lower back pain", "Muscle spasms"}},
		{ID: "left-arm", Name: "Left Arm", Symptoms: []string{"Arm pain", "Numbness", "Weakness"}},
		{ID: "right-arm", Name: "Right Arm", Symptoms: []string{"Arm pain", "Numbness", "Weakness"}},
		{ID: "left-leg", Name: "Left Leg", Symptoms: []string{"Leg pain", "Swelling", "Cramps"}},
		{ID: "right-leg", Name: "Right Leg", Symptoms: []string{"Leg pain", "Swelling", "Cramps"}},
	}
}

func IsKnownBodyArea(id string) bool {
	for _, area := range BodyAreas() {
		if area.ID == id {
			return true
		}
	}
	return false
}

// AreaSpecialties maps a body area to the specialties that treat it.
// Areas without an entry never contribute an area match.
func AreaSpecialties() map[string][]string {
	return map[string][]string{
		"head":    {SpecialtyNeurology, SpecialtyInternalMedicine},
		"chest":   {SpecialtyCardiology, SpecialtyInternalMedicine},
		"abdomen": {SpecialtyGastroenterology, SpecialtyInternalMedicine},
		"back":    {SpecialtyOrthopedics, SpecialtyInternalMedicine},
	}
}
