package services

import (
	"sort"
	"strings"

	"github.com/terraincognita07/hospitalconnect/internal/models"
)

// MatchDoctors filters the static roster against the intake input and orders
// the result by the roster's precomputed match score. Internal Medicine is
// always eligible once there is any input at all.
func MatchDoctors(symptoms []models.Symptom, areaIDs []string) []models.DoctorRecord {
	if len(symptoms) == 0 && len(areaIDs) == 0 {
		return []models.DoctorRecord{}
	}

	symptomNames := make([]string, 0, len(symptoms))
	for _, symptom := range symptoms {
		name := strings.ToLower(strings.TrimSpace(symptom.Name))
		if name != "" {
			symptomNames = append(symptomNames, name)
		}
	}
	areaSpecialties := specialtiesForAreas(areaIDs)

	matched := make([]models.DoctorRecord, 0, 4)
	for _, doctor := range models.DoctorRoster() {
		if doctor.Specialty == models.SpecialtyInternalMedicine ||
			doctorMatchesSymptoms(doctor, symptomNames) ||
			areaSpecialties[doctor.Specialty] {
			matched = append(matched, doctor)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].MatchScore > matched[j].MatchScore
	})
	return matched
}

func doctorMatchesSymptoms(doctor models.DoctorRecord, symptomNames []string) bool {
	for _, tag := range doctor.SpecializationTags {
		tag = strings.ToLower(tag)
		for _, name := range symptomNames {
			if strings.Contains(tag, name) || strings.Contains(name, tag) {
				return true
			}
		}
	}
	return false
}

func specialtiesForAreas(areaIDs []string) map[string]bool {
	table := models.AreaSpecialties()
	result := make(map[string]bool, len(areaIDs))
	for _, areaID := range areaIDs {
		for _, specialty := range table[areaID] {
			result[specialty] = true
		}
	}
	return result
}
