package services

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/terraincognita07/hospitalconnect/internal/models"
)

var (
	ErrInvalidSymptomName     = errors.New("invalid symptom name")
	ErrInvalidSymptomField    = errors.New("invalid symptom field")
	ErrInvalidSymptomDuration = errors.New("invalid symptom duration")
	ErrSymptomNotFound        = errors.New("symptom not found")
)

const (
	maxSymptomNameLength   = 80
	maxSymptomSuggestions  = 6
	userReportedSymptomDoc = "User-reported symptom"

	SymptomFieldSeverity = "severity"
	SymptomFieldDuration = "duration"
)

var symptomSlugSpaces = regexp.MustCompile(`\s+`)

// SymptomModel is the ordered list of symptoms of one intake session.
type SymptomModel struct {
	entries []models.Symptom
}

func NewSymptomModel() *SymptomModel {
	return &SymptomModel{entries: []models.Symptom{}}
}

// Add creates an entry for name unless one with the same name already
// exists (case-insensitive). The boolean reports whether an entry was added.
func (model *SymptomModel) Add(name string) (models.Symptom, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxSymptomNameLength {
		return models.Symptom{}, false, ErrInvalidSymptomName
	}

	for _, existing := range model.entries {
		if strings.EqualFold(existing.Name, name) {
			return existing, false, nil
		}
	}

	symptom := models.Symptom{
		ID:          SymptomSlug(name),
		Name:        name,
		Category:    models.CategoryGeneral,
		Severity:    models.DefaultSymptomSeverity,
		Duration:    models.DefaultSymptomDuration,
		Description: userReportedSymptomDoc,
	}
	if catalog, ok := findCatalogSymptom(name); ok {
		symptom.ID = catalog.ID
		symptom.Name = catalog.Name
		symptom.Category = catalog.Category
		symptom.Description = catalog.Description
	}
	symptom.ID = model.uniqueID(symptom.ID)

	model.entries = append(model.entries, symptom)
	return symptom, true, nil
}

func (model *SymptomModel) Update(id string, field string, value any) (models.Symptom, error) {
	index := model.indexOf(id)
	if index < 0 {
		return models.Symptom{}, ErrSymptomNotFound
	}

	switch strings.ToLower(strings.TrimSpace(field)) {
	case SymptomFieldSeverity:
		severity, ok := severityValue(value)
		if !ok {
			return models.Symptom{}, ErrInvalidSymptomField
		}
		model.entries[index].Severity = ClampSeverity(severity)
	case SymptomFieldDuration:
		duration, ok := value.(string)
		if !ok || !models.IsValidDuration(strings.TrimSpace(duration)) {
			return models.Symptom{}, ErrInvalidSymptomDuration
		}
		model.entries[index].Duration = strings.TrimSpace(duration)
	default:
		return models.Symptom{}, ErrInvalidSymptomField
	}
	return model.entries[index], nil
}

// Remove deletes the entry with id. Removing an unknown id is a no-op.
func (model *SymptomModel) Remove(id string) {
	index := model.indexOf(id)
	if index < 0 {
		return
	}
	model.entries = append(model.entries[:index], model.entries[index+1:]...)
}

func (model *SymptomModel) Clear() {
	model.entries = []models.Symptom{}
}

func (model *SymptomModel) Len() int {
	return len(model.entries)
}

// Symptoms returns a copy of the entries in insertion order.
func (model *SymptomModel) Symptoms() []models.Symptom {
	result := make([]models.Symptom, len(model.entries))
	copy(result, model.entries)
	return result
}

func (model *SymptomModel) indexOf(id string) int {
	for index, symptom := range model.entries {
		if symptom.ID == id {
			return index
		}
	}
	return -1
}

// uniqueID guards against two different names slugging to the same id,
// e.g. "Back  pain" and "back-pain".
func (model *SymptomModel) uniqueID(candidate string) string {
	if model.indexOf(candidate) < 0 {
		return candidate
	}
	for suffix := 2; ; suffix++ {
		next := candidate + "-" + strconv.Itoa(suffix)
		if model.indexOf(next) < 0 {
			return next
		}
	}
}

// SearchSymptoms returns up to six catalog entries whose name or
// description contains term. Terms shorter than two characters match nothing.
func SearchSymptoms(term string) []models.CatalogSymptom {
	needle := strings.ToLower(strings.TrimSpace(term))
	if len(needle) <= 1 {
		return []models.CatalogSymptom{}
	}

	result := make([]models.CatalogSymptom, 0, maxSymptomSuggestions)
	for _, symptom := range models.CommonSymptoms() {
		if strings.Contains(strings.ToLower(symptom.Name), needle) ||
			strings.Contains(strings.ToLower(symptom.Description), needle) {
			result = append(result, symptom)
			if len(result) == maxSymptomSuggestions {
				break
			}
		}
	}
	return result
}

func SymptomSlug(name string) string {
	return symptomSlugSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

func ClampSeverity(value int) int {
	if value < models.MinSymptomSeverity {
		return models.MinSymptomSeverity
	}
	if value > models.MaxSymptomSeverity {
		return models.MaxSymptomSeverity
	}
	return value
}

func findCatalogSymptom(name string) (models.CatalogSymptom, bool) {
	for _, symptom := range models.CommonSymptoms() {
		if strings.EqualFold(symptom.Name, name) {
			return symptom, true
		}
	}
	return models.CatalogSymptom{}, false
}

// severityValue accepts the numeric shapes a decoded JSON body can carry.
// Wide values are clamped before narrowing to int.
func severityValue(value any) (int, bool) {
	switch typed := value.(type) {
	case int:
		return typed, true
	case int64:
		return int(max(int64(models.MinSymptomSeverity), min(int64(models.MaxSymptomSeverity), typed))), true
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0, false
		}
		return int(math.Max(models.MinSymptomSeverity, math.Min(models.MaxSymptomSeverity, typed))), true
	default:
		return 0, false
	}
}
