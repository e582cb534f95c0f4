package services

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/hospitalconnect/internal/models"
)

type EmergencyLevel int

const (
	EmergencyNone EmergencyLevel = iota
	EmergencyUrgent
	EmergencyCritical
)

const highSeverityThreshold = 8

func (level EmergencyLevel) String() string {
	switch level {
	case EmergencyUrgent:
		return "urgent"
	case EmergencyCritical:
		return "critical"
	default:
		return "none"
	}
}

func (level EmergencyLevel) MarshalText() ([]byte, error) {
	return []byte(level.String()), nil
}

func (level *EmergencyLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*level = EmergencyNone
	case "urgent":
		*level = EmergencyUrgent
	case "critical":
		*level = EmergencyCritical
	default:
		return fmt.Errorf("unknown emergency level %q", text)
	}
	return nil
}

var criticalSymptomKeywords = []string{
	"chest pain",
	"difficulty breathing",
	"shortness of breath",
	"severe headache",
	"loss of consciousness",
	"severe bleeding",
	"stroke symptoms",
	"heart attack",
}

var urgentSymptomKeywords = []string{
	"high fever",
	"severe pain",
	"persistent vomiting",
	"severe dizziness",
	"difficulty swallowing",
	"severe allergic reaction",
}

// ClassifyEmergency maps a symptom set onto an advisory tier. A critical
// keyword wins outright; an urgent keyword combined with a severity of 8 or
// more is also critical.
func ClassifyEmergency(symptoms []models.Symptom) EmergencyLevel {
	hasCritical := false
	hasUrgent := false
	hasHighSeverity := false
	for _, symptom := range symptoms {
		name := strings.ToLower(strings.TrimSpace(symptom.Name))
		if matchesKeywordTier(name, criticalSymptomKeywords) {
			hasCritical = true
		}
		if matchesKeywordTier(name, urgentSymptomKeywords) {
			hasUrgent = true
		}
		if symptom.Severity >= highSeverityThreshold {
			hasHighSeverity = true
		}
	}

	switch {
	case hasCritical, hasUrgent && hasHighSeverity:
		return EmergencyCritical
	case hasUrgent, hasHighSeverity:
		return EmergencyUrgent
	default:
		return EmergencyNone
	}
}

func matchesKeywordTier(name string, tier []string) bool {
	if name == "" {
		return false
	}
	for _, keyword := range tier {
		if strings.Contains(name, keyword) || strings.Contains(keyword, name) {
			return true
		}
	}
	return false
}

type AdvisoryAction struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
	URL   string `json:"url"`
}

type EmergencyAdvisory struct {
	Level   EmergencyLevel   `json:"level"`
	Visible bool             `json:"visible"`
	Title   string           `json:"title,omitempty"`
	Message string           `json:"message,omitempty"`
	Actions []AdvisoryAction `json:"actions,omitempty"`
}

const (
	emergencyDialNumber  = "911"
	urgentCareDialNumber = "5551234567"
	emergencyRoomMapURL  = "https://maps.google.com/?q=emergency+room+near+me"
	urgentCareMapURL     = "https://maps.google.com/?q=urgent+care+near+me"
)

// AdvisoryTracker keeps the banner state across symptom mutations. A
// dismissal holds for the tier it was made on; escalation re-shows it.
type AdvisoryTracker struct {
	level     EmergencyLevel
	dismissed EmergencyLevel
}

func (tracker *AdvisoryTracker) Evaluate(symptoms []models.Symptom) EmergencyLevel {
	level := ClassifyEmergency(symptoms)
	if level < tracker.dismissed {
		tracker.dismissed = level
	}
	tracker.level = level
	return level
}

func (tracker *AdvisoryTracker) Dismiss() {
	tracker.dismissed = tracker.level
}

func (tracker *AdvisoryTracker) Advisory() EmergencyAdvisory {
	advisory := EmergencyAdvisory{Level: tracker.level}
	if tracker.level == EmergencyNone || tracker.dismissed >= tracker.level {
		return advisory
	}

	advisory.Visible = true
	switch tracker.level {
	case EmergencyCritical:
		advisory.Title = "Seek Immediate Emergency Care"
		advisory.Message = "Your symptoms may indicate a serious medical emergency. Please call 911 or go to the nearest emergency room immediately."
		advisory.Actions = []AdvisoryAction{
			{Label: "Call 911", Kind: "dial", URL: "tel:" + emergencyDialNumber},
			{Label: "Find ER", Kind: "map", URL: emergencyRoomMapURL},
		}
	case EmergencyUrgent:
		advisory.Title = "Urgent Medical Attention Recommended"
		advisory.Message = "Your symptoms should be evaluated by a healthcare provider soon. Consider visiting urgent care or scheduling a same-day appointment."
		advisory.Actions = []AdvisoryAction{
			{Label: "Call Urgent Care", Kind: "dial", URL: "tel:" + urgentCareDialNumber},
			{Label: "Find Urgent Care", Kind: "map", URL: urgentCareMapURL},
		}
	}
	return advisory
}
