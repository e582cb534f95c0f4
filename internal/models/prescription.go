package models

import "time"

const (
	PrescriptionActive  = "active"
	PrescriptionExpired = "expired"
	PrescriptionPending = "pending"
)

type Pharmacy struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Hours   string `json:"hours,omitempty"`
}

type PrescriptionAlert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Prescription struct {
	ID               string              `json:"id"`
	MedicationName   string              `json:"medication_name"`
	Dosage           string              `json:"dosage"`
	DoctorName       string              `json:"doctor_name"`
	IssueDate        time.Time           `json:"issue_date"`
	ExpiryDate       time.Time           `json:"expiry_date"`
	Status           string              `json:"status"`
	Quantity         string              `json:"quantity"`
	RefillsRemaining int                 `json:"refills_remaining"`
	TotalRefills     int                 `json:"total_refills"`
	CostCents        int                 `json:"cost_cents"`
	Pharmacy         Pharmacy            `json:"pharmacy"`
	Instructions     string              `json:"instructions"`
	Alerts           []PrescriptionAlert `json:"alerts"`
}

func mustDay(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func Prescriptions() []Prescription {
	return []Prescription{
		{
			ID:               "rx-001",
			MedicationName:   "Lisinopril",
			Dosage:           "10mg once daily",
			DoctorName:       "Sarah Johnson",
			IssueDate:        mustDay("2024-09-15"),
			ExpiryDate:       mustDay("2025-09-15"),
			Status:           PrescriptionActive,
			Quantity:         "30 tablets",
			RefillsRemaining: 3,
			TotalRefills:     5,
			CostCents:        1599,
			Pharmacy: Pharmacy{
				ID:      "cvs-main",
				Name:    "CVS Pharmacy - Main Street",
				Address: "123 Main Street, Downtown, NY 10001",
				Phone:   "(555) 123-4567",
				Hours:   "Mon-Fri: 8AM-10PM, Sat-Sun: 9AM-8PM",
			},
			Instructions: "Take one tablet by mouth once daily in the morning with or without food.",
			Alerts:       []PrescriptionAlert{{Type: "info", Message: "Refill available in 5 days"}},
		},
		{
			ID:               "rx-002",
			MedicationName:   "Metformin",
			Dosage:           "500mg twice daily",
			DoctorName:       "Michael Chen",
			IssueDate:        mustDay("2024-08-20"),
			ExpiryDate:       mustDay("2025-08-20"),
			Status:           PrescriptionActive,
			Quantity:         "60 tablets",
			RefillsRemaining: 2,
			TotalRefills:     4,
			CostCents:        1250,
			Pharmacy: Pharmacy{
				ID:      "walgreens-downtown",
				Name:    "Walgreens Pharmacy - Downtown",
				Address: "456 Broadway Ave, Downtown, NY 10002",
				Phone:   "(555) 234-5678",
				Hours:   "Mon-Sun: 7AM-11PM",
			},
			Instructions: "Take one tablet by mouth twice daily with meals.",
			Alerts:       []PrescriptionAlert{{Type: "warning", Message: "Due for refill - only 3 days supply remaining"}},
		},
		{
			ID:               "rx-003",
			MedicationName:   "Atorvastatin",
			Dosage:           "20mg once daily",
			DoctorName:       "Emily Davis",
			IssueDate:        mustDay("2024-07-10"),
			ExpiryDate:       mustDay("2024-10-10"),
			Status:           PrescriptionExpired,
			Quantity:         "30 tablets",
			RefillsRemaining: 0,
			TotalRefills:     3,
			CostCents:        1875,
			Pharmacy: Pharmacy{
				ID:      "hospital-pharmacy",
				Name:    "HospitalConnect Pharmacy",
				Address: "789 Medical Center Dr, NY 10003",
				Phone:   "(555) 345-6789",
				Hours:   "Mon-Fri: 7AM-9PM, Sat: 8AM-6PM",
			},
			Instructions: "Take one tablet by mouth once daily in the evening.",
			Alerts:       []PrescriptionAlert{{Type: "error", Message: "Prescription expired - contact doctor for renewal"}},
		},
		{
			ID:               "rx-004",
			MedicationName:   "Omeprazole",
			Dosage:           "20mg once daily",
			DoctorName:       "Robert Wilson",
			IssueDate:        mustDay("2024-09-25"),
			ExpiryDate:       mustDay("2025-09-25"),
			Status:           PrescriptionPending,
			Quantity:         "30 capsules",
			RefillsRemaining: 5,
			TotalRefills:     5,
			CostCents:        2230,
			Pharmacy: Pharmacy{
				ID:      "rite-aid-plaza",
				Name:    "Rite Aid Pharmacy - Medical Plaza",
				Address: "321 Health Plaza, NY 10004",
				Phone:   "(555) 456-7890",
				Hours:   "Mon-Fri: 8AM-9PM, Sat-Sun: 9AM-7PM",
			},
			Instructions: "Take one capsule by mouth once daily before breakfast.",
			Alerts:       []PrescriptionAlert{{Type: "info", Message: "New prescription ready for pickup"}},
		},
	}
}

func RefillPharmacies() []Pharmacy {
	return []Pharmacy{
		{ID: "cvs-main", Name: "CVS Pharmacy - Main Street"},
		{ID: "walgreens-downtown", Name: "Walgreens - Downtown"},
		{ID: "rite-aid-plaza", Name: "Rite Aid - Medical Plaza"},
		{ID: "hospital-pharmacy", Name: "HospitalConnect Pharmacy"},
		{ID: "online-pharmacy", Name: "Online Pharmacy Delivery"},
	}
}

const (
	DeliveryPickup   = "pickup"
	DeliveryHome     = "delivery"
	DeliveryCurbside = "curbside"
)

type RefillRequest struct {
	PrescriptionID  string    `json:"prescription_id"`
	PharmacyID      string    `json:"pharmacy"`
	DeliveryOption  string    `json:"delivery_option"`
	DeliveryAddress string    `json:"delivery_address"`
	InsuranceInfo   string    `json:"insurance_info"`
	Urgent          bool      `json:"urgent_request"`
	Notes           string    `json:"notes"`
	RequestedAt     time.Time `json:"request_date"`
}
