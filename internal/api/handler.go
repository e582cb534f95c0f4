package api

import (
	"errors"
	"html/template"
	"io/fs"
	"time"

	"github.com/terraincognita07/hospitalconnect/internal/clock"
	"github.com/terraincognita07/hospitalconnect/internal/services"
)

const (
	defaultIntakeCreateLimit  = 30
	defaultIntakeCreateWindow = time.Minute
)

// Dependencies are the services a Handler serves. Every field is required
// except the limits, which fall back to defaults.
type Dependencies struct {
	Intakes       *services.IntakeService
	Bookings      *services.BookingService
	Calendar      *services.CalendarService
	Registrations *services.RegistrationService
	Handoffs      *services.HandoffService
	Prescriptions *services.PrescriptionService
	Status        *services.StatusBoard
	Locations     *services.LocationTracker

	Sealer       CookieSealer
	Clock        clock.Clock
	Templates    fs.FS
	CookieSecure bool

	IntakeCreateLimit  int
	IntakeCreateWindow time.Duration
}

type Handler struct {
	intakes       *services.IntakeService
	bookings      *services.BookingService
	calendar      *services.CalendarService
	registrations *services.RegistrationService
	handoffs      *services.HandoffService
	prescriptions *services.PrescriptionService
	status        *services.StatusBoard
	locations     *services.LocationTracker

	sealer       CookieSealer
	clock        clock.Clock
	cookieSecure bool
	templates    map[string]*template.Template

	intakeLimiter      *attemptLimiter
	intakeCreateLimit  int
	intakeCreateWindow time.Duration
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Intakes == nil || deps.Bookings == nil || deps.Calendar == nil || deps.Registrations == nil ||
		deps.Handoffs == nil || deps.Prescriptions == nil || deps.Status == nil || deps.Locations == nil {
		return nil, errors.New("all services are required")
	}
	if deps.Sealer == nil {
		return nil, errors.New("cookie sealer is required")
	}
	if deps.Templates == nil {
		return nil, errors.New("templates are required")
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if deps.IntakeCreateLimit <= 0 {
		deps.IntakeCreateLimit = defaultIntakeCreateLimit
	}
	if deps.IntakeCreateWindow <= 0 {
		deps.IntakeCreateWindow = defaultIntakeCreateWindow
	}

	templates, err := parsePageTemplates(deps.Templates)
	if err != nil {
		return nil, err
	}

	return &Handler{
		intakes:            deps.Intakes,
		bookings:           deps.Bookings,
		calendar:           deps.Calendar,
		registrations:      deps.Registrations,
		handoffs:           deps.Handoffs,
		prescriptions:      deps.Prescriptions,
		status:             deps.Status,
		locations:          deps.Locations,
		sealer:             deps.Sealer,
		clock:              deps.Clock,
		cookieSecure:       deps.CookieSecure,
		templates:          templates,
		intakeLimiter:      newAttemptLimiter(),
		intakeCreateLimit:  deps.IntakeCreateLimit,
		intakeCreateWindow: deps.IntakeCreateWindow,
	}, nil
}
