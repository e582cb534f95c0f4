package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/hospitalconnect/internal/clock"
	"github.com/terraincognita07/hospitalconnect/internal/models"
)

const (
	StatusInterval         = 30 * time.Second
	LocationInterval       = 45 * time.Second
	DashboardClockInterval = time.Minute

	minDoctorsAvailable     = 8
	maxDoctorsAvailable     = 15
	initialDoctorsAvailable = 12
	minSlotsToday           = 3
	maxSlotsToday           = 12
	initialSlotsToday       = 8

	doctorStepUpThreshold = 0.5
	slotStepUpThreshold   = 0.6
	systemFlipThreshold   = 0.95
	locationMoveThreshold = 0.7
)

// Poller runs tick on every interval of its clock between Start and Stop.
type Poller struct {
	name     string
	clock    clock.Clock
	interval time.Duration
	tick     func(now time.Time)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(name string, clk clock.Clock, interval time.Duration, tick func(now time.Time)) *Poller {
	return &Poller{name: name, clock: clk, interval: interval, tick: tick}
}

func (poller *Poller) Name() string {
	return poller.name
}

// Start arms the ticker before returning. Starting a running poller is an
// error; it ends when ctx is done or Stop is called.
func (poller *Poller) Start(ctx context.Context) error {
	poller.mu.Lock()
	defer poller.mu.Unlock()
	if poller.cancel != nil {
		return fmt.Errorf("poller %s already running", poller.name)
	}

	ctx, cancel := context.WithCancel(ctx)
	ticker := poller.clock.NewTicker(poller.interval)
	done := make(chan struct{})
	poller.cancel = cancel
	poller.done = done

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C():
				poller.tick(now)
			}
		}
	}()
	return nil
}

// Stop ends the loop and waits for it. Stopping an idle poller is a no-op.
func (poller *Poller) Stop() {
	poller.mu.Lock()
	cancel, done := poller.cancel, poller.done
	poller.cancel, poller.done = nil, nil
	poller.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

type IndicatorColor string

const (
	ColorSuccess IndicatorColor = "success"
	ColorWarning IndicatorColor = "warning"
	ColorError   IndicatorColor = "error"
)

type SystemStatus string

const (
	SystemOnline      SystemStatus = "online"
	SystemMaintenance SystemStatus = "maintenance"
)

type StatusIndicator struct {
	Type  string         `json:"type"`
	Label string         `json:"label"`
	Color IndicatorColor `json:"color"`
	Pulse bool           `json:"pulse"`
}

type StatusSnapshot struct {
	DoctorsAvailable int               `json:"doctors_available"`
	SlotsToday       int               `json:"slots_today"`
	System           SystemStatus      `json:"system"`
	Indicators       []StatusIndicator `json:"indicators"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DashboardTime    time.Time         `json:"dashboard_time"`
}

// StatusBoard holds the simulated availability counters shown in the page
// header and on the dashboard.
type StatusBoard struct {
	mu               sync.RWMutex
	random           RandomSource
	doctorsAvailable int
	slotsToday       int
	system           SystemStatus
	updatedAt        time.Time
	dashboardTime    time.Time
}

func NewStatusBoard(random RandomSource, now time.Time) *StatusBoard {
	return &StatusBoard{
		random:           random,
		doctorsAvailable: initialDoctorsAvailable,
		slotsToday:       initialSlotsToday,
		system:           SystemOnline,
		updatedAt:        now,
		dashboardTime:    now,
	}
}

func (board *StatusBoard) Tick(now time.Time) {
	board.mu.Lock()
	defer board.mu.Unlock()

	board.doctorsAvailable = clampInt(board.doctorsAvailable+board.step(doctorStepUpThreshold), minDoctorsAvailable, maxDoctorsAvailable)
	board.slotsToday = clampInt(board.slotsToday+board.step(slotStepUpThreshold), minSlotsToday, maxSlotsToday)
	if board.random.Float64() > systemFlipThreshold {
		if board.system == SystemOnline {
			board.system = SystemMaintenance
		} else {
			board.system = SystemOnline
		}
	}
	board.updatedAt = now
}

func (board *StatusBoard) TickClock(now time.Time) {
	board.mu.Lock()
	defer board.mu.Unlock()
	board.dashboardTime = now
}

func (board *StatusBoard) step(upThreshold float64) int {
	if board.random.Float64() > upThreshold {
		return 1
	}
	return -1
}

func (board *StatusBoard) Snapshot() StatusSnapshot {
	board.mu.RLock()
	defer board.mu.RUnlock()

	return StatusSnapshot{
		DoctorsAvailable: board.doctorsAvailable,
		SlotsToday:       board.slotsToday,
		System:           board.system,
		Indicators: []StatusIndicator{
			{
				Type:  "doctors",
				Label: fmt.Sprintf("%d doctors available", board.doctorsAvailable),
				Color: DoctorsIndicatorColor(board.doctorsAvailable),
				Pulse: board.doctorsAvailable > 10,
			},
			{
				Type:  "appointments",
				Label: fmt.Sprintf("%d slots today", board.slotsToday),
				Color: SlotsIndicatorColor(board.slotsToday),
				Pulse: board.slotsToday > 6,
			},
			systemIndicator(board.system),
		},
		UpdatedAt:     board.updatedAt,
		DashboardTime: board.dashboardTime,
	}
}

func DoctorsIndicatorColor(count int) IndicatorColor {
	switch {
	case count > 10:
		return ColorSuccess
	case count > 5:
		return ColorWarning
	default:
		return ColorError
	}
}

func SlotsIndicatorColor(count int) IndicatorColor {
	switch {
	case count > 6:
		return ColorSuccess
	case count > 3:
		return ColorWarning
	default:
		return ColorError
	}
}

func systemIndicator(status SystemStatus) StatusIndicator {
	if status == SystemOnline {
		return StatusIndicator{Type: "system", Label: "All systems operational", Color: ColorSuccess, Pulse: true}
	}
	return StatusIndicator{Type: "system", Label: "Maintenance mode", Color: ColorWarning}
}

type LocationStatus string

const (
	LocationAvailable LocationStatus = "available"
	LocationBusy      LocationStatus = "busy"
	LocationUrgent    LocationStatus = "urgent"
	LocationCritical  LocationStatus = "critical"
)

var hospitalLocations = []string{
	"Room 205 - Cardiology Wing",
	"Emergency Department",
	"Surgery Suite 3",
	"Consultation Room A",
	"ICU Ward 2",
}

func LocationStatusFor(location string) LocationStatus {
	switch {
	case strings.Contains(location, "Emergency"):
		return LocationUrgent
	case strings.Contains(location, "Surgery"):
		return LocationBusy
	case strings.Contains(location, "ICU"):
		return LocationCritical
	default:
		return LocationAvailable
	}
}

type DoctorLocation struct {
	DoctorID  string         `json:"doctor_id"`
	Location  string         `json:"location"`
	Status    LocationStatus `json:"status"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// LocationTracker simulates where each doctor on the roster currently is.
type LocationTracker struct {
	mu        sync.RWMutex
	random    RandomSource
	locations map[string]DoctorLocation
	order     []string
}

func NewLocationTracker(random RandomSource, now time.Time) *LocationTracker {
	tracker := &LocationTracker{
		random:    random,
		locations: make(map[string]DoctorLocation),
	}
	for _, doctor := range models.DoctorRoster() {
		tracker.order = append(tracker.order, doctor.ID)
		tracker.locations[doctor.ID] = DoctorLocation{
			DoctorID:  doctor.ID,
			Location:  doctor.Location,
			Status:    LocationStatusFor(doctor.Location),
			UpdatedAt: now,
		}
	}
	return tracker
}

// Tick gives every doctor a 30% chance of moving to one of the hospital
// locations.
func (tracker *LocationTracker) Tick(now time.Time) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	for _, doctorID := range tracker.order {
		if tracker.random.Float64() <= locationMoveThreshold {
			continue
		}
		next := hospitalLocations[tracker.random.IntN(len(hospitalLocations))]
		tracker.locations[doctorID] = DoctorLocation{
			DoctorID:  doctorID,
			Location:  next,
			Status:    LocationStatusFor(next),
			UpdatedAt: now,
		}
	}
}

func (tracker *LocationTracker) Location(doctorID string) (DoctorLocation, error) {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()

	location, ok := tracker.locations[doctorID]
	if !ok {
		return DoctorLocation{}, ErrDoctorNotFound
	}
	return location, nil
}

func clampInt(value int, low int, high int) int {
	return max(low, min(high, value))
}
