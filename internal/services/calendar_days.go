package services

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/terraincognita07/hospitalconnect/internal/clock"
	"github.com/terraincognita07/hospitalconnect/internal/models"
)

const (
	calendarGridDays        = 42
	slotlessDayProbability  = 0.3
	maxGeneratedSlotsPerDay = 8
)

// RandomSource is the slice of math/rand the simulations draw from.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// lockedRandom serializes access so one source can feed concurrent requests
// and pollers.
type lockedRandom struct {
	mu     sync.Mutex
	source *rand.Rand
}

func NewRandomSource(seed uint64) RandomSource {
	return &lockedRandom{source: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (random *lockedRandom) Float64() float64 {
	random.mu.Lock()
	defer random.mu.Unlock()
	return random.source.Float64()
}

func (random *lockedRandom) IntN(n int) int {
	random.mu.Lock()
	defer random.mu.Unlock()
	return random.source.IntN(n)
}

type CalendarDay struct {
	Date           string `json:"date"`
	Day            int    `json:"day"`
	InMonth        bool   `json:"in_month"`
	IsToday        bool   `json:"is_today"`
	IsPast         bool   `json:"is_past"`
	HasSlots       bool   `json:"has_slots"`
	AvailableSlots int    `json:"available_slots"`
}

type CalendarMonth struct {
	Month string        `json:"month"`
	Days  []CalendarDay `json:"days"`
}

type CalendarService struct {
	clock    clock.Clock
	random   RandomSource
	location *time.Location
}

func NewCalendarService(clk clock.Clock, random RandomSource, location *time.Location) *CalendarService {
	if location == nil {
		location = time.UTC
	}
	return &CalendarService{clock: clk, random: random, location: location}
}

// Month builds the six-week grid that starts on the Sunday on or before the
// first of the month. Availability is simulated per call.
func (service *CalendarService) Month(raw string) (CalendarMonth, error) {
	now := service.clock.Now()
	monthStart, err := ParseMonth(raw, now, service.location)
	if err != nil {
		return CalendarMonth{}, err
	}
	return BuildCalendarMonth(monthStart, now, service.location, service.random), nil
}

func (service *CalendarService) TimeSlots() []models.TimeSlot {
	return models.DailyTimeSlots()
}

func BuildCalendarMonth(monthStart time.Time, now time.Time, location *time.Location, random RandomSource) CalendarMonth {
	today := DateAtLocation(now, location)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))

	days := make([]CalendarDay, 0, calendarGridDays)
	for offset := 0; offset < calendarGridDays; offset++ {
		day := gridStart.AddDate(0, 0, offset)
		state := CalendarDay{
			Date:    day.Format(dateLayout),
			Day:     day.Day(),
			InMonth: day.Month() == monthStart.Month() && day.Year() == monthStart.Year(),
			IsToday: day.Equal(today),
			IsPast:  day.Before(today),
		}
		if state.InMonth && !state.IsPast && random.Float64() > slotlessDayProbability {
			state.HasSlots = true
			state.AvailableSlots = random.IntN(maxGeneratedSlotsPerDay) + 1
		}
		days = append(days, state)
	}

	return CalendarMonth{Month: monthStart.Format(monthLayout), Days: days}
}
