package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type IntakePurger interface {
	PurgeIdle(maxIdle time.Duration) int
}

type BookingPurger interface {
	PurgeIdle(maxIdle time.Duration, retention time.Duration) (int, int64, error)
}

type StalePurger interface {
	PurgeStale(maxAge time.Duration) (int64, error)
}

type PurgePolicy struct {
	IntakeIdle       time.Duration
	BookingIdle      time.Duration
	BookingRetention time.Duration
	DraftRetention   time.Duration
	HandoffRetention time.Duration
}

type PurgeReport struct {
	Intakes      int
	BookingFlows int
	BookingRows  int64
	Drafts       int64
	Handoffs     int64
	Failures     int
}

// Purger drops idle in-memory flows and expired rows.
type Purger struct {
	intakes       IntakePurger
	bookings      BookingPurger
	registrations StalePurger
	handoffs      StalePurger
	policy        PurgePolicy
	logger        *slog.Logger
}

func NewPurger(intakes IntakePurger, bookings BookingPurger, registrations StalePurger, handoffs StalePurger, policy PurgePolicy, logger *slog.Logger) *Purger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Purger{
		intakes:       intakes,
		bookings:      bookings,
		registrations: registrations,
		handoffs:      handoffs,
		policy:        policy,
		logger:        logger.With("job", "purge"),
	}
}

// Run performs one purge pass. A failing store does not stop the others.
func (purger *Purger) Run() PurgeReport {
	report := PurgeReport{}
	if purger.intakes != nil {
		report.Intakes = purger.intakes.PurgeIdle(purger.policy.IntakeIdle)
	}
	if purger.bookings != nil {
		flows, rows, err := purger.bookings.PurgeIdle(purger.policy.BookingIdle, purger.policy.BookingRetention)
		report.BookingFlows, report.BookingRows = flows, rows
		if err != nil {
			report.Failures++
			purger.logger.Error("purge bookings failed", "error", err)
		}
	}
	if purger.registrations != nil {
		drafts, err := purger.registrations.PurgeStale(purger.policy.DraftRetention)
		report.Drafts = drafts
		if err != nil {
			report.Failures++
			purger.logger.Error("purge registration drafts failed", "error", err)
		}
	}
	if purger.handoffs != nil {
		handoffs, err := purger.handoffs.PurgeStale(purger.policy.HandoffRetention)
		report.Handoffs = handoffs
		if err != nil {
			report.Failures++
			purger.logger.Error("purge doctor handoffs failed", "error", err)
		}
	}

	purger.logger.Info("purge finished",
		"intakes", report.Intakes,
		"booking_flows", report.BookingFlows,
		"booking_rows", report.BookingRows,
		"drafts", report.Drafts,
		"handoffs", report.Handoffs,
		"failures", report.Failures,
	)
	return report
}

// Schedule registers the purge on a new cron scheduler. The caller starts
// and stops it.
func Schedule(spec string, purger *Purger) (*cron.Cron, error) {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(spec, func() { purger.Run() }); err != nil {
		return nil, fmt.Errorf("schedule purge %q: %w", spec, err)
	}
	return scheduler, nil
}
