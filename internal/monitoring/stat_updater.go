package monitoring

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/fittrack/exercise-tracker-be/internal/services"
)

// StatUpdater periodically snapshots store totals, logs them and emits a
// system.stats event for the live feed.
type StatUpdater struct {
	userSvc   services.UserServiceProvider
	recordSvc services.RecordServiceProvider
	eventSvc  services.EventServiceProvider
	schedule  string
	cron      *cron.Cron
}

// NewStatUpdater creates a new StatUpdater. schedule is a standard cron
// expression or a descriptor like "@every 1m".
func NewStatUpdater(userSvc services.UserServiceProvider, recordSvc services.RecordServiceProvider, eventSvc services.EventServiceProvider, schedule string) *StatUpdater {
	return &StatUpdater{
		userSvc:   userSvc,
		recordSvc: recordSvc,
		eventSvc:  eventSvc,
		schedule:  schedule,
	}
}

// Start registers the snapshot job and starts the cron scheduler.
func (su *StatUpdater) Start() error {
	su.cron = cron.New()
	if _, err := su.cron.AddFunc(su.schedule, su.snapshot); err != nil {
		return fmt.Errorf("invalid stats schedule %q: %w", su.schedule, err)
	}
	su.cron.Start()
	log.Info().Str("schedule", su.schedule).Msg("Stats updater started")
	return nil
}

// Stop halts the scheduler. Already-running snapshots finish on their own.
func (su *StatUpdater) Stop() {
	if su.cron != nil {
		su.cron.Stop()
	}
}

func (su *StatUpdater) snapshot() {
	users, err := su.userSvc.CountUsers()
	if err != nil {
		log.Error().Err(err).Msg("StatUpdater: Failed to count users")
		return
	}
	records, err := su.recordSvc.CountRecords()
	if err != nil {
		log.Error().Err(err).Msg("StatUpdater: Failed to count records")
		return
	}

	log.Info().Int64("users", users).Int64("records", records).Msg("Store totals")

	msg := fmt.Sprintf("Tracking %d records across %d users.", records, users)
	if err := su.eventSvc.CreateEvent("system.stats", "info", msg, nil); err != nil {
		log.Error().Err(err).Msg("StatUpdater: Failed to create stats event")
	}
}
