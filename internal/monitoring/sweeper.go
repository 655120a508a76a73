package monitoring

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/shubham2799/BlogApp/internal/services"
)

// Sweeper periodically deletes sessions past their idle timeout. Expired
// sessions are already rejected on resolution; the sweeper only keeps the
// table from accumulating rows for tokens that never come back.
type Sweeper struct {
	sessionSvc services.SessionServiceProvider
	cron       *cron.Cron
}

// NewSweeper creates a new session sweeper.
func NewSweeper(sessionSvc services.SessionServiceProvider) *Sweeper {
	return &Sweeper{
		sessionSvc: sessionSvc,
		cron:       cron.New(),
	}
}

// Run starts the sweep schedule.
func (s *Sweeper) Run() {
	log.Info().Msg("Starting session sweeper...")

	// Run once immediately on start
	s.sweep()

	s.cron.AddFunc("@every 10m", s.sweep)
	s.cron.Start()
}

// Stop halts the sweep schedule.
func (s *Sweeper) Stop() {
	log.Info().Msg("Stopping session sweeper.")
	s.cron.Stop()
}

func (s *Sweeper) sweep() {
	purged, err := s.sessionSvc.PurgeExpired()
	if err != nil {
		log.Error().Err(err).Msg("Sweeper: failed to purge expired sessions")
		return
	}
	if purged > 0 {
		log.Info().Int64("purged", purged).Msg("Sweeper: removed expired sessions")
	}
}
