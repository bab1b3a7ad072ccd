package sweeper

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"booklt/internal/promos/service"
	"booklt/pkg/config"
	"booklt/pkg/logger"
)

// sweepTimeout bounds one sweep run so a hung database call cannot pile up
// overlapping jobs.
const sweepTimeout = 30 * time.Second

// Sweeper periodically deactivates expired promo codes so listings and the
// redeem filter agree on which codes are live.
type Sweeper struct {
	cron    *cron.Cron
	service service.PromoService
	log     *logger.Logger
}

func New(service service.PromoService, cfg *config.Config) (*Sweeper, error) {
	s := &Sweeper{
		cron:    cron.New(),
		service: service,
		log:     cfg.Log,
	}

	if _, err := s.cron.AddFunc(cfg.PromoSweepInterval, s.sweep); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Sweeper) Start() {
	s.cron.Start()
	s.log.Info("Promo expiry sweeper started")
}

// Stop halts scheduling and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Promo expiry sweeper stopped")
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	count, err := s.service.DeactivateExpired(ctx)
	if err != nil {
		s.log.Error("Promo expiry sweep failed", "error", err)
		return
	}
	if count > 0 {
		s.log.Info("Deactivated expired promo codes", "count", count)
	}
}
