package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	billing "financeiro-cloud/internal/billing/domain"
	"financeiro-cloud/internal/notify"
	"financeiro-cloud/internal/observability/metrics"
)

// Sweeper transitions lapsed open títulos to overdue and reports them.
// The engine also derives lapse at classification time, so a cash-flow
// computed between sweeps is still correct; the sweep keeps the stored
// status and the notification feed honest.
type Sweeper struct {
	repo     billing.Repository
	config   SweepConfig
	channel  notify.Channel
	logger   *log.Logger
	tenantID string
}

// NewSweeper constructs a sweeper. The notify channel may be nil.
func NewSweeper(repo billing.Repository, config SweepConfig, channel notify.Channel, tenantID string, logger *log.Logger) (*Sweeper, error) {
	if repo == nil {
		return nil, errors.New("billing sweeper: nil repo")
	}
	if tenantID == "" {
		return nil, errors.New("billing sweeper: empty tenant id")
	}
	if logger == nil {
		return nil, errors.New("billing sweeper: nil logger")
	}
	return &Sweeper{repo: repo, config: config, channel: channel, logger: logger, tenantID: tenantID}, nil
}

// Run executes one sweep at the given observation time. Títulos whose due
// date plus the grace window is strictly before the observation date are
// marked overdue. Returns how many títulos transitioned.
func (s *Sweeper) Run(ctx context.Context, now time.Time) (int, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveOverdueSweep(result, time.Since(start))
	}()

	today := now.UTC().Truncate(24 * time.Hour)
	cutoff := today.AddDate(0, 0, -s.config.GraceDays)

	lapsed, err := s.repo.ListOpenDueBefore(ctx, s.tenantID, cutoff)
	if err != nil {
		result = metrics.ResultError
		return 0, err
	}
	if len(lapsed) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(lapsed))
	for _, titulo := range lapsed {
		ids = append(ids, titulo.ID)
	}
	if err := s.repo.MarkOverdue(ctx, s.tenantID, ids, now.UTC()); err != nil {
		result = metrics.ResultError
		return 0, err
	}
	s.logger.Printf("overdue sweep: tenant=%s marked=%d cutoff=%s", s.tenantID, len(ids), cutoff.Format("2006-01-02"))

	if s.channel != nil {
		for _, titulo := range lapsed {
			content := fmt.Sprintf("titulo overdue: %s %s %s due %s",
				titulo.ID, titulo.Kind, titulo.Amount.StringFixed(2), titulo.DueDate.Format("2006-01-02"))
			if err := s.channel.Send(ctx, content); err != nil {
				s.logger.Printf("overdue notify error: titulo=%s err=%v", titulo.ID, err)
			}
		}
	}
	return len(ids), nil
}

// Start runs the sweep on a fixed interval until the context is done.
func (s *Sweeper) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case tick := <-ticker.C:
			if _, err := s.Run(ctx, tick.UTC()); err != nil {
				s.logger.Printf("overdue sweep error: %v", err)
			}
		}
	}
}
