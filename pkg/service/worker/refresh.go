package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	"github.com/taskhubnet/statuswatch/pkg/usecase"
	"github.com/taskhubnet/statuswatch/pkg/utils/errutil"
	"github.com/taskhubnet/statuswatch/pkg/utils/logging"
)

// Dashboard names one channel/timeframe combination whose reports are kept
// warm in the cache.
type Dashboard struct {
	Channel   string
	Timeframe types.Timeframe
	Kinds     []types.ReportKind
}

// ReportRefreshWorker rebuilds dashboard reports on a fixed interval so cache
// reads stay warm.
//
// Architecture assumptions:
// - Single server instance (the cache is process-local)
type ReportRefreshWorker struct {
	uc         *usecase.UseCases
	dashboards []Dashboard
	interval   time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// NewReportRefreshWorker creates a worker refreshing the given dashboards
func NewReportRefreshWorker(uc *usecase.UseCases, dashboards []Dashboard, interval time.Duration) *ReportRefreshWorker {
	return &ReportRefreshWorker{
		uc:         uc,
		dashboards: dashboards,
		interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background refresh loop. The initial refresh also runs in
// the background and does not block server startup.
func (w *ReportRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("report refresh worker starting",
		"interval", w.interval.String(), "dashboards", len(w.dashboards))

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ReportRefreshWorker) Stop() {
	logging.Default().Info("report refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("report refresh worker stopped")
}

func (w *ReportRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("report refresh worker context cancelled")
			return
		}
	}
}

// refresh performs a single refresh cycle. A failed dashboard is logged and
// skipped; the next interval retries it.
func (w *ReportRefreshWorker) refresh(ctx context.Context) {
	start := time.Now()

	for _, dashboard := range w.dashboards {
		for _, kind := range dashboard.Kinds {
			if ctx.Err() != nil {
				return
			}
			if err := w.uc.Rebuild(ctx, kind, dashboard.Channel, dashboard.Timeframe); err != nil {
				_ = errutil.Handle(ctx, goerr.Wrap(err, "dashboard refresh failed",
					goerr.V("channel", dashboard.Channel),
					goerr.V("timeframe", dashboard.Timeframe.String()),
					goerr.V("kind", kind.String()),
				), "dashboard refresh failed (will retry next interval)")
			}
		}
	}

	logging.From(ctx).Info("dashboard refresh cycle completed",
		"duration", time.Since(start).String())
}
