package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/taskhubnet/statuswatch/pkg/domain/model"
	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	"github.com/taskhubnet/statuswatch/pkg/utils/async"
	"github.com/taskhubnet/statuswatch/pkg/utils/logging"
)

// GetLunchStatus builds the lunch report for a channel and timeframe. An empty
// channel falls back to the configured default; an empty timeframe means today.
// When a cache is configured, a fresh cached report is served directly and
// refreshed ahead of expiry in the background.
func (uc *UseCases) GetLunchStatus(ctx context.Context, channel string, tf types.Timeframe) (*model.LunchReport, error) {
	channel = uc.channelOrDefault(channel)
	tf = tf.Normalize()
	if !tf.IsValid() {
		return nil, goerr.New("invalid timeframe", goerr.V("timeframe", tf.String()), goerr.T(types.TagBadRequest))
	}

	if uc.cache != nil {
		if report, storedAt, ok := uc.cache.GetLunch(channel, tf); ok {
			age := uc.now().Sub(storedAt)
			if age <= uc.cacheTTL {
				uc.refreshAhead(ctx, refreshKey(types.ReportKindLunch, channel, tf), age, func(ctx context.Context) error {
					rebuilt, err := uc.buildLunchReport(ctx, channel, tf)
					if err != nil {
						return err
					}
					uc.cache.PutLunch(channel, tf, rebuilt, uc.now())
					return nil
				})
				return report, nil
			}
		}
	}

	report, err := uc.buildLunchReport(ctx, channel, tf)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.PutLunch(channel, tf, report, uc.now())
	}
	return report, nil
}

func (uc *UseCases) buildLunchReport(ctx context.Context, channel string, tf types.Timeframe) (*model.LunchReport, error) {
	channelID, users, since, err := uc.prepare(ctx, channel, tf)
	if err != nil {
		return nil, err
	}

	statuses := make([]model.LunchStatus, len(users))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.extractLimit)
	for i, user := range users {
		eg.Go(func() error {
			msgs, err := uc.slack.HistorySince(egCtx, channelID, since)
			if err != nil {
				return goerr.Wrap(err, "failed to scan lunch tags",
					goerr.V(types.UserIDKey, user.ID))
			}
			start, end := extractPair(msgs, user.ID, uc.tags.LunchStart, uc.tags.LunchEnds)
			statuses[i] = model.NewLunchStatus(user, start, end)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return model.NewLunchReport(channel, tf, statuses, uc.now()), nil
}

// GetUpdateStatus builds the update report for a channel and timeframe
func (uc *UseCases) GetUpdateStatus(ctx context.Context, channel string, tf types.Timeframe) (*model.UpdateReport, error) {
	channel = uc.channelOrDefault(channel)
	tf = tf.Normalize()
	if !tf.IsValid() {
		return nil, goerr.New("invalid timeframe", goerr.V("timeframe", tf.String()), goerr.T(types.TagBadRequest))
	}

	if uc.cache != nil {
		if report, storedAt, ok := uc.cache.GetUpdate(channel, tf); ok {
			age := uc.now().Sub(storedAt)
			if age <= uc.cacheTTL {
				uc.refreshAhead(ctx, refreshKey(types.ReportKindUpdate, channel, tf), age, func(ctx context.Context) error {
					rebuilt, err := uc.buildUpdateReport(ctx, channel, tf)
					if err != nil {
						return err
					}
					uc.cache.PutUpdate(channel, tf, rebuilt, uc.now())
					return nil
				})
				return report, nil
			}
		}
	}

	report, err := uc.buildUpdateReport(ctx, channel, tf)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.PutUpdate(channel, tf, report, uc.now())
	}
	return report, nil
}

func (uc *UseCases) buildUpdateReport(ctx context.Context, channel string, tf types.Timeframe) (*model.UpdateReport, error) {
	channelID, users, since, err := uc.prepare(ctx, channel, tf)
	if err != nil {
		return nil, err
	}

	statuses := make([]model.UpdateStatus, len(users))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.extractLimit)
	for i, user := range users {
		eg.Go(func() error {
			msgs, err := uc.slack.HistorySince(egCtx, channelID, since)
			if err != nil {
				return goerr.Wrap(err, "failed to scan update tags",
					goerr.V(types.UserIDKey, user.ID))
			}
			statuses[i] = model.NewUpdateStatus(user, extractTagged(msgs, user.ID, uc.tags.Update))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return model.NewUpdateReport(channel, tf, statuses, uc.now()), nil
}

// GetReportStatus builds the report-tag report for a channel and timeframe
func (uc *UseCases) GetReportStatus(ctx context.Context, channel string, tf types.Timeframe) (*model.ReportStatusReport, error) {
	channel = uc.channelOrDefault(channel)
	tf = tf.Normalize()
	if !tf.IsValid() {
		return nil, goerr.New("invalid timeframe", goerr.V("timeframe", tf.String()), goerr.T(types.TagBadRequest))
	}

	if uc.cache != nil {
		if report, storedAt, ok := uc.cache.GetReport(channel, tf); ok {
			age := uc.now().Sub(storedAt)
			if age <= uc.cacheTTL {
				uc.refreshAhead(ctx, refreshKey(types.ReportKindReport, channel, tf), age, func(ctx context.Context) error {
					rebuilt, err := uc.buildReportStatusReport(ctx, channel, tf)
					if err != nil {
						return err
					}
					uc.cache.PutReport(channel, tf, rebuilt, uc.now())
					return nil
				})
				return report, nil
			}
		}
	}

	report, err := uc.buildReportStatusReport(ctx, channel, tf)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.PutReport(channel, tf, report, uc.now())
	}
	return report, nil
}

func (uc *UseCases) buildReportStatusReport(ctx context.Context, channel string, tf types.Timeframe) (*model.ReportStatusReport, error) {
	channelID, users, since, err := uc.prepare(ctx, channel, tf)
	if err != nil {
		return nil, err
	}

	statuses := make([]model.ReportStatus, len(users))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.extractLimit)
	for i, user := range users {
		eg.Go(func() error {
			msgs, err := uc.slack.HistorySince(egCtx, channelID, since)
			if err != nil {
				return goerr.Wrap(err, "failed to scan report tags",
					goerr.V(types.UserIDKey, user.ID))
			}
			statuses[i] = model.NewReportStatus(user, extractTagged(msgs, user.ID, uc.tags.Report))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return model.NewReportStatusReport(channel, tf, statuses, uc.now()), nil
}

// prepare runs the shared head of every report build: channel resolution,
// member enumeration and window start computation.
func (uc *UseCases) prepare(ctx context.Context, channel string, tf types.Timeframe) (string, []model.User, time.Time, error) {
	channelID, err := uc.slack.ResolveChannel(ctx, channel)
	if err != nil {
		return "", nil, time.Time{}, err
	}

	users, err := uc.slack.ListMembers(ctx, channelID)
	if err != nil {
		return "", nil, time.Time{}, err
	}

	since := tf.WindowStart(uc.now())

	logging.From(ctx).Info("building report",
		"channel", channel, "channel_id", channelID,
		"timeframe", tf.String(), "users", len(users), "since", since)

	return channelID, users, since, nil
}

// refreshAhead rebuilds a cached report in the background once it has passed
// half its TTL, so dashboard reads rarely hit a cold rebuild. At most one
// rebuild per cache key runs at a time; reads arriving while one is in flight
// keep serving the cached report without dispatching another.
func (uc *UseCases) refreshAhead(ctx context.Context, key string, age time.Duration, rebuild func(ctx context.Context) error) {
	if age <= uc.cacheTTL/2 {
		return
	}
	if _, loaded := uc.refreshing.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		defer uc.refreshing.Delete(key)
		return rebuild(ctx)
	})
}

func refreshKey(kind types.ReportKind, channel string, tf types.Timeframe) string {
	return kind.String() + "/" + channel + "/" + tf.String()
}
