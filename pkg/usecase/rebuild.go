package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/taskhubnet/statuswatch/pkg/domain/types"
)

// Rebuild forces a live build of one report and stores it in the cache,
// bypassing freshness checks. Used by the dashboard refresh worker.
func (uc *UseCases) Rebuild(ctx context.Context, kind types.ReportKind, channel string, tf types.Timeframe) error {
	if uc.cache == nil {
		return goerr.New("report cache is not configured", goerr.T(types.TagConfiguration))
	}

	channel = uc.channelOrDefault(channel)
	tf = tf.Normalize()
	if !tf.IsValid() {
		return goerr.New("invalid timeframe", goerr.V("timeframe", tf.String()), goerr.T(types.TagBadRequest))
	}

	switch kind {
	case types.ReportKindLunch:
		report, err := uc.buildLunchReport(ctx, channel, tf)
		if err != nil {
			return err
		}
		uc.cache.PutLunch(channel, tf, report, uc.now())

	case types.ReportKindUpdate:
		report, err := uc.buildUpdateReport(ctx, channel, tf)
		if err != nil {
			return err
		}
		uc.cache.PutUpdate(channel, tf, report, uc.now())

	case types.ReportKindReport:
		report, err := uc.buildReportStatusReport(ctx, channel, tf)
		if err != nil {
			return err
		}
		uc.cache.PutReport(channel, tf, report, uc.now())

	default:
		return goerr.New("invalid report kind", goerr.V("kind", kind.String()), goerr.T(types.TagBadRequest))
	}

	return nil
}
