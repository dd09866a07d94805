package memory_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/taskhubnet/statuswatch/pkg/domain/model"
	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	"github.com/taskhubnet/statuswatch/pkg/repository/memory"
)

func TestCache(t *testing.T) {
	now := time.Date(2025, 6, 4, 18, 0, 0, 0, time.UTC)

	t.Run("round-trips a lunch report", func(t *testing.T) {
		cache := memory.New()
		report := model.NewLunchReport("general", types.TimeframeToday, nil, now)

		cache.PutLunch("general", types.TimeframeToday, report, now)

		got, storedAt, ok := cache.GetLunch("general", types.TimeframeToday)
		gt.Value(t, ok).Equal(true)
		gt.Value(t, got.ID).Equal(report.ID)
		gt.Value(t, storedAt).Equal(now)
	})

	t.Run("misses on unknown keys", func(t *testing.T) {
		cache := memory.New()

		_, _, ok := cache.GetLunch("general", types.TimeframeToday)
		gt.Value(t, ok).Equal(false)
	})

	t.Run("keys are scoped by channel and timeframe", func(t *testing.T) {
		cache := memory.New()
		report := model.NewUpdateReport("general", types.TimeframeToday, nil, now)
		cache.PutUpdate("general", types.TimeframeToday, report, now)

		_, _, ok := cache.GetUpdate("general", types.TimeframeThisWeek)
		gt.Value(t, ok).Equal(false)

		_, _, ok = cache.GetUpdate("random", types.TimeframeToday)
		gt.Value(t, ok).Equal(false)
	})

	t.Run("report kinds do not collide", func(t *testing.T) {
		cache := memory.New()
		cache.PutLunch("general", types.TimeframeToday,
			model.NewLunchReport("general", types.TimeframeToday, nil, now), now)

		_, _, ok := cache.GetUpdate("general", types.TimeframeToday)
		gt.Value(t, ok).Equal(false)

		_, _, ok = cache.GetReport("general", types.TimeframeToday)
		gt.Value(t, ok).Equal(false)
	})

	t.Run("put replaces the stored report", func(t *testing.T) {
		cache := memory.New()
		first := model.NewReportStatusReport("general", types.TimeframeToday, nil, now)
		second := model.NewReportStatusReport("general", types.TimeframeToday, nil, now.Add(time.Minute))

		cache.PutReport("general", types.TimeframeToday, first, now)
		cache.PutReport("general", types.TimeframeToday, second, now.Add(time.Minute))

		got, storedAt, ok := cache.GetReport("general", types.TimeframeToday)
		gt.Value(t, ok).Equal(true)
		gt.Value(t, got.ID).Equal(second.ID)
		gt.Value(t, storedAt).Equal(now.Add(time.Minute))
	})
}
