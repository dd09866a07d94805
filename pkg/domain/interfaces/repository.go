package interfaces

import (
	"time"

	"github.com/taskhubnet/statuswatch/pkg/domain/model"
	"github.com/taskhubnet/statuswatch/pkg/domain/types"
)

// ReportCache stores the most recent report per (channel, timeframe) so that
// dashboard reads do not trigger a fresh channel scan. Entries live in process
// memory only; reports are never persisted.
type ReportCache interface {
	GetLunch(channel string, tf types.Timeframe) (*model.LunchReport, time.Time, bool)
	PutLunch(channel string, tf types.Timeframe, report *model.LunchReport, storedAt time.Time)

	GetUpdate(channel string, tf types.Timeframe) (*model.UpdateReport, time.Time, bool)
	PutUpdate(channel string, tf types.Timeframe, report *model.UpdateReport, storedAt time.Time)

	GetReport(channel string, tf types.Timeframe) (*model.ReportStatusReport, time.Time, bool)
	PutReport(channel string, tf types.Timeframe, report *model.ReportStatusReport, storedAt time.Time)
}
