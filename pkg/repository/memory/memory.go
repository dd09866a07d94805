package memory

import (
	"sync"
	"time"

	"github.com/taskhubnet/statuswatch/pkg/domain/interfaces"
	"github.com/taskhubnet/statuswatch/pkg/domain/model"
	"github.com/taskhubnet/statuswatch/pkg/domain/types"
)

type cacheKey struct {
	kind      types.ReportKind
	channel   string
	timeframe types.Timeframe
}

type entry struct {
	report   any
	storedAt time.Time
}

// Cache is an in-memory implementation of interfaces.ReportCache. It keeps
// only the latest report per (kind, channel, timeframe); reports are never
// written to durable storage.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]entry
}

var _ interfaces.ReportCache = (*Cache)(nil)

// New creates an empty report cache
func New() *Cache {
	return &Cache{
		entries: make(map[cacheKey]entry),
	}
}

func (c *Cache) get(kind types.ReportKind, channel string, tf types.Timeframe) (any, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[cacheKey{kind: kind, channel: channel, timeframe: tf}]
	if !ok {
		return nil, time.Time{}, false
	}
	return e.report, e.storedAt, true
}

func (c *Cache) put(kind types.ReportKind, channel string, tf types.Timeframe, report any, storedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{kind: kind, channel: channel, timeframe: tf}] = entry{
		report:   report,
		storedAt: storedAt,
	}
}

// GetLunch returns the cached lunch report for the channel and timeframe
func (c *Cache) GetLunch(channel string, tf types.Timeframe) (*model.LunchReport, time.Time, bool) {
	v, at, ok := c.get(types.ReportKindLunch, channel, tf)
	if !ok {
		return nil, time.Time{}, false
	}
	report, ok := v.(*model.LunchReport)
	return report, at, ok
}

// PutLunch stores the latest lunch report for the channel and timeframe
func (c *Cache) PutLunch(channel string, tf types.Timeframe, report *model.LunchReport, storedAt time.Time) {
	c.put(types.ReportKindLunch, channel, tf, report, storedAt)
}

// GetUpdate returns the cached update report for the channel and timeframe
func (c *Cache) GetUpdate(channel string, tf types.Timeframe) (*model.UpdateReport, time.Time, bool) {
	v, at, ok := c.get(types.ReportKindUpdate, channel, tf)
	if !ok {
		return nil, time.Time{}, false
	}
	report, ok := v.(*model.UpdateReport)
	return report, at, ok
}

// PutUpdate stores the latest update report for the channel and timeframe
func (c *Cache) PutUpdate(channel string, tf types.Timeframe, report *model.UpdateReport, storedAt time.Time) {
	c.put(types.ReportKindUpdate, channel, tf, report, storedAt)
}

// GetReport returns the cached report-status report for the channel and timeframe
func (c *Cache) GetReport(channel string, tf types.Timeframe) (*model.ReportStatusReport, time.Time, bool) {
	v, at, ok := c.get(types.ReportKindReport, channel, tf)
	if !ok {
		return nil, time.Time{}, false
	}
	report, ok := v.(*model.ReportStatusReport)
	return report, at, ok
}

// PutReport stores the latest report-status report for the channel and timeframe
func (c *Cache) PutReport(channel string, tf types.Timeframe, report *model.ReportStatusReport, storedAt time.Time) {
	c.put(types.ReportKindReport, channel, tf, report, storedAt)
}
