package worker_test

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/taskhubnet/statuswatch/pkg/domain/model"
	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	"github.com/taskhubnet/statuswatch/pkg/repository/memory"
	"github.com/taskhubnet/statuswatch/pkg/service/worker"
	"github.com/taskhubnet/statuswatch/pkg/usecase"
)

type stubSlackService struct {
	mu           sync.Mutex
	historyCalls int
}

func (s *stubSlackService) ResolveChannel(ctx context.Context, name string) (string, error) {
	return "C001", nil
}

func (s *stubSlackService) ListMembers(ctx context.Context, channelID string) ([]model.User, error) {
	return []model.User{{ID: "U1", Name: "alice"}}, nil
}

func (s *stubSlackService) HistorySince(ctx context.Context, channelID string, since time.Time) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyCalls++
	ts := strconv.FormatInt(time.Now().Unix(), 10) + ".000100"
	return []model.Message{{UserID: "U1", Text: "#update still here", Timestamp: ts}}, nil
}

func (s *stubSlackService) historyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyCalls
}

func TestReportRefreshWorker(t *testing.T) {
	t.Run("initial refresh warms the cache", func(t *testing.T) {
		stub := &stubSlackService{}
		cache := memory.New()
		uc := usecase.New(stub, usecase.WithCache(cache, time.Hour))

		w := worker.NewReportRefreshWorker(uc, []worker.Dashboard{
			{
				Channel:   "dev-team",
				Timeframe: types.TimeframeToday,
				Kinds:     []types.ReportKind{types.ReportKindUpdate},
			},
		}, time.Hour)

		gt.NoError(t, w.Start(context.Background())).Required()

		// Wait for the initial refresh cycle to land in the cache
		deadline := time.Now().Add(3 * time.Second)
		for {
			if _, _, ok := cache.GetUpdate("dev-team", types.TimeframeToday); ok {
				break
			}
			if time.Now().After(deadline) {
				t.Fatal("cache was not warmed by the initial refresh")
			}
			time.Sleep(10 * time.Millisecond)
		}

		w.Stop()

		// A read after the refresh is a pure cache hit
		built := stub.historyCount()
		report, err := uc.GetUpdateStatus(context.Background(), "dev-team", types.TimeframeToday)
		gt.NoError(t, err).Required()
		gt.Array(t, report.Users).Length(1)
		gt.Number(t, stub.historyCount()).Equal(built)
	})

	t.Run("stop terminates the loop", func(t *testing.T) {
		stub := &stubSlackService{}
		uc := usecase.New(stub, usecase.WithCache(memory.New(), time.Hour))

		w := worker.NewReportRefreshWorker(uc, nil, 10*time.Millisecond)
		gt.NoError(t, w.Start(context.Background())).Required()

		done := make(chan struct{})
		go func() {
			w.Stop()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(3 * time.Second):
			t.Fatal("worker did not stop in time")
		}
	})
}
