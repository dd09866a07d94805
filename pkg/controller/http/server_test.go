package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	httpctrl "github.com/taskhubnet/statuswatch/pkg/controller/http"
	"github.com/taskhubnet/statuswatch/pkg/domain/model"
	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	"github.com/taskhubnet/statuswatch/pkg/usecase"
)

// stubSlackService serves a fixed channel so handlers can be driven end to end
type stubSlackService struct {
	resolveErr error
}

func (s *stubSlackService) ResolveChannel(ctx context.Context, name string) (string, error) {
	if s.resolveErr != nil {
		return "", s.resolveErr
	}
	return "C001", nil
}

func (s *stubSlackService) ListMembers(ctx context.Context, channelID string) ([]model.User, error) {
	return []model.User{{ID: "U1", Name: "alice"}}, nil
}

func (s *stubSlackService) HistorySince(ctx context.Context, channelID string, since time.Time) ([]model.Message, error) {
	noon := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	return []model.Message{
		{UserID: "U1", Text: "#update all good", Timestamp: tsOf(noon)},
		{UserID: "U1", Text: "#lunchstart", Timestamp: tsOf(noon.Add(time.Minute))},
	}, nil
}

func tsOf(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10) + ".000100"
}

func newTestServer(stub *stubSlackService) *httpctrl.Server {
	uc := usecase.New(stub)
	return httpctrl.New(uc)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&stubSlackService{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	gt.Number(t, rec.Code).Equal(http.StatusOK)

	var body map[string]string
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
	gt.Value(t, body["status"]).Equal("ok")
}

func TestReportEndpoints(t *testing.T) {
	t.Run("lunch report returns JSON with users", func(t *testing.T) {
		srv := newTestServer(&stubSlackService{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/lunch?channel=dev-team", nil))

		gt.Number(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, rec.Header().Get("Content-Type")).Equal("application/json")

		var report model.LunchReport
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report)).Required()
		gt.Value(t, report.Channel).Equal("dev-team")
		gt.Array(t, report.Users).Length(1)
	})

	t.Run("update report returns JSON with users", func(t *testing.T) {
		srv := newTestServer(&stubSlackService{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/update?timeframe=this_week", nil))

		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var report model.UpdateReport
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report)).Required()
		gt.Value(t, report.Timeframe).Equal(types.TimeframeThisWeek)
	})

	t.Run("report status endpoint answers", func(t *testing.T) {
		srv := newTestServer(&stubSlackService{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/report", nil))

		gt.Number(t, rec.Code).Equal(http.StatusOK)
	})
}

func TestErrorStatusMapping(t *testing.T) {
	t.Run("invalid timeframe maps to 400", func(t *testing.T) {
		srv := newTestServer(&stubSlackService{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/lunch?timeframe=fortnight", nil))

		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)

		var body map[string]string
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body)).Required()
		gt.String(t, body["error"]).NotEqual("")
	})

	t.Run("unknown channel maps to 404", func(t *testing.T) {
		stub := &stubSlackService{
			resolveErr: goerr.New("channel not found or not accessible", goerr.T(types.TagNotFound)),
		}
		srv := newTestServer(stub)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/lunch", nil))

		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("missing scope maps to 403", func(t *testing.T) {
		stub := &stubSlackService{
			resolveErr: goerr.New("missing permission scope", goerr.T(types.TagMissingScope)),
		}
		srv := newTestServer(stub)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/update", nil))

		gt.Number(t, rec.Code).Equal(http.StatusForbidden)
	})

	t.Run("rate limit maps to 429", func(t *testing.T) {
		stub := &stubSlackService{
			resolveErr: goerr.New("rate limit retry budget exhausted", goerr.T(types.TagRateLimited)),
		}
		srv := newTestServer(stub)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/report", nil))

		gt.Number(t, rec.Code).Equal(http.StatusTooManyRequests)
	})

	t.Run("unclassified errors map to 500", func(t *testing.T) {
		stub := &stubSlackService{
			resolveErr: goerr.New("something broke"),
		}
		srv := newTestServer(stub)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/lunch", nil))

		gt.Number(t, rec.Code).Equal(http.StatusInternalServerError)
	})
}
