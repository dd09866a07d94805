package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	"github.com/taskhubnet/statuswatch/pkg/utils/errutil"
	"github.com/taskhubnet/statuswatch/pkg/utils/safe"
)

// reportQuery parses the shared channel/timeframe query parameters. An absent
// channel falls back to the use case default; an absent timeframe means today.
func reportQuery(r *http.Request) (string, types.Timeframe, error) {
	channel := r.URL.Query().Get("channel")

	tf, err := types.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		return "", "", goerr.Wrap(err, "invalid timeframe query parameter")
	}

	return channel, tf, nil
}

func (s *Server) lunchReportHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	channel, tf, err := reportQuery(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	report, err := s.uc.GetLunchStatus(ctx, channel, tf)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	writeJSON(ctx, w, report)
}

func (s *Server) updateReportHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	channel, tf, err := reportQuery(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	report, err := s.uc.GetUpdateStatus(ctx, channel, tf)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	writeJSON(ctx, w, report)
}

func (s *Server) reportStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	channel, tf, err := reportQuery(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	report, err := s.uc.GetReportStatus(ctx, channel, tf)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	writeJSON(ctx, w, report)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal report"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(ctx, w, data)
}
