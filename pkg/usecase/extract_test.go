package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/taskhubnet/statuswatch/pkg/domain/model"
	"github.com/taskhubnet/statuswatch/pkg/usecase"
)

func ts(t time.Time) string {
	return fmt.Sprintf("%d.000100", t.Unix())
}

func msg(user, text string, at time.Time) model.Message {
	return model.Message{UserID: user, Text: text, Timestamp: ts(at)}
}

func TestExtractPair(t *testing.T) {
	tags := usecase.DefaultTagSet()
	base := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)

	t.Run("pairs the first start with the first end after it", func(t *testing.T) {
		msgs := []model.Message{
			msg("U1", "#lunchend", base.Add(45*time.Minute)),
			msg("U1", "#lunchstart off to lunch", base),
			msg("U1", "#lunchstart again?", base.Add(10*time.Minute)),
		}

		start, end := usecase.ExtractPair(msgs, "U1", tags.LunchStart, tags.LunchEnds)
		gt.Value(t, start).NotNil()
		gt.Value(t, end).NotNil()
		gt.Value(t, *start).Equal(base)
		gt.Value(t, *end).Equal(base.Add(45 * time.Minute))
	})

	t.Run("end before start is ignored", func(t *testing.T) {
		msgs := []model.Message{
			msg("U1", "#lunchend", base.Add(-time.Hour)),
			msg("U1", "#lunchstart", base),
		}

		start, end := usecase.ExtractPair(msgs, "U1", tags.LunchStart, tags.LunchEnds)
		gt.Value(t, start).NotNil()
		gt.Value(t, end).Nil()
	})

	t.Run("no start means no pair even with an end", func(t *testing.T) {
		msgs := []model.Message{
			msg("U1", "#lunchend", base),
		}

		start, end := usecase.ExtractPair(msgs, "U1", tags.LunchStart, tags.LunchEnds)
		gt.Value(t, start).Nil()
		gt.Value(t, end).Nil()
	})

	t.Run("lunchover closes a lunch like lunchend", func(t *testing.T) {
		msgs := []model.Message{
			msg("U1", "#lunchstart", base),
			msg("U1", "back now #lunchover", base.Add(30*time.Minute)),
		}

		start, end := usecase.ExtractPair(msgs, "U1", tags.LunchStart, tags.LunchEnds)
		gt.Value(t, start).NotNil()
		gt.Value(t, end).NotNil()
		gt.Value(t, *end).Equal(base.Add(30 * time.Minute))
	})

	t.Run("matches tags case-insensitively inside text", func(t *testing.T) {
		msgs := []model.Message{
			msg("U1", "heading out #LunchStart now", base),
		}

		start, _ := usecase.ExtractPair(msgs, "U1", tags.LunchStart, tags.LunchEnds)
		gt.Value(t, start).NotNil()
	})

	t.Run("other users' messages are invisible", func(t *testing.T) {
		msgs := []model.Message{
			msg("U2", "#lunchstart", base),
			msg("U2", "#lunchend", base.Add(time.Hour)),
		}

		start, end := usecase.ExtractPair(msgs, "U1", tags.LunchStart, tags.LunchEnds)
		gt.Value(t, start).Nil()
		gt.Value(t, end).Nil()
	})
}

func TestExtractTagged(t *testing.T) {
	tags := usecase.DefaultTagSet()
	base := time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)

	t.Run("returns events newest first with content after the tag", func(t *testing.T) {
		msgs := []model.Message{
			msg("U1", "#update A", base),
			msg("U1", "#update B", base.Add(2*time.Hour)),
			msg("U1", "no tag here", base.Add(time.Hour)),
		}

		events := usecase.ExtractTagged(msgs, "U1", tags.Update)
		gt.Array(t, events).Length(2)
		gt.Value(t, events[0].Content).Equal("B")
		gt.Value(t, events[1].Content).Equal("A")
		gt.Value(t, events[0].Timestamp).Equal(base.Add(2 * time.Hour))
	})

	t.Run("strips text before the tag", func(t *testing.T) {
		msgs := []model.Message{
			msg("U1", "morning all, #update shipped the importer", base),
		}

		events := usecase.ExtractTagged(msgs, "U1", tags.Update)
		gt.Array(t, events).Length(1)
		gt.Value(t, events[0].Content).Equal("shipped the importer")
	})

	t.Run("bare tag yields empty content", func(t *testing.T) {
		msgs := []model.Message{
			msg("U1", "#report", base),
		}

		events := usecase.ExtractTagged(msgs, "U1", tags.Report)
		gt.Array(t, events).Length(1)
		gt.Value(t, events[0].Content).Equal("")
	})

	t.Run("date renders as dd/mm/yyyy", func(t *testing.T) {
		msgs := []model.Message{
			msg("U1", "#report weekly summary", base),
		}

		events := usecase.ExtractTagged(msgs, "U1", tags.Report)
		gt.Array(t, events).Length(1)
		gt.Value(t, events[0].Date).Equal("04/06/2025")
	})

	t.Run("no matches yields no events", func(t *testing.T) {
		msgs := []model.Message{
			msg("U1", "just chatting", base),
		}

		events := usecase.ExtractTagged(msgs, "U1", tags.Update)
		gt.Array(t, events).Length(0)
	})
}
