package cli_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/gt"

	"github.com/taskhubnet/statuswatch/pkg/cli"
)

func TestTruncate(t *testing.T) {
	t.Run("short content passes through", func(t *testing.T) {
		gt.Value(t, cli.Truncate("all good", 60)).Equal("all good")
	})

	t.Run("content at the limit passes through", func(t *testing.T) {
		s := strings.Repeat("a", 10)
		gt.Value(t, cli.Truncate(s, 10)).Equal(s)
	})

	t.Run("long content is shortened with an ellipsis", func(t *testing.T) {
		got := cli.Truncate(strings.Repeat("a", 20), 10)
		gt.Value(t, got).Equal("aaaaaaa...")
	})

	t.Run("multibyte content is cut on rune boundaries", func(t *testing.T) {
		got := cli.Truncate(strings.Repeat("ランチ", 10), 10)
		gt.Value(t, utf8.ValidString(got)).Equal(true)
		gt.Number(t, utf8.RuneCountInString(got)).Equal(10)
		gt.Value(t, strings.HasSuffix(got, "...")).Equal(true)
	})

	t.Run("multibyte content within the limit is untouched", func(t *testing.T) {
		s := "昼休み #update 終わり"
		gt.Value(t, cli.Truncate(s, 60)).Equal(s)
	})
}
