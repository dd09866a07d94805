package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/taskhubnet/statuswatch/pkg/cli/config"
	"github.com/taskhubnet/statuswatch/pkg/domain/model"
	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	"github.com/taskhubnet/statuswatch/pkg/usecase"
)

const reportContentWidth = 60

func cmdReport() *cli.Command {
	var channel string
	var timeframe string
	var configPath string
	var asJSON bool
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "channel",
			Aliases:     []string{"c"},
			Usage:       "Channel name to scan (falls back to configured default)",
			Sources:     cli.EnvVars("STATUSWATCH_CHANNEL"),
			Destination: &channel,
		},
		&cli.StringFlag{
			Name:        "timeframe",
			Aliases:     []string{"t"},
			Usage:       "Reporting period [today, yesterday, this_week]",
			Value:       types.TimeframeToday.String(),
			Sources:     cli.EnvVars("STATUSWATCH_TIMEFRAME"),
			Destination: &timeframe,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to TOML configuration file",
			Sources:     cli.EnvVars("STATUSWATCH_CONFIG"),
			Destination: &configPath,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the raw report as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:  "report",
		Usage: "Build a report once and print it",
		Commands: []*cli.Command{
			{
				Name:  "lunch",
				Usage: "Lunch-tag status per channel member",
				Flags: flags,
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, tf, err := setupReport(&slackCfg, configPath, timeframe)
					if err != nil {
						return err
					}
					report, err := uc.GetLunchStatus(ctx, channel, tf)
					if err != nil {
						return err
					}
					if asJSON {
						return printJSON(report)
					}
					printLunchReport(report)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "Update-tag status per channel member",
				Flags: flags,
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, tf, err := setupReport(&slackCfg, configPath, timeframe)
					if err != nil {
						return err
					}
					report, err := uc.GetUpdateStatus(ctx, channel, tf)
					if err != nil {
						return err
					}
					if asJSON {
						return printJSON(report)
					}
					printPostingTable("UPDATE", report.Channel, report.Timeframe, updateRows(report.Users))
					return nil
				},
			},
			{
				Name:  "report",
				Usage: "Report-tag status per channel member",
				Flags: flags,
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, tf, err := setupReport(&slackCfg, configPath, timeframe)
					if err != nil {
						return err
					}
					report, err := uc.GetReportStatus(ctx, channel, tf)
					if err != nil {
						return err
					}
					if asJSON {
						return printJSON(report)
					}
					printPostingTable("REPORT", report.Channel, report.Timeframe, reportRows(report.Users))
					return nil
				},
			},
		},
	}
}

// setupReport wires the one-shot pipeline. No cache: a single invocation
// always scans fresh.
func setupReport(slackCfg *config.Slack, configPath, timeframe string) (*usecase.UseCases, types.Timeframe, error) {
	appCfg, err := config.LoadAppConfig(configPath)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to load application config")
	}

	slackSvc, err := slackCfg.Configure()
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to configure slack service")
	}

	uc := usecase.New(slackSvc,
		usecase.WithDefaultChannel(appCfg.DefaultChannel),
		usecase.WithTags(appCfg.TagSet()),
	)

	tf, err := types.ParseTimeframe(timeframe)
	if err != nil {
		return nil, "", err
	}

	return uc, tf, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode report")
	}
	return nil
}

func printLunchReport(report *model.LunchReport) {
	printReportHeader("LUNCH", report.Channel, report.Timeframe)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USER\tSTATUS\tSTART\tEND\tDURATION")
	for _, u := range report.Users {
		status := colorLunchState(u.Status)
		duration := "-"
		if u.DurationMinutes != nil {
			duration = fmt.Sprintf("%dm", *u.DurationMinutes)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			u.Name, status, formatClock(u.LunchStartTime), formatClock(u.LunchEndTime), duration)
	}
	_ = w.Flush()

	fmt.Printf("\n%d of %d member(s) incomplete\n", report.Total, len(report.Users))
}

type postingRow struct {
	name      string
	hasPosted bool
	timestamp *time.Time
	content   string
}

func updateRows(users []model.UpdateStatus) []postingRow {
	rows := make([]postingRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, postingRow{u.Name, u.HasPosted, u.Timestamp, u.Content})
	}
	return rows
}

func reportRows(users []model.ReportStatus) []postingRow {
	rows := make([]postingRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, postingRow{u.Name, u.HasPosted, u.Timestamp, u.Content})
	}
	return rows
}

func printPostingTable(title, channel string, tf types.Timeframe, rows []postingRow) {
	printReportHeader(title, channel, tf)

	posted := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USER\tPOSTED\tWHEN\tCONTENT")
	for _, row := range rows {
		status := color.RedString("no")
		if row.hasPosted {
			status = color.GreenString("yes")
			posted++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			row.name, status, formatClock(row.timestamp), truncate(row.content, reportContentWidth))
	}
	_ = w.Flush()

	fmt.Printf("\n%d of %d member(s) posted\n", posted, len(rows))
}

func printReportHeader(title, channel string, tf types.Timeframe) {
	bold := color.New(color.Bold)
	bold.Printf("%s REPORT", title)
	fmt.Printf("  #%s  (%s)\n\n", channel, tf.String())
}

func colorLunchState(state types.LunchState) string {
	switch state {
	case types.LunchStateComplete:
		return color.GreenString(string(state))
	case types.LunchStateMissingBoth:
		return color.RedString(string(state))
	default:
		return color.YellowString(string(state))
	}
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("15:04")
}

// truncate shortens s to at most n display runes. Slicing happens on rune
// boundaries so multibyte content is never cut mid-sequence.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}
