package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/taskhubnet/statuswatch/pkg/domain/interfaces"
	"github.com/taskhubnet/statuswatch/pkg/domain/types"
	slacksvc "github.com/taskhubnet/statuswatch/pkg/service/slack"
)

type Slack struct {
	botToken string
	apiURL   string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token",
			Category:    "Slack",
			Sources:     cli.EnvVars("SLACK_BOT_TOKEN", "STATUSWATCH_SLACK_BOT_TOKEN"),
			Destination: &x.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-api-url",
			Usage:       "Slack API base URL override (testing against a stub workspace)",
			Category:    "Slack",
			Sources:     cli.EnvVars("STATUSWATCH_SLACK_API_URL"),
			Destination: &x.apiURL,
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("api-url", x.apiURL),
	)
}

// BotToken returns the Slack bot token
func (x *Slack) BotToken() string {
	return x.botToken
}

// IsConfigured checks if the Slack credential is present
func (x *Slack) IsConfigured() bool {
	return x.botToken != ""
}

// Configure creates the Slack service from the configured credential
func (x *Slack) Configure(opts ...slacksvc.Option) (interfaces.SlackService, error) {
	if x.botToken == "" {
		return nil, goerr.New("slack bot token is required: set --slack-bot-token or SLACK_BOT_TOKEN",
			goerr.T(types.TagConfiguration))
	}

	if x.apiURL != "" {
		opts = append(opts, slacksvc.WithAPIURL(x.apiURL))
	}

	return slacksvc.New(x.botToken, opts...)
}

// NewSlackForTest creates a Slack config with explicit values (tests only)
func NewSlackForTest(botToken, apiURL string) *Slack {
	return &Slack{
		botToken: botToken,
		apiURL:   apiURL,
	}
}
