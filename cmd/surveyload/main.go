package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	surveyload "github.com/FloreNiyigena/Mental-Health-and-Wellbeing"
)

func main() {
	godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := surveyload.ConfigFromEnv()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	opts := []surveyload.Option{surveyload.WithPrettyLogging()}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		opts = append(opts, surveyload.WithLogLevel(level))
	}
	if token := os.Getenv("SLACK_TOKEN"); token != "" {
		opts = append(opts, surveyload.WithNotifier(&surveyload.SlackNotifier{
			Token:   token,
			Channel: os.Getenv("SLACK_CHANNEL"),
		}))
	}

	p, err := surveyload.New(cfg, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}

	if err := p.Run(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("survey load failed")
	}
}
