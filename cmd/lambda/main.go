// Package main is the AWS Lambda entry point for the translation endpoint.
package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/s0up4200/srtran-gateway/internal/api"
	"github.com/s0up4200/srtran-gateway/internal/config"
	"github.com/s0up4200/srtran-gateway/internal/gemini"
	"github.com/s0up4200/srtran-gateway/internal/prompt"
	"github.com/s0up4200/srtran-gateway/internal/translate"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(os.Getenv("SRTRAN_GATEWAY_CONFIG"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		logger = logger.Level(lvl)
	}
	log.Logger = logger

	// built once per cold start, shared by every invocation
	generator, err := gemini.NewGenerator(cfg.GeneratorOptions(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize upstream client")
	}

	svc := translate.NewService(generator, prompt.New(cfg.TargetLanguage), logger)
	handler := api.NewLambdaHandler(api.NewEndpoint(svc, logger), logger)

	lambda.Start(handler.Invoke)
}
