package cmd

import (
	"fmt"

	"github.com/s0up4200/srtran-gateway/internal/api"
	"github.com/s0up4200/srtran-gateway/internal/gemini"
	"github.com/s0up4200/srtran-gateway/internal/prompt"
	"github.com/s0up4200/srtran-gateway/internal/translate"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the translation HTTP endpoint",
	Long: `Run the HTTP translation endpoint.

Callers POST {"inputContent": "...", "apiKey": "...", "customPrompt": "..."}
and receive {"translatedContent": "..."}.

Example:
  srtran-gateway serve --config config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		generator, err := gemini.NewGenerator(cfg.GeneratorOptions(), logger)
		if err != nil {
			return fmt.Errorf("failed to initialize upstream client: %w", err)
		}

		svc := translate.NewService(generator, prompt.New(cfg.TargetLanguage), logger)
		endpoint := api.NewEndpoint(svc, logger)
		router := api.NewRouter(endpoint, cfg.Path, buildInfo())

		logger.Info().
			Str("backend", cfg.Backend).
			Str("model", cfg.Model).
			Str("path", cfg.Path).
			Dur("timeout", cfg.Timeout.Duration).
			Str("target_language", cfg.TargetLanguage).
			Msg("starting translation endpoint")

		return api.NewServer(cfg.ListenAddr, api.WithLogging(router, logger), logger).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
