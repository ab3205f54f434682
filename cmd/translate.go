package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/s0up4200/srtran-gateway/internal/gemini"
	"github.com/s0up4200/srtran-gateway/internal/prompt"
	"github.com/s0up4200/srtran-gateway/internal/srt"
	"github.com/s0up4200/srtran-gateway/internal/translate"
	"github.com/spf13/cobra"
)

var (
	inputFile      string
	outputFile     string
	customPrompt   string
	targetLanguage string
	chunkLimit     int
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a subtitle file",
	Long: `Translate a subtitle file locally, splitting it into chunks that fit the
model's output budget. The API key is read from GEMINI_API_KEY or api_key
in the config file.

Example:
  srtran-gateway translate -i input.srt -o output.srt --language German`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == "" {
			return fmt.Errorf("input file is required")
		}
		if outputFile == "" {
			return fmt.Errorf("output file is required")
		}
		if cfg.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable or api_key config is required")
		}

		content, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}

		subtitles, err := srt.Parse(bytes.NewReader(content))
		if err != nil {
			return fmt.Errorf("failed to parse input file: %w", err)
		}

		language := cfg.TargetLanguage
		if targetLanguage != "" {
			language = targetLanguage
		}
		limit := cfg.ChunkLimit
		if cmd.Flags().Changed("chunk-limit") {
			limit = chunkLimit
		}

		logger.Info().
			Str("input", inputFile).
			Int("subtitles", len(subtitles)).
			Str("target_language", language).
			Int("chunk_limit", limit).
			Msg("translating")

		generator, err := gemini.NewGenerator(cfg.GeneratorOptions(), logger)
		if err != nil {
			return fmt.Errorf("failed to initialize upstream client: %w", err)
		}

		svc := translate.NewService(generator, prompt.New(language), logger)
		result, err := svc.TranslateDocument(cmd.Context(), translate.DocumentRequest{
			Request: translate.Request{
				InputContent: string(content),
				APIKey:       cfg.APIKey,
				CustomPrompt: customPrompt,
			},
			ChunkLimit: limit,
		})
		if err != nil {
			return fmt.Errorf("failed to translate subtitles: %w", err)
		}

		if err := writeOutput(outputFile, result.TranslatedContent, len(subtitles)); err != nil {
			return err
		}

		logger.Info().Str("output", outputFile).Msg("translation written")
		return nil
	},
}

// writeOutput normalizes the model output through the SRT writer when it kept
// every block, and writes it untouched otherwise so nothing is lost.
func writeOutput(path, translated string, expected int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	subtitles, err := srt.Parse(strings.NewReader(translated))
	if err == nil && len(subtitles) == expected {
		if err := srt.Format(file, subtitles); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return file.Close()
	}

	event := logger.Warn().Int("expected", expected).Int("received", len(subtitles))
	if err != nil && !errors.Is(err, srt.ErrNoSubtitles) {
		event = event.Err(err)
	}
	event.Msg("translated block count differs from input, writing raw output")

	if _, err := file.WriteString(strings.TrimSpace(translated) + "\n"); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return file.Close()
}

func init() {
	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "input subtitle file")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output subtitle file")
	translateCmd.Flags().StringVarP(&customPrompt, "prompt", "p", "", "custom tone/style instructions replacing the default")
	translateCmd.Flags().StringVarP(&targetLanguage, "language", "t", "", "target language (e.g., 'Vietnamese', 'German')")
	translateCmd.Flags().IntVar(&chunkLimit, "chunk-limit", 0, "max characters per upstream request (0 sends the file whole)")

	rootCmd.AddCommand(translateCmd)
}
