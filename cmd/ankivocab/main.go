package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/ankivocab/internal/archive"
	"codeberg.org/snonux/ankivocab/internal/audio"
	"codeberg.org/snonux/ankivocab/internal/cli"
	"codeberg.org/snonux/ankivocab/internal/dictionary"
	"codeberg.org/snonux/ankivocab/internal/image"
	"codeberg.org/snonux/ankivocab/internal/models"
	"codeberg.org/snonux/ankivocab/internal/processor"
	"codeberg.org/snonux/ankivocab/internal/translation"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --archive flag
	if flags.Archive {
		outputDir := filepath.Dir(flags.SoundsDir)
		if err := archive.ArchiveOutput(outputDir); err != nil {
			return fmt.Errorf("failed to archive output: %w", err)
		}
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels()
	}

	if len(args) == 0 {
		return fmt.Errorf("no input file given (see --help)")
	}
	inputPath := args[0]

	opts := processor.Options{
		SoundsDir:       flags.SoundsDir,
		ImagesDir:       flags.ImagesDir,
		SkipAudio:       flags.SkipAudio,
		SkipImages:      flags.SkipImages,
		SkipTranslation: flags.SkipTranslation,
		GenerateAPKG:    flags.GenerateAnki,
		DeckName:        flags.DeckName,
	}

	dict := dictionary.NewClient(flags.DictionaryURL)

	audioFetcher, err := buildAudioFetcher(flags)
	if err != nil {
		return err
	}

	imageFetcher, err := buildImageFetcher(flags)
	if err != nil {
		return err
	}

	translator, err := buildTranslator(flags)
	if err != nil {
		return err
	}

	proc := processor.New(opts, dict, audioFetcher, imageFetcher, translator)
	return proc.Run(context.Background(), inputPath, flags.OutputFile)
}

// buildAudioFetcher returns the pronunciation downloader, wrapped with an
// OpenAI TTS fallback when requested.
func buildAudioFetcher(flags *cli.Flags) (audio.Fetcher, error) {
	if flags.SkipAudio {
		return nil, nil
	}

	var fetcher audio.Fetcher = audio.NewDownloader()
	if flags.TTSFallback {
		tts := audio.NewOpenAIFetcher(cli.GetOpenAIKey(), flags.OpenAIModel, flags.OpenAIVoice)
		if err := tts.IsAvailable(); err != nil {
			return nil, fmt.Errorf("--tts-fallback: %w", err)
		}
		fetcher = audio.NewFetcherWithFallback(fetcher, tts)
	}
	return fetcher, nil
}

func buildImageFetcher(flags *cli.Flags) (processor.ImageFetcher, error) {
	if flags.SkipImages {
		return nil, nil
	}

	var searcher image.Searcher
	switch flags.ImageAPI {
	case "pexels":
		searcher = image.NewPexelsClient(cli.GetPexelsKey())
	case "pixabay":
		searcher = image.NewPixabayClient(cli.GetPixabayKey())
	default:
		return nil, fmt.Errorf("unknown image API: %s (supported: pexels, pixabay)", flags.ImageAPI)
	}

	return image.NewDownloader(searcher, nil), nil
}

func buildTranslator(flags *cli.Flags) (translation.Translator, error) {
	if flags.SkipTranslation {
		return nil, nil
	}

	switch flags.Translator {
	case "google":
		return translation.NewGoogleTranslator("", flags.TargetLang), nil
	case "openai":
		key := cli.GetOpenAIKey()
		if key == "" {
			return nil, fmt.Errorf("--translator openai requires OPENAI_API_KEY")
		}
		return translation.NewOpenAITranslator(key, flags.TargetLang), nil
	case "gemini":
		key := cli.GetGeminiKey()
		if key == "" {
			return nil, fmt.Errorf("--translator gemini requires GEMINI_API_KEY")
		}
		return translation.NewGeminiTranslator(key, flags.TargetLang), nil
	default:
		return nil, fmt.Errorf("unknown translator: %s (supported: google, openai, gemini)", flags.Translator)
	}
}
