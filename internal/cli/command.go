package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/ankivocab/internal"
	"codeberg.org/snonux/ankivocab/internal/dictionary"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ankivocab [input.csv]",
		Short: "English Vocabulary Anki Card Generator",
		Long: `ankivocab turns a CSV of English words into Anki-importable flashcards.

For each word it looks up the dictionary entry (transcription, definition,
examples), downloads the pronunciation audio, fetches an illustration from
an image search API, translates the word, and builds a masked spelling hint.
Words that cannot be fully enriched still produce a card with the failed
fields left empty.

Examples:
  ankivocab words.csv                         # Enrich words.csv into output.csv
  ankivocab words.csv -o deck.csv --anki      # Also build deck.apkg
  ankivocab words.csv --translator openai     # Translate with OpenAI instead of Google
  ankivocab --archive                         # Move previous output aside`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.ankivocab.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", flags.OutputFile, "Output CSV file")
	cmd.Flags().StringVar(&flags.SoundsDir, "sounds-dir", flags.SoundsDir, "Directory for downloaded pronunciation audio")
	cmd.Flags().StringVar(&flags.ImagesDir, "images-dir", flags.ImagesDir, "Directory for downloaded images")
	cmd.Flags().StringVar(&flags.DictionaryURL, "dictionary-url", dictionary.DefaultBaseURL, "Dictionary API base URL")
	cmd.Flags().StringVar(&flags.ImageAPI, "image-api", flags.ImageAPI, "Image source (pexels or pixabay)")
	cmd.Flags().StringVar(&flags.Translator, "translator", flags.Translator, "Translation service (google, openai or gemini)")
	cmd.Flags().StringVar(&flags.TargetLang, "target-lang", flags.TargetLang, "Translation target language code")
	cmd.Flags().BoolVar(&flags.SkipAudio, "skip-audio", false, "Skip audio download")
	cmd.Flags().BoolVar(&flags.SkipImages, "skip-images", false, "Skip image download")
	cmd.Flags().BoolVar(&flags.SkipTranslation, "skip-translation", false, "Skip translation")
	cmd.Flags().BoolVar(&flags.TTSFallback, "tts-fallback", false, "Generate audio with OpenAI TTS when no pronunciation is available")
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Also generate an Anki package (.apkg) next to the output CSV")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move previous output files into a timestamped archive directory")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, echo, fable, onyx, nova, shimmer")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("output.file", cmd.Flags().Lookup("output"))
	viper.BindPFlag("output.sounds_dir", cmd.Flags().Lookup("sounds-dir"))
	viper.BindPFlag("output.images_dir", cmd.Flags().Lookup("images-dir"))
	viper.BindPFlag("dictionary.base_url", cmd.Flags().Lookup("dictionary-url"))
	viper.BindPFlag("image.provider", cmd.Flags().Lookup("image-api"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("translator"))
	viper.BindPFlag("translation.target_lang", cmd.Flags().Lookup("target-lang"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("audio.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".ankivocab" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ankivocab")
	}

	// Environment variables
	viper.SetEnvPrefix("ANKIVOCAB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("openai_api_key")
}

// GetPexelsKey retrieves the Pexels API key from environment or config
func GetPexelsKey() string {
	if key := os.Getenv("PEXELS_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("pexels_api_key")
}

// GetPixabayKey retrieves the Pixabay API key from environment or config
func GetPixabayKey() string {
	if key := os.Getenv("PIXABAY_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("pixabay_api_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini_api_key")
}
