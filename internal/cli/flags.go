package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	OutputFile    string
	SoundsDir     string
	ImagesDir     string
	DictionaryURL string
	ImageAPI      string
	Translator    string
	TargetLang    string

	SkipAudio       bool
	SkipImages      bool
	SkipTranslation bool
	TTSFallback     bool

	GenerateAnki bool
	DeckName     string
	ListModels   bool
	Archive      bool

	// OpenAI flags
	OpenAIModel string
	OpenAIVoice string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		OutputFile:  "output.csv",
		SoundsDir:   "output/sounds",
		ImagesDir:   "output/images",
		ImageAPI:    "pexels",
		Translator:  "google",
		TargetLang:  "vi",
		DeckName:    "English Vocabulary",
		OpenAIModel: "tts-1",
		OpenAIVoice: "alloy",
	}
}
