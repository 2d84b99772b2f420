package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/snonux/ankivocab/internal/anki"
	"codeberg.org/snonux/ankivocab/internal/audio"
	"codeberg.org/snonux/ankivocab/internal/batch"
	"codeberg.org/snonux/ankivocab/internal/dictionary"
	"codeberg.org/snonux/ankivocab/internal/hint"
	"codeberg.org/snonux/ankivocab/internal/translation"
)

const perWordTimeout = 2 * time.Minute

// LookupClient resolves a word to its dictionary entry.
type LookupClient interface {
	Lookup(ctx context.Context, word string) (*dictionary.WordInfo, error)
}

// ImageFetcher downloads an illustration for a word.
type ImageFetcher interface {
	FetchImage(ctx context.Context, word, destDir string) (string, error)
}

// Options configure a processing run.
type Options struct {
	SoundsDir       string
	ImagesDir       string
	SkipAudio       bool
	SkipImages      bool
	SkipTranslation bool

	// Anki package export
	GenerateAPKG bool
	DeckName     string
}

// Processor turns input word entries into enriched Anki cards. Every
// enrichment step degrades to an empty field on failure; only reading the
// input and writing the output can fail a run.
type Processor struct {
	opts       Options
	dict       LookupClient
	audio      audio.Fetcher
	images     ImageFetcher
	translator translation.Translator
	cache      *translation.Cache

	// Run statistics
	processedCount int
	degradedCount  int
	emptyRowCount  int
	skippedWords   []string
}

// New creates a processor. Any collaborator may be nil, which disables the
// corresponding enrichment.
func New(opts Options, dict LookupClient, audioFetcher audio.Fetcher, images ImageFetcher, translator translation.Translator) *Processor {
	return &Processor{
		opts:       opts,
		dict:       dict,
		audio:      audioFetcher,
		images:     images,
		translator: translator,
		cache:      translation.NewCache(),
	}
}

// Run reads input words, enriches them, and writes the output CSV. A report
// of words with failed dictionary lookups is written next to the output.
func (p *Processor) Run(ctx context.Context, inputPath, outputPath string) error {
	entries, err := batch.ReadInputCSV(inputPath)
	if err != nil {
		return err
	}

	cards, err := p.ProcessAll(ctx, entries)
	if err != nil {
		return err
	}

	writer := anki.NewWriter(outputPath)
	if err := writer.WriteCards(cards); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("\nWrote %d cards to %s\n", len(cards), outputPath)

	if err := p.writeSkippedReport(outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write skipped words report: %v\n", err)
	}

	if p.opts.GenerateAPKG {
		apkgPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".apkg"
		if err := p.generateAPKG(cards, apkgPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to generate Anki package: %v\n", err)
		} else {
			fmt.Printf("Wrote Anki package to %s\n", apkgPath)
		}
	}

	p.printSummary(len(entries))
	return nil
}

// ProcessAll enriches all entries and assigns card numbers. Entries with an
// empty keyword are dropped; all other entries produce a card, however
// degraded. Numbering is consecutive from 1 over the emitted cards.
func (p *Processor) ProcessAll(ctx context.Context, entries []batch.WordEntry) ([]anki.Card, error) {
	cards := make([]anki.Card, 0, len(entries))

	for i, entry := range entries {
		if entry.Keyword == "" {
			fmt.Fprintf(os.Stderr, "  Warning: skipping row %d: empty keyword\n", i+1)
			p.emptyRowCount++
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fmt.Printf("\nProcessing %d/%d: %s\n", i+1, len(entries), entry.Keyword)

		card := p.processWord(ctx, entry)
		card.No = len(cards) + 1
		cards = append(cards, card)
	}

	return cards, nil
}

// processWord builds a card for one entry. It never fails: each enrichment
// that errors leaves its fields empty and the card is emitted regardless.
func (p *Processor) processWord(ctx context.Context, entry batch.WordEntry) anki.Card {
	ctx, cancel := context.WithTimeout(ctx, perWordTimeout)
	defer cancel()

	card := anki.Card{
		Keyword:    entry.Keyword,
		Suggestion: hint.Generate(entry.Keyword),
	}
	degraded := false

	info := p.lookupWord(ctx, entry.Keyword)
	if info == nil {
		degraded = true
	} else {
		card.Transcription = info.Transcription
		card.Explanation = anki.FormatExplanation(entry.Keyword, info.Definition)
		card.Example = anki.FormatExamples(info.Examples)
	}

	card.Vietnamese = p.translateWord(ctx, entry)
	if card.Vietnamese == "" && !p.opts.SkipTranslation {
		degraded = true
	}

	if !p.opts.SkipAudio && p.audio != nil {
		pronunciationURL := ""
		if info != nil {
			pronunciationURL = info.PronunciationURL
		}
		fileName, err := p.audio.FetchAudio(ctx, entry.Keyword, pronunciationURL, p.opts.SoundsDir)
		if err != nil {
			if !errors.Is(err, audio.ErrNoPronunciation) {
				fmt.Fprintf(os.Stderr, "  Warning: audio download failed for '%s': %v\n", entry.Keyword, err)
			}
			degraded = true
		} else {
			card.Sound = anki.FormatSoundField(fileName)
		}
	}

	if !p.opts.SkipImages && p.images != nil {
		fileName, err := p.images.FetchImage(ctx, entry.Keyword, p.opts.ImagesDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: image download failed for '%s': %v\n", entry.Keyword, err)
			degraded = true
		} else {
			card.Image = anki.FormatImageField(fileName)
		}
	}

	p.processedCount++
	if degraded {
		p.degradedCount++
	}
	return card
}

// lookupWord fetches the dictionary entry, recording failures for the
// skipped words report. Returns nil when no entry is available.
func (p *Processor) lookupWord(ctx context.Context, word string) *dictionary.WordInfo {
	if p.dict == nil {
		return nil
	}

	fmt.Printf("  Looking up dictionary entry...\n")
	info, err := p.dict.Lookup(ctx, word)
	if err != nil {
		if errors.Is(err, dictionary.ErrNotFound) {
			fmt.Printf("  No dictionary entry found\n")
		} else {
			fmt.Fprintf(os.Stderr, "  Warning: dictionary lookup failed for '%s': %v\n", word, err)
		}
		p.skippedWords = append(p.skippedWords, word)
		return nil
	}
	return info
}

// translateWord returns the Vietnamese text for an entry, preferring the
// input-provided translation, then the cache, then the translation service.
func (p *Processor) translateWord(ctx context.Context, entry batch.WordEntry) string {
	if entry.Vietnamese != "" {
		fmt.Printf("  Using provided translation: %s\n", entry.Vietnamese)
		p.cache.Add(entry.Keyword, entry.Vietnamese)
		return entry.Vietnamese
	}
	if p.opts.SkipTranslation || p.translator == nil {
		return ""
	}

	if cached, ok := p.cache.Get(entry.Keyword); ok {
		return cached
	}

	fmt.Printf("  Translating...\n")
	translated, err := p.translator.Translate(ctx, entry.Keyword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: translation failed for '%s': %v\n", entry.Keyword, err)
		return ""
	}
	fmt.Printf("  Translation: %s\n", translated)
	p.cache.Add(entry.Keyword, translated)
	return translated
}

// writeSkippedReport writes the words whose dictionary lookup failed to
// skipped_words.txt next to the output file. No file is written when every
// lookup succeeded.
func (p *Processor) writeSkippedReport(outputPath string) error {
	if len(p.skippedWords) == 0 {
		return nil
	}

	reportPath := filepath.Join(filepath.Dir(outputPath), "skipped_words.txt")
	content := strings.Join(p.skippedWords, "\n") + "\n"
	if err := os.WriteFile(reportPath, []byte(content), 0644); err != nil {
		return err
	}
	fmt.Printf("Words without dictionary entries listed in %s\n", reportPath)
	return nil
}

func (p *Processor) generateAPKG(cards []anki.Card, apkgPath string) error {
	deckName := p.opts.DeckName
	if deckName == "" {
		deckName = "English Vocabulary"
	}
	generator := anki.NewAPKGGenerator(deckName, p.opts.SoundsDir, p.opts.ImagesDir)
	for _, card := range cards {
		generator.AddCard(card)
	}
	return generator.GenerateAPKG(apkgPath)
}

func (p *Processor) printSummary(totalEntries int) {
	fmt.Printf("\n=== Processing Summary ===\n")
	fmt.Printf("Input rows: %d\n", totalEntries)
	fmt.Printf("Cards written: %d\n", p.processedCount)
	if p.degradedCount > 0 {
		fmt.Printf("Cards with missing fields: %d\n", p.degradedCount)
	}
	if p.emptyRowCount > 0 {
		fmt.Printf("Rows skipped (empty keyword): %d\n", p.emptyRowCount)
	}
	if len(p.skippedWords) > 0 {
		fmt.Printf("Words without dictionary entries: %d\n", len(p.skippedWords))
	}
	fmt.Printf("==========================\n")
}
