// Package audio obtains pronunciation sound files for vocabulary words.
// The primary fetcher downloads the audio URL reported by the dictionary
// API; an optional OpenAI text-to-speech fetcher fills in when the
// dictionary offers no recording. Fetchers share one interface so they can
// be chained with a fallback.
package audio
