// Package processor orchestrates the enrichment pipeline from input
// words to Anki-ready cards.
package processor
