// Package batch reads vocabulary input files for card generation.
package batch
