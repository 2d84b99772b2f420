// Package image finds and downloads one representative photo per
// vocabulary word. Pexels is the default search provider, with Pixabay as
// an alternative; both implement a common Searcher interface consumed by a
// Downloader that handles retries, file naming and reuse of existing files.
package image
