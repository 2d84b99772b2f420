// Package anki models the generated flashcards and persists them for Anki
// import: a nine-column CSV by default, or a complete .apkg package with
// bundled media. It also owns the Anki-specific field formatting (cloze
// markup, [sound:] references, <img> tags).
package anki
