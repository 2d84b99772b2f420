// Package dictionary provides a client for the dictionary lookup API.
// It fetches phonetic transcriptions, definitions, example sentences and
// pronunciation audio URLs for English words. A circuit breaker guards the
// upstream so a dead dictionary host fails fast instead of imposing a full
// timeout on every remaining word of a batch.
package dictionary
