// Package translation provides English to target-language translation used
// as a fallback when an input row carries no translation of its own. Three
// providers share one interface: the public Google translate endpoint (the
// default, no API key needed), OpenAI chat completion, and Google Gemini.
// An in-memory cache avoids re-translating duplicate keywords in one run.
package translation
