// Package hint generates cloze-style recall hints for vocabulary keywords.
// A hint masks part of the word with underscores so a learner can attempt
// recall from the remaining letters, e.g. "abuse" becomes "_ b _ s _".
package hint
