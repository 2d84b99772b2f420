package hint

import "strings"

// Generate returns a masked rendering of word with one space-separated token
// per character position. Characters at even 0-based positions are hidden
// behind "_", characters at odd positions are shown as given. The rule is
// applied uniformly to every position, letter or not, so hyphenated and
// phrasal keywords still produce a stable hint.
//
// Generate is pure: the result depends only on word, and repeated calls
// return identical output. An empty word yields an empty hint; callers are
// expected to reject empty keywords before asking for a hint.
func Generate(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}

	tokens := make([]string, len(runes))
	for i, r := range runes {
		if i%2 == 0 {
			tokens[i] = "_"
		} else {
			tokens[i] = string(r)
		}
	}

	return strings.Join(tokens, " ")
}
