package internal

// SanitizeFilename creates a safe media file name from a keyword. Spaces in
// phrasal entries ("give up") and path-hostile characters become underscores
// so the name survives both the filesystem and Anki's media references.
func SanitizeFilename(s string) string {
	result := ""
	for _, r := range s {
		if isFilenameSafe(r) {
			result += string(r)
		} else {
			result += "_"
		}
	}
	return result
}

func isFilenameSafe(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '-' || r == '_'
}
