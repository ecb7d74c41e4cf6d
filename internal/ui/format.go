package ui

// truncateString truncates a string to maxLen runes with ellipsis if
// needed. Rune-based so multibyte content (hostnames, container
// annotations) never gets split mid-character.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
