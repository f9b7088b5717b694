package export

import "strings"

// sanitizeFilename makes a story title safe as a file name.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	safe := strings.TrimSpace(replacer.Replace(name))
	if safe == "" {
		return "story"
	}
	return safe
}
