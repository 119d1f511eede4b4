package postgres

import "strings"

// escapeILIKEPattern escapes ILIKE metacharacters so user search text is
// matched literally inside the '%...%' pattern.
func escapeILIKEPattern(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`%`, `\%`,
		`_`, `\_`,
	)
	return replacer.Replace(value)
}
