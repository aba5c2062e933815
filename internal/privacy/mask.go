package privacy

import "regexp"

// tokenRegex matches runs of 10 or more alphanumeric characters — long enough
// to be an API key fragment, short enough to catch keys split by dashes.
var tokenRegex = regexp.MustCompile(`[A-Za-z0-9]{10,}`)

// MaskSecret redacts token-like substrings so that upstream error messages
// and diagnostics can be logged without leaking credentials. Each run of 10+
// alphanumeric characters is replaced by its first three and last three
// characters around a "***" marker. Short strings pass through unchanged.
func MaskSecret(text string) string {
	if text == "" {
		return text
	}
	return tokenRegex.ReplaceAllStringFunc(text, func(m string) string {
		return m[:3] + "***" + m[len(m)-3:]
	})
}
