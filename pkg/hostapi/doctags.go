package hostapi

import "strings"

// ParseDocTag scans a raw doc-comment block for the first occurrence of
// `@tag value` and returns the trimmed value. It is deliberately tolerant:
// doc comments are free text, and a missing or malformed tag is not an
// error, only the absence of a signal (spec §4.8, §7).
func ParseDocTag(doc string, tag string) (string, bool) {
	marker := "@" + tag
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, marker) {
			continue
		}
		rest := strings.TrimSpace(line[len(marker):])
		return rest, true
	}
	return "", false
}
