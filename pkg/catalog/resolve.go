package catalog

import "strings"

// Resolve returns every type whose description, or any of whose attribute
// descriptions, contains at least one of the given keywords. Keywords are
// comma-separated; each is trimmed and matched case-insensitively as a
// plain substring. Matching is boolean per type: a type appears at most
// once, in declaration order, with no ranking. Empty or whitespace-only
// input yields an empty result.
func (c *Catalog) Resolve(keywords string) []TypeEntry {
	matches := make([]TypeEntry, 0)

	tokens := splitKeywords(keywords)
	if len(tokens) == 0 {
		return matches
	}

	seen := make(map[string]struct{})
	for _, entry := range c.entries {
		if _, ok := seen[entry.Name]; ok {
			continue
		}
		if containsAny(strings.ToLower(entry.Description), tokens) {
			matches = append(matches, entry)
			seen[entry.Name] = struct{}{}
			continue
		}
		for _, attr := range entry.Attributes {
			if containsAny(strings.ToLower(attr.Description), tokens) {
				matches = append(matches, entry)
				seen[entry.Name] = struct{}{}
				break
			}
		}
	}

	return matches
}

// splitKeywords breaks a comma-separated keyword string into lower-cased,
// trimmed tokens, dropping blanks.
func splitKeywords(keywords string) []string {
	var tokens []string
	for _, part := range strings.Split(keywords, ",") {
		if token := strings.ToLower(strings.TrimSpace(part)); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func containsAny(description string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(description, token) {
			return true
		}
	}
	return false
}
