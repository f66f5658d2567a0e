package engine

import "strings"

var slotMarkers = []string{"breakfast", "lunch", "dinner", "snack", "snacks", "meal"}

var tokenSeparators = []string{"|", "/", ";", "&", "+"}

const tokenTrimCutset = " ,.;:-_()[]{}"

// ParseMealPreference extracts lowercase search tokens from a free-text meal
// preference like "Breakfast: eggs & oats". Slot markers are stripped,
// common separators become commas, and only tokens of three or more
// characters survive, deduplicated in first-seen order. When nothing
// tokenizes but the text is non-empty, it degrades to a plain comma split.
func ParseMealPreference(text string) []string {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil
	}

	s := strings.ToLower(raw)
	for _, marker := range slotMarkers {
		s = strings.ReplaceAll(s, marker, " ")
	}
	for _, sep := range tokenSeparators {
		s = strings.ReplaceAll(s, sep, ",")
	}

	seen := make(map[string]bool)
	var tokens []string
	for _, chunk := range strings.Split(s, ",") {
		for _, word := range strings.Fields(chunk) {
			t := strings.Trim(word, tokenTrimCutset)
			if len(t) < 3 || seen[t] {
				continue
			}
			seen[t] = true
			tokens = append(tokens, t)
		}
	}
	if len(tokens) > 0 {
		return tokens
	}

	for _, part := range strings.Split(strings.ToLower(raw), ",") {
		if t := strings.TrimSpace(part); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
