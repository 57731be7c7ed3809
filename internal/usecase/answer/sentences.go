package answer

import "strings"

// maxRelevantSentences caps how many matching sentences survive narrowing.
const maxRelevantSentences = 3

// extractRelevantSentences splits content into sentences on the period
// character and keeps those containing any of the keywords, case-insensitively,
// in their original order. At most maxRelevantSentences survive, rejoined with
// ". " and a trailing period. When nothing matches the content is returned
// unchanged.
func extractRelevantSentences(content string, keywords []string) string {
	sentences := strings.Split(content, ".")

	var relevant []string
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				relevant = append(relevant, sentence)
				break
			}
		}
	}

	if len(relevant) == 0 {
		return content
	}
	if len(relevant) > maxRelevantSentences {
		relevant = relevant[:maxRelevantSentences]
	}
	return strings.Join(relevant, ". ") + "."
}
