package domain

import "strings"

// NoResultsMessage is returned verbatim when the search yields no hits.
const NoResultsMessage = "No relevant information found in the Contoso Handbook."

// answerErrorPrefix prefixes the rendered form of any answering failure.
const answerErrorPrefix = "Error querying the Contoso Handbook: "

// Answer carries the parts of a handbook answer prior to rendering.
// A no-results answer has only Body set.
type Answer struct {
	Header  string
	Body    string
	Sources []string
}

// Render produces the final response text: header, body, and a Sources
// section when any sources are attached.
func (a Answer) Render() string {
	var b strings.Builder
	b.WriteString(a.Header)
	b.WriteString(a.Body)
	if len(a.Sources) > 0 {
		b.WriteString("\n\n**Sources:**\n")
		for _, s := range a.Sources {
			b.WriteString("- ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderAnswerError converts an answering failure into the human-readable
// string reported to callers. The answering flow never surfaces a raw error
// past the presentation boundary.
func RenderAnswerError(err error) string {
	return answerErrorPrefix + err.Error()
}
