// Package topic classifies handbook queries into fixed subject areas.
package topic

import (
	"fmt"
	"strings"
)

// Topic identifies a handbook subject area.
type Topic int

const (
	// None means no topic group matched the query.
	None Topic = iota
	// DataSecurity covers data and information security policy queries.
	DataSecurity
	// Vacation covers vacation, PTO and leave queries.
	Vacation
	// Confidentiality covers confidentiality guideline queries.
	Confidentiality
	// RemoteWork covers remote and home-office queries.
	RemoteWork
	// Benefits covers benefits, health and insurance queries.
	Benefits
)

// classifiers are evaluated in order; the first group with a keyword
// contained in the query wins. The order is part of the contract.
var classifiers = []struct {
	topic    Topic
	keywords []string
}{
	{DataSecurity, []string{"data security", "security policy", "information security"}},
	{Vacation, []string{"vacation", "pto", "time off", "leave"}},
	{Confidentiality, []string{"confidential", "confidentiality"}},
	{RemoteWork, []string{"remote work", "work from home", "telework"}},
	{Benefits, []string{"benefits", "health", "insurance"}},
}

// Classify returns the first topic whose keyword group matches the
// lowercased query, or None.
func Classify(query string) Topic {
	q := strings.ToLower(query)
	for _, c := range classifiers {
		for _, kw := range c.keywords {
			if strings.Contains(q, kw) {
				return c.topic
			}
		}
	}
	return None
}

// Header returns the response header for the topic. For None the header
// names the query itself.
func (t Topic) Header(query string) string {
	switch t {
	case DataSecurity:
		return "**Contoso Data Security Policy Information:**\n\n"
	case Vacation:
		return "**Contoso Vacation and Time Off Policy:**\n\n"
	case Confidentiality:
		return "**Contoso Confidentiality Guidelines:**\n\n"
	case RemoteWork:
		return "**Contoso Remote Work Policy:**\n\n"
	case Benefits:
		return "**Contoso Employee Benefits:**\n\n"
	default:
		return fmt.Sprintf("**Information from Contoso Employee Handbook regarding '%s':**\n\n", query)
	}
}

// String returns the topic name for logs.
func (t Topic) String() string {
	switch t {
	case DataSecurity:
		return "data_security"
	case Vacation:
		return "vacation"
	case Confidentiality:
		return "confidentiality"
	case RemoteWork:
		return "remote_work"
	case Benefits:
		return "benefits"
	default:
		return "none"
	}
}
