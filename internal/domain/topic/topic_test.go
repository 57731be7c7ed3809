package topic

import (
	"strings"
	"testing"
)

func TestClassify_EachGroup(t *testing.T) {
	cases := []struct {
		query string
		want  Topic
	}{
		{"What is the data security policy?", DataSecurity},
		{"Tell me about information security", DataSecurity},
		{"How much vacation do I get?", Vacation},
		{"How do I request PTO?", Vacation},
		{"time off rules", Vacation},
		{"sick leave", Vacation},
		{"confidentiality rules", Confidentiality},
		{"Can I do remote work?", RemoteWork},
		{"work from home policy days", RemoteWork},
		{"What benefits do employees get?", Benefits},
		{"health insurance coverage", Benefits},
		{"Where is the cafeteria?", None},
	}
	for _, tc := range cases {
		if got := Classify(tc.query); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.query, got, tc.want)
		}
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// Both the vacation and the data-security groups match; the
	// data-security group is checked first, so it must win regardless of
	// keyword order in the query text.
	got := Classify("vacation rules in the data security policy")
	if got != DataSecurity {
		t.Errorf("expected DataSecurity (first in priority order), got %s", got)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	if got := Classify("DATA SECURITY"); got != DataSecurity {
		t.Errorf("expected DataSecurity, got %s", got)
	}
}

func TestHeader_KnownTopics(t *testing.T) {
	cases := []struct {
		topic Topic
		want  string
	}{
		{DataSecurity, "**Contoso Data Security Policy Information:**\n\n"},
		{Vacation, "**Contoso Vacation and Time Off Policy:**\n\n"},
		{Confidentiality, "**Contoso Confidentiality Guidelines:**\n\n"},
		{RemoteWork, "**Contoso Remote Work Policy:**\n\n"},
		{Benefits, "**Contoso Employee Benefits:**\n\n"},
	}
	for _, tc := range cases {
		if got := tc.topic.Header("ignored"); got != tc.want {
			t.Errorf("%s.Header() = %q, want %q", tc.topic, got, tc.want)
		}
	}
}

func TestHeader_Default_NamesQuery(t *testing.T) {
	h := None.Header("parking spots")
	if !strings.Contains(h, "'parking spots'") {
		t.Errorf("default header should name the query, got %q", h)
	}
	if !strings.HasSuffix(h, "\n\n") {
		t.Errorf("header should end with a blank line, got %q", h)
	}
}
