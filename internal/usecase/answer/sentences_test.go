package answer

import "testing"

func TestExtractRelevantSentences_KeepsMatchesInOrder(t *testing.T) {
	content := "Employees get 15 days PTO. Submit requests via the portal. Unrelated sentence."
	got := extractRelevantSentences(content, []string{"days", "request"})
	want := "Employees get 15 days PTO. Submit requests via the portal."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractRelevantSentences_NoMatchReturnsOriginal(t *testing.T) {
	content := "No matching keywords here."
	got := extractRelevantSentences(content, []string{"zzz"})
	if got != content {
		t.Errorf("got %q, want original content unchanged", got)
	}
}

func TestExtractRelevantSentences_CapsAtThree(t *testing.T) {
	content := "One day here. Two days there. Three days total. Four days maybe. Five days never."
	got := extractRelevantSentences(content, []string{"day"})
	want := "One day here. Two days there. Three days total."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractRelevantSentences_CaseInsensitive(t *testing.T) {
	got := extractRelevantSentences("PASSWORDS must rotate. Other text.", []string{"password"})
	want := "PASSWORDS must rotate."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractRelevantSentences_SingleMatchGetsTrailingPeriod(t *testing.T) {
	got := extractRelevantSentences("Badge access is logged. Lunch is at noon.", []string{"access"})
	want := "Badge access is logged."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
