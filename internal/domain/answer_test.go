package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestAnswerRender_WithSources(t *testing.T) {
	a := Answer{
		Header:  "**Contoso Vacation and Time Off Policy:**\n\n",
		Body:    "Employees accrue 15 days per year.",
		Sources: []string{"Vacation Policy", "https://contoso.example/handbook#pto"},
	}
	got := a.Render()
	want := "**Contoso Vacation and Time Off Policy:**\n\n" +
		"Employees accrue 15 days per year." +
		"\n\n**Sources:**\n- Vacation Policy\n- https://contoso.example/handbook#pto\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestAnswerRender_NoSources(t *testing.T) {
	a := Answer{Body: NoResultsMessage}
	if got := a.Render(); got != NoResultsMessage {
		t.Errorf("Render() = %q, want bare body", got)
	}
	if strings.Contains(a.Render(), "Sources") {
		t.Error("no-results answer must not carry a Sources section")
	}
}

func TestRenderAnswerError(t *testing.T) {
	got := RenderAnswerError(errors.New("boom"))
	if got != "Error querying the Contoso Handbook: boom" {
		t.Errorf("unexpected rendering: %q", got)
	}
}
