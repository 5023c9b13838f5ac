package textutil_test

import (
	"strings"
	"testing"

	"steamtab/internal/textutil"
)

func TestCleanTextRemovesControlBytes(t *testing.T) {
	got := textutil.CleanText("English\rFrench\nGerman\tItalian")
	if got != "EnglishFrenchGerman Italian" {
		t.Fatalf("unexpected result: %q", got)
	}
	if strings.ContainsAny(got, "\r\n\t") {
		t.Fatalf("control bytes survived: %q", got)
	}
}

func TestCleanTextRemovesMarkupArtifact(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"single", "English<br>French", "EnglishFrench"},
		{"repeated", "<br><br><br>English<br>", "English"},
		{"reconstructed", "<b<br>r>", ""},
		{"nested twice", "<b<b<br>r>r>", ""},
		{"absent", "English, French", "English, French"},
		{"artifact only", "<br>", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textutil.CleanText(tc.input); got != tc.want {
				t.Fatalf("CleanText(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCleanTextPassesCleanInputThrough(t *testing.T) {
	input := "English<strong>*</strong>, French, German"
	if got := textutil.CleanText(input); got != input {
		t.Fatalf("clean input was altered: %q", got)
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"tabs\tand\r\nbreaks<br>mixed",
		"<b<br>r><b<br>r>",
	}
	for _, input := range inputs {
		once := textutil.CleanText(input)
		twice := textutil.CleanText(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestCleanTextEmptyForAbsentValue(t *testing.T) {
	if got := textutil.CleanText(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
