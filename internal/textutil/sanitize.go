package textutil

import "strings"

// markupArtifact is a markup remnant that shows up in display-text fields of
// the store dump, most often inside supported_languages.
const markupArtifact = "<br>"

// controlReplacer strips the control bytes that would corrupt a
// tab-separated export: CR and LF are removed, TAB becomes a single space.
var controlReplacer = strings.NewReplacer(
	"\r", "",
	"\n", "",
	"\t", " ",
)

// CleanText prepares display text for inclusion in a tab-separated line.
// Carriage returns and linefeeds are removed, tabs are replaced with single
// spaces, and every occurrence of the markup artifact is stripped. Removal of
// the artifact repeats until none remain, so occurrences reconstructed by an
// earlier removal ("<b<br>r>") are also caught. The result is stable:
// CleanText(CleanText(s)) == CleanText(s).
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = controlReplacer.Replace(s)
	for strings.Contains(s, markupArtifact) {
		s = strings.ReplaceAll(s, markupArtifact, "")
	}
	return s
}
