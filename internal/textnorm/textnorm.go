// Package textnorm cleans the HTML-origin description text attached to
// archive collection records.
package textnorm

import (
	"regexp"
	"strings"

	"github.com/k3a/html2text"

	"github.com/crdc-tools/studylink/internal/corrections"
)

var (
	doubleNewline = regexp.MustCompile(`\n\n`)
	bracketed     = regexp.MustCompile(`\[[^\]]*\]`)
)

// Description converts a raw description to plain text with no forced
// line wrapping. When the study carries a description correction, the
// text additionally gets double newlines and bracketed annotations
// collapsed to single spaces, stray spaces before periods removed, and
// the correction's trailing suffix token stripped.
func Description(rawHTML, designation string) string {
	text := html2text.HTML2TextWithOptions(rawHTML, html2text.WithUnixLineBreaks())

	fix, ok := corrections.For(designation)
	if !ok || !fix.CleanDescription {
		return text
	}

	text = doubleNewline.ReplaceAllString(text, " ")
	text = bracketed.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, " .", ".")
	text = strings.TrimSpace(text)
	if fix.TrailingSuffix != "" {
		text = strings.TrimSpace(strings.TrimSuffix(text, fix.TrailingSuffix))
	}

	return text
}
