// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment partitions raw paper text into the six canonical
// sections using ordered heading-pattern detectors.
package segment

import (
	"strings"

	"github.com/pdiddy/review-engine/pkg/types"
)

// headingMaxLen bounds how long a line may be and still count as a
// heading. Body sentences that happen to open with a section word
// ("Results show that ...") exceed this and are not treated as headings.
const headingMaxLen = 60

// detector binds a section kind to its ordered heading synonyms. Adding
// a section kind means adding a row here; the scan loop never changes.
type detector struct {
	kind     types.SectionKind
	patterns []string
}

// detectors lists the heading synonym sets per section kind, in
// document order. Patterns are lowercase prefixes matched against the
// normalized heading text, so "method" covers "Methods" and
// "Methodology".
var detectors = []detector{
	{types.SectionAbstract, []string{"abstract", "summary"}},
	{types.SectionIntroduction, []string{"introduction", "background"}},
	{types.SectionMethodology, []string{"method", "methodology", "approach"}},
	{types.SectionResults, []string{"result", "experiment", "evaluation", "finding"}},
	{types.SectionConclusion, []string{"conclusion", "future work", "discussion"}},
	{types.SectionReferences, []string{"reference", "bibliography"}},
}

// headingHit records a matched heading line during the scan.
type headingHit struct {
	line int
	kind types.SectionKind
}

// Segment partitions text into the canonical section map. Every key is
// always present; a kind with no matching heading holds the empty
// string. The first matching heading wins per kind, and a section's
// body runs from its heading to the next heading of any kind. When no
// heading matches anywhere, the whole text is assigned to the abstract
// so downstream consumers always have content to summarize. Segment
// never fails.
func Segment(text string) types.SectionMap {
	sections := types.NewSectionMap()

	lines := strings.Split(text, "\n")

	var hits []headingHit
	for i, line := range lines {
		if kind, ok := matchHeading(line); ok {
			hits = append(hits, headingHit{line: i, kind: kind})
		}
	}

	if len(hits) == 0 {
		sections[types.SectionAbstract] = strings.TrimSpace(text)
		return sections
	}

	claimed := make(map[types.SectionKind]bool, len(types.SectionKinds))
	for n, hit := range hits {
		if claimed[hit.kind] {
			continue
		}
		claimed[hit.kind] = true

		end := len(lines)
		if n+1 < len(hits) {
			end = hits[n+1].line
		}
		body := strings.Join(lines[hit.line+1:end], "\n")
		sections[hit.kind] = strings.TrimSpace(body)
	}

	return sections
}

// matchHeading reports whether a line is a section heading and for
// which kind. The line is normalized (markdown markers, numbering, and
// trailing colons stripped, lowercased) and compared against each
// detector's prefixes in order.
func matchHeading(line string) (types.SectionKind, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > headingMaxLen {
		return "", false
	}

	norm := normalizeHeading(trimmed)
	if norm == "" {
		return "", false
	}

	for _, d := range detectors {
		for _, p := range d.patterns {
			if strings.HasPrefix(norm, p) {
				return d.kind, true
			}
		}
	}
	return "", false
}

// normalizeHeading lowercases a candidate line and strips markdown
// heading markers, leading section numbering ("1.", "2.1", "IV."), and
// a trailing colon.
func normalizeHeading(line string) string {
	s := strings.TrimLeft(line, "#")
	s = strings.TrimSpace(s)

	// Strip a leading numbering token such as "1.", "2.1", or "IV.".
	if fields := strings.Fields(s); len(fields) > 1 && isNumbering(fields[0]) {
		s = strings.Join(fields[1:], " ")
	}

	s = strings.TrimSuffix(s, ":")
	return strings.ToLower(strings.TrimSpace(s))
}

// isNumbering reports whether a token looks like section numbering:
// digits, dots, or roman numerals, ending with an optional dot.
func isNumbering(token string) bool {
	token = strings.TrimSuffix(token, ".")
	if token == "" {
		return false
	}
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
		case strings.ContainsRune("IVXivx", r):
		default:
			return false
		}
	}
	return true
}

// Summary returns the first n sentence units of the abstract section,
// falling back to the raw text when the abstract is empty. An empty
// document yields an empty summary.
func Summary(sections types.SectionMap, raw string, n int) string {
	source := sections[types.SectionAbstract]
	if source == "" {
		source = raw
	}
	source = strings.TrimSpace(source)
	if source == "" || n <= 0 {
		return ""
	}

	sentences := splitSentences(source)
	if len(sentences) > n {
		sentences = sentences[:n]
	}
	return strings.Join(sentences, " ")
}

// splitSentences breaks text into sentence units on terminal
// punctuation, keeping the punctuation with its sentence and dropping
// empty fragments. Text without terminal punctuation is one sentence.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()

	return sentences
}
