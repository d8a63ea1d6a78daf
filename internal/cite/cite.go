// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite detects citation occurrences and classifies them by
// style, producing a deduplicated inventory.
package cite

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/review-engine/pkg/types"
)

// styleDetector binds a citation style to its pattern and to the rule
// that reduces a raw match to a canonical key. Adding a style means
// adding a row here; the scan loop never changes.
type styleDetector struct {
	style types.CitationStyle
	re    *regexp.Regexp

	// canon maps the submatch groups of one occurrence to a canonical
	// key. Occurrences with equal keys denote the same citation even
	// across styles.
	canon func(groups []string) string
}

var (
	// bracketNumericRe matches numeric citations like [1] or [12].
	bracketNumericRe = regexp.MustCompile(`\[(\d+)\]`)

	// parentheticalRe matches parenthetical author-year citations like
	// (Smith et al., 2020) or (Smith and Jones, 2019).
	parentheticalRe = regexp.MustCompile(`\(([A-Z][a-z]+)(?:\s+et\s+al\.|\s+(?:and|&)\s+[A-Z][a-z]+)?,?\s+(\d{4})\)`)

	// inlineAuthorRe matches inline author-year citations like
	// Smith (2020) or Smith and Jones (2019).
	inlineAuthorRe = regexp.MustCompile(`([A-Z][a-z]+)(?:\s+et\s+al\.|\s+(?:and|&)\s+[A-Z][a-z]+)?\s+\((\d{4})\)`)
)

// detectors lists the pattern families in scan order.
var detectors = []styleDetector{
	{
		style: types.StyleBracketNumeric,
		re:    bracketNumericRe,
		canon: func(groups []string) string {
			// Canonical form is the integer, so [07] and [7] collide.
			n, err := strconv.Atoi(groups[1])
			if err != nil {
				return "num:" + groups[1]
			}
			return fmt.Sprintf("num:%d", n)
		},
	},
	{
		style: types.StyleParenthetical,
		re:    parentheticalRe,
		canon: authorYearKey,
	},
	{
		style: types.StyleInlineAuthor,
		re:    inlineAuthorRe,
		canon: authorYearKey,
	},
}

// authorYearKey builds the canonical key for both author-year styles:
// lowercased first-author token plus year, so "(Smith et al., 2020)"
// and "Smith et al. (2020)" count as one citation.
func authorYearKey(groups []string) string {
	return strings.ToLower(groups[1]) + ":" + groups[2]
}

// Extract scans text with every pattern family and returns the
// citation inventory. Each style's raw match list keeps document order
// and verbatim duplicates; TotalCount is the size of the union of
// canonical keys across all styles. Empty text yields a zero count and
// empty lists, never an error.
func Extract(text string) types.CitationInventory {
	inv := types.CitationInventory{
		ByStyle: make(map[types.CitationStyle][]string, len(detectors)),
	}

	seen := make(map[string]bool)
	for _, d := range detectors {
		matches := d.re.FindAllStringSubmatch(text, -1)
		raw := make([]string, 0, len(matches))
		for _, m := range matches {
			raw = append(raw, m[0])
			seen[d.canon(m)] = true
		}
		inv.ByStyle[d.style] = raw
	}

	inv.TotalCount = len(seen)
	return inv
}
