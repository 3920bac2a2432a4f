package analysis

import (
	"regexp"
	"strings"
)

// The model is asked for a fixed set of labelled sections, but the reply is
// free text and the format drifts. Each section is anchored to a header at
// the start of a line and captured up to the next recognized peer header
// (or end of text). A header appearing inside another section's prose is a
// known false-positive the prompt contract accepts.

var (
	ratingRe      = regexp.MustCompile(`(?im)^[ \t]*Rating[ \t]*[:\-]?[ \t]*(\d{1,2})\b`)
	keywordGapsRe = regexp.MustCompile(`(?im)^[ \t]*Keyword[ \t]+Gaps[ \t]*(?:\([^)\n]*\))?[ \t]*[:\-]?[ \t]*(.+)$`)

	suggestionsHdr = regexp.MustCompile(`(?im)^[ \t]*Suggestions[ \t]*:?`)
	summaryHdr     = regexp.MustCompile(`(?im)^[ \t]*Improved[ \t]+Summary[^:\n]*:`)
	bulletsHdr     = regexp.MustCompile(`(?im)^[ \t]*Improved[ \t]+Bullet[ \t]+Examples[ \t]*:?`)
	priorityHdr    = regexp.MustCompile(`(?im)^[ \t]*Priority[ \t]+Fix[ \t]+Order[ \t]*:?`)

	// Boundary patterns: header prefixes only, so qualified variants like
	// "Improved Summary (10/10):" still terminate the preceding section.
	peerSuggestions = regexp.MustCompile(`(?im)^[ \t]*Suggestions`)
	peerSummary     = regexp.MustCompile(`(?im)^[ \t]*Improved[ \t]+Summary`)
	peerBullets     = regexp.MustCompile(`(?im)^[ \t]*Improved[ \t]+Bullet`)
	peerPriority    = regexp.MustCompile(`(?im)^[ \t]*Priority[ \t]+Fix`)
	peerKeywords    = regexp.MustCompile(`(?im)^[ \t]*Keyword[ \t]+Gaps`)

	commaRe    = regexp.MustCompile(`\s*,\s*`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// Parse extracts the labelled sections from a raw model reply. It never
// fails: sections that cannot be located stay nil and the caller decides
// whether the result is usable.
func Parse(raw string) ParsedAnalysis {
	var p ParsedAnalysis

	if m := ratingRe.FindStringSubmatch(raw); m != nil {
		rating := m[1]
		p.Rating = &rating
	}

	p.Suggestions = captureBlock(raw, suggestionsHdr,
		peerKeywords, peerSummary, peerBullets, peerPriority)

	if m := keywordGapsRe.FindStringSubmatch(raw); m != nil {
		kg := strings.TrimSpace(m[1])
		kg = commaRe.ReplaceAllString(kg, ", ")
		if kg != "" {
			p.KeywordGaps = &kg
		}
	}

	p.ImprovedSummary = captureBlock(raw, summaryHdr,
		peerBullets, peerPriority, peerSuggestions, peerKeywords)
	p.ImprovedBullets = captureBlock(raw, bulletsHdr,
		peerPriority, peerSummary, peerSuggestions, peerKeywords)
	p.PriorityFixes = captureBlock(raw, priorityHdr,
		peerBullets, peerSummary, peerSuggestions, peerKeywords)

	return p
}

// captureBlock returns the cleaned span between the first match of header
// and the earliest following peer header, or end of text. Go's RE2 has no
// lookahead, so the boundary is found by scanning the peers explicitly.
// Peers are matched against the full text so line anchoring stays intact.
func captureBlock(raw string, header *regexp.Regexp, peers ...*regexp.Regexp) *string {
	loc := header.FindStringIndex(raw)
	if loc == nil {
		return nil
	}
	start := loc[1]

	end := len(raw)
	for _, peer := range peers {
		for _, p := range peer.FindAllStringIndex(raw, -1) {
			if p[0] >= start {
				if p[0] < end {
					end = p[0]
				}
				break
			}
		}
	}
	return cleanSection(raw[start:end])
}

// cleanSection trims the span and collapses runs of blank lines down to a
// single blank line. An empty result is reported as absent, not "".
func cleanSection(s string) *string {
	s = strings.TrimSpace(s)
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	if s == "" {
		return nil
	}
	return &s
}
