package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReply = `
Rating: 8
Suggestions:
- Add metrics to bullets.
- Clarify scope and impact.
Keyword Gaps (comma-separated): Python, Flask, CI/CD
Improved Summary (10/10):
Experienced engineer with measurable impact.
Improved Bullet Examples:
- Increased throughput by 25%.
Priority Fix Order:
1. Add metrics
2. Tighten summary
`

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func TestParseWellFormedReply(t *testing.T) {
	p := Parse(sampleReply)

	require.NotNil(t, p.Rating)
	assert.Equal(t, "8", *p.Rating)
	assert.Contains(t, str(p.Suggestions), "Add metrics")
	assert.Equal(t, "Python, Flask, CI/CD", str(p.KeywordGaps))
	assert.Contains(t, str(p.ImprovedSummary), "Experienced engineer")
	assert.Contains(t, str(p.ImprovedBullets), "Increased throughput")
	assert.Contains(t, str(p.PriorityFixes), "Add metrics")
	assert.True(t, p.Usable())
}

func TestParseSectionBoundaries(t *testing.T) {
	p := Parse(sampleReply)

	// Each span stops at the next recognized header.
	assert.NotContains(t, str(p.Suggestions), "Keyword Gaps")
	assert.NotContains(t, str(p.ImprovedSummary), "Improved Bullet")
	assert.NotContains(t, str(p.ImprovedBullets), "Priority Fix")
	assert.Contains(t, str(p.PriorityFixes), "Tighten summary")
}

func TestParseIsIdempotent(t *testing.T) {
	first := Parse(sampleReply)
	second := Parse(sampleReply)
	assert.Equal(t, first, second)
}

func TestParseKeywordGapNormalization(t *testing.T) {
	p := Parse("Keyword Gaps: Python,Flask ,  CI/CD")
	assert.Equal(t, "Python, Flask, CI/CD", str(p.KeywordGaps))
}

func TestParseMissingSectionStaysAbsent(t *testing.T) {
	reply := `Rating: 7
Suggestions:
- Quantify results.
Improved Summary:
Driven engineer.
`
	p := Parse(reply)

	assert.Nil(t, p.KeywordGaps)
	assert.Nil(t, p.ImprovedBullets)
	assert.Nil(t, p.PriorityFixes)
	assert.Equal(t, "7", str(p.Rating))
	assert.Equal(t, "- Quantify results.", str(p.Suggestions))
	assert.Equal(t, "Driven engineer.", str(p.ImprovedSummary))
}

func TestParseDuplicateHeaderFirstWins(t *testing.T) {
	reply := `Rating: 6
Rating: 9
Suggestions:
first block
Suggestions:
second block
`
	p := Parse(reply)
	assert.Equal(t, "6", str(p.Rating))
	assert.Contains(t, str(p.Suggestions), "first block")
}

func TestParseRatingVariants(t *testing.T) {
	assert.Equal(t, "10", str(Parse("Rating - 10").Rating))
	assert.Equal(t, "9", str(Parse("  rating: 9").Rating))
	assert.Nil(t, Parse("Rating: excellent").Rating)
}

func TestParseCollapsesBlankLineRuns(t *testing.T) {
	reply := "Suggestions:\nline one\n\n\n\n\nline two\nKeyword Gaps: Go"
	p := Parse(reply)
	assert.Equal(t, "line one\n\nline two", str(p.Suggestions))
}

func TestParseEmptySectionIsAbsent(t *testing.T) {
	p := Parse("Suggestions:\nKeyword Gaps: Go")
	assert.Nil(t, p.Suggestions)
	assert.Equal(t, "Go", str(p.KeywordGaps))
}

func TestParseToleratesReordering(t *testing.T) {
	reply := `Improved Bullet Examples:
- Cut latency by 40%.
Suggestions:
- Lead with outcomes.
Rating: 8
`
	p := Parse(reply)
	assert.Equal(t, "8", str(p.Rating))
	// Rating is not a peer boundary, so a trailing Suggestions span keeps
	// the rating line. That matches the documented contract.
	assert.Contains(t, str(p.Suggestions), "- Lead with outcomes.")
	assert.Equal(t, "- Cut latency by 40%.", str(p.ImprovedBullets))
}

func TestParseNeverMutatesInput(t *testing.T) {
	raw := sampleReply
	_ = Parse(raw)
	assert.Equal(t, sampleReply, raw)
}

func TestUsable(t *testing.T) {
	rating, sugg, bullets := "8", "x", "y"

	p := ParsedAnalysis{Rating: &rating, Suggestions: &sugg}
	assert.False(t, p.Usable(), "needs at least one rewrite section")

	p.ImprovedBullets = &bullets
	assert.True(t, p.Usable())

	p.Rating = nil
	assert.False(t, p.Usable(), "rating is mandatory")

	p.Rating = &rating
	p.Suggestions = nil
	assert.False(t, p.Usable(), "suggestions are mandatory")
}
