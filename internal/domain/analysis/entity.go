package analysis

import "time"

// ParsedAnalysis is the structured form of one model reply. Every field is
// optional; nil means the section was not found in the reply.
type ParsedAnalysis struct {
	Rating          *string `json:"rating"`
	Suggestions     *string `json:"suggestions"`
	KeywordGaps     *string `json:"keyword_gaps"`
	ImprovedSummary *string `json:"improved_summary"`
	ImprovedBullets *string `json:"improved_bullets"`
	PriorityFixes   *string `json:"priority_fixes"`
}

// Usable reports whether the parsed reply carries the minimum actionable
// output: a rating, suggestions, and at least one of the two rewrites.
func (p ParsedAnalysis) Usable() bool {
	return p.Rating != nil && p.Suggestions != nil &&
		(p.ImprovedSummary != nil || p.ImprovedBullets != nil)
}

// RecordID identifier type
type RecordID string

// Record is an analysis result stored for auditing and retrieval.
type Record struct {
	ID          RecordID  `json:"id"`
	Filename    string    `json:"filename"`
	Model       string    `json:"model"`
	Rating      string    `json:"rating,omitempty"`
	Result      string    `json:"result"` // parsed sections as JSON
	RawOutput   string    `json:"raw_output"`
	ArtifactURL string    `json:"artifact_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
