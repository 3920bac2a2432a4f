package analysis

import (
	"errors"
	"fmt"
)

// ErrNotConfigured indicates the completion provider has no credential.
var ErrNotConfigured = errors.New("groq api key is not configured on the server")

// ErrProviderExhausted indicates the completion call failed across every
// candidate model and retry attempt.
var ErrProviderExhausted = errors.New("ai request failed")

// ErrEmptyDocument indicates document text extraction produced nothing usable.
var ErrEmptyDocument = errors.New("could not extract text from resume")

// IncompleteError is returned when the parsed reply fails the completeness
// check. It carries the raw model output and the partial result so the
// caller can surface both for diagnosis instead of discarding the reply.
type IncompleteError struct {
	Raw     string
	Partial ParsedAnalysis
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("incomplete analysis: rating=%v suggestions=%v summary=%v bullets=%v",
		e.Partial.Rating != nil, e.Partial.Suggestions != nil,
		e.Partial.ImprovedSummary != nil, e.Partial.ImprovedBullets != nil)
}
