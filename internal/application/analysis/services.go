package analysis

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bryanwahyu/resume-insight/internal/application"
	domain "github.com/bryanwahyu/resume-insight/internal/domain/analysis"
)

// Service orchestrates one resume analysis: document text extraction,
// prompt building, the completion call, parsing and the completeness
// check. Repo and Artifacts are optional; when set, results are persisted
// best-effort and a failure there never fails the request.
type Service struct {
	Extractor domain.DocumentExtractor
	Completer domain.Completer
	Repo      domain.Repository
	Artifacts domain.ArtifactStore
	Clock     application.Clock
	Model     string
	Log       zerolog.Logger
}

// Report is the response shape of the upload endpoint. The ai_example
// field mirrors what older frontends expect: the bullet rewrites when
// present, the summary rewrite otherwise.
type Report struct {
	AIRating               *string `json:"ai_rating"`
	AISuggestions          *string `json:"ai_suggestions"`
	AIExample              *string `json:"ai_example"`
	KeywordGaps            *string `json:"keyword_gaps"`
	ImprovedSummary        *string `json:"improved_summary"`
	ImprovedBulletExamples *string `json:"improved_bullet_examples"`
	PriorityFixOrder       *string `json:"priority_fix_order"`
	RawAIOutput            string  `json:"raw_ai_output"`
}

// AnalyzeUpload runs the full pipeline on an uploaded document.
func (s *Service) AnalyzeUpload(ctx context.Context, filename string, data []byte) (*Report, error) {
	text, err := s.Extractor.Text(filename, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyDocument
	}

	raw, err := s.Completer.Complete(ctx, domain.AnalysisPrompt(text))
	if err != nil {
		return nil, err
	}

	parsed := domain.Parse(raw)
	if !parsed.Usable() {
		return nil, &domain.IncompleteError{Raw: raw, Partial: parsed}
	}

	s.persist(ctx, filename, data, raw, parsed)

	example := parsed.ImprovedBullets
	if example == nil {
		example = parsed.ImprovedSummary
	}
	return &Report{
		AIRating:               parsed.Rating,
		AISuggestions:          parsed.Suggestions,
		AIExample:              example,
		KeywordGaps:            parsed.KeywordGaps,
		ImprovedSummary:        parsed.ImprovedSummary,
		ImprovedBulletExamples: parsed.ImprovedBullets,
		PriorityFixOrder:       parsed.PriorityFixes,
		RawAIOutput:            raw,
	}, nil
}

// AnalyzeText runs the lightweight free-form coaching call on plain text.
// The reply is returned verbatim.
func (s *Service) AnalyzeText(ctx context.Context, resumeText string) (string, error) {
	return s.Completer.Complete(ctx, domain.CoachPrompt(resumeText))
}

// List returns stored analyses, newest first. Without a repository it
// returns an empty page.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]*domain.Record, error) {
	if s.Repo == nil {
		return []*domain.Record{}, nil
	}
	return s.Repo.Paginate(ctx, page, pageSize)
}

func (s *Service) persist(ctx context.Context, filename string, data []byte, raw string, parsed domain.ParsedAnalysis) {
	if s.Repo == nil && s.Artifacts == nil {
		return
	}

	id := uuid.NewString()
	var artifactURL string
	if s.Artifacts != nil {
		ext := strings.ToLower(filepath.Ext(filename))
		url, err := s.Artifacts.Put(ctx, id+ext, data, contentTypeFor(ext))
		if err != nil {
			s.Log.Warn().Err(err).Str("filename", filename).Msg("failed to store resume artifact")
		} else {
			artifactURL = url
		}
	}

	if s.Repo != nil {
		result, _ := json.Marshal(parsed)
		rec := &domain.Record{
			ID:          domain.RecordID(id),
			Filename:    filename,
			Model:       s.Model,
			Result:      string(result),
			RawOutput:   raw,
			ArtifactURL: artifactURL,
			CreatedAt:   s.Clock.Now(),
		}
		if parsed.Rating != nil {
			rec.Rating = *parsed.Rating
		}
		if err := s.Repo.Save(ctx, rec); err != nil {
			s.Log.Warn().Err(err).Str("id", id).Msg("failed to save analysis record")
		}
	}
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
