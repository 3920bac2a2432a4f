package analysis

import "fmt"

// The section headers requested here are the anchors Parse searches for.
// Renaming a header in the template without updating the extractor (or the
// other way round) breaks extraction silently, so both live in this package.

// AnalysisPrompt builds the instruction for a full structured resume review.
func AnalysisPrompt(resumeText string) string {
	return fmt.Sprintf(
		"You are a senior technical resume optimization expert. "+
			"Provide a rigorous, detailed analysis with actionable, specific improvements. "+
			"Use strong, metric-focused rewrites. Avoid generic advice. Do NOT invent experience; only reshape what's implied. "+
			"Return content in exactly these sections (no extra text before or after):\n"+
			"Rating: <1-10 overall score>\n"+
			"Suggestions:\n"+
			"- <High-impact item 1 with concrete example / rewrite>\n"+
			"- <High-impact item 2 ...> (5-12 bullets total, prioritize quantified impact, clarity, ATS alignment)\n"+
			"Keyword Gaps (comma-separated): <missing or weak keywords>\n"+
			"Improved Summary (10/10):\n<rewritten professional summary>\n"+
			"Improved Bullet Examples:\n"+
			"<2-4 transformed bullet rewrites showing before -> after OR just the improved versions>\n"+
			"Priority Fix Order:\n1. <Most critical fix>\n2. <Second>\n3. <Third> (limit to top 5)\n"+
			"\nResume:\n%s\n"+
			"Ensure each bullet is specific, includes measurable impact where possible "+
			"(%%, time saved, scale, users, revenue, performance changes).",
		resumeText,
	)
}

// CoachPrompt builds the lighter free-form instruction used by the plain
// text analyze endpoint. Its reply is returned verbatim, not parsed.
func CoachPrompt(resumeText string) string {
	return fmt.Sprintf(
		"You are an expert resume coach. Provide concise, actionable improvement suggestions (bullet list) and then a polished summary rewrite.\n"+
			"Resume text:\n%s",
		resumeText,
	)
}
