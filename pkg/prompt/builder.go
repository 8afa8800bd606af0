// Package prompt assembles the fixed system and user instructions for
// the industry report, and the evidence context fed into them.
package prompt

import (
	"fmt"
	"strings"

	"market-research-be/internal/constant"
	"market-research-be/pkg/store"
)

const systemTemplate = "You are a professional market research analyst writing a concise industry briefing for a business analyst at a large corporation. " +
	"CRITICAL EVIDENCE RULE: Use ONLY the provided Wikipedia extracts. " +
	"Do not refer to the task, the prompt, or the extracts (avoid phrases like 'the extracts provided' or 'the text does not cover'). " +
	"Write in a decision-relevant, analytical tone (not an encyclopedia style). No bullet points. " +
	"Synthesize information across multiple extracts and ensure every analytical claim is cited."

const userTemplate = `Write a concise and structured industry overview for: %s

ABSOLUTE CONSTRAINTS (Zero Tolerance for Deviation):
- Length: 420-450 words (MUST be < 450).
- Structure: EXACTLY 4 long, analytical paragraphs. No headings. No bullet points.
- Tone: Senior Analyst level. Avoid descriptive "encyclopedia" style; use evaluative language.
- Sources: Use ONLY the Wikipedia extracts below. If a claim is not explicitly supported, omit it.
- Integrated Evidence: geography (e.g., Australia, USA) must only appear as short supporting clauses within the flow of your analysis in Paragraphs 3 and 4.
- No meta-language: Do not mention the extracts, the task, or limitations (e.g., avoid "the extracts provided").

CITATIONS (mandatory):
- Use [Source: Page Title] for key claims.
- Each paragraph must include at least one citation.
- Synthesis: Paragraphs 2, 3, and 4 MUST each blend evidence from 2+ different source pages.
- Do not invent page titles.

PARAGRAPH PLAN (write exactly these 4 paragraphs):
1) Definition & boundary: define what the industry includes (and excludes) as supported by the extracts.
2) Structure & ecosystem: explain key segments/actors AND how they interact (incumbents vs entrants, partnerships), synthesising across sources.
3) Drivers & Dynamics: Analyse the fundamental shifts in demand, delivery, or cost structures. Regional references (e.g., specific markets) should only serve as brief, high-density evidence for these broader trends, not as standalone descriptions.
4) Critically evaluate the structural risks (e.g., regulation, trust). Subordinate any regional examples to the analytical argument, so they illustrate a specific friction point instead of dominating the narrative. The paragraph MUST culminate in a sharp, forward-looking analytical implication that accounts for more than 25%% of the paragraph's length.

STYLE (secondary):
- No generic conclusion (avoid "In conclusion/Overall...").

Wikipedia extracts:
%s`

// SystemPrompt returns the fixed system instructions.
func SystemPrompt() string {
	return systemTemplate
}

// UserPrompt embeds the industry name and evidence context into the
// fixed user instruction template.
func UserPrompt(industry, context string) string {
	return strings.TrimSpace(fmt.Sprintf(userTemplate, industry, context))
}

// BuildContext concatenates documents into the evidence block, in input
// order, with each document's content cut to MaxCharsPerDoc.
func BuildContext(docs []store.Document) string {
	var sb strings.Builder
	for _, doc := range docs {
		content := doc.Content
		if len(content) > constant.MaxCharsPerDoc {
			content = content[:constant.MaxCharsPerDoc]
		}
		sb.WriteString("Source: ")
		sb.WriteString(doc.SourceURL)
		sb.WriteString("\nContent: ")
		sb.WriteString(content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
