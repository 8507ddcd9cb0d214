package respond

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"talent-search-be/internal/entity"
	"talent-search-be/internal/pkg/logger"
	"talent-search-be/pkg/llm"
)

// Generator produces the narrative parts of a response: candidate
// descriptions, interview outlines, comparisons and advice. Every method
// attempts one reasoning-service call and falls back to a deterministic
// rendering when the service fails, so a response is always produced.
type Generator struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, log logger.ILogger) *Generator {
	return &Generator{
		provider: provider,
		logger:   log,
	}
}

func (g *Generator) Describe(ctx context.Context, candidate *entity.Candidate) string {
	prompt := fmt.Sprintf(
		"Write a short professional summary (3-4 sentences) of this candidate based on their assessment results.\n\n%s",
		renderCandidate(candidate),
	)
	if text, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(0.5)); err == nil && strings.TrimSpace(text) != "" {
		return text
	} else if err != nil {
		g.logger.Warn("Respond", "describe generation failed, using fallback", map[string]interface{}{"error": err.Error()})
	}
	return fallbackDescribe(candidate)
}

func (g *Generator) InterviewOutline(ctx context.Context, candidate *entity.Candidate) string {
	prompt := fmt.Sprintf(
		"Prepare 5 targeted interview questions for this candidate. Probe their weaker areas and verify their strong ones.\n\n%s",
		renderCandidate(candidate),
	)
	if text, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(0.6)); err == nil && strings.TrimSpace(text) != "" {
		return text
	} else if err != nil {
		g.logger.Warn("Respond", "interview generation failed, using fallback", map[string]interface{}{"error": err.Error()})
	}
	return fallbackInterview(candidate)
}

func (g *Generator) Compare(ctx context.Context, candidates []*entity.Candidate) string {
	if len(candidates) == 0 {
		return "There are no candidates to compare yet. Run a search first."
	}
	var sb strings.Builder
	sb.WriteString("Compare these candidates on their assessed traits and recommend one, with reasons.\n")
	for _, c := range candidates {
		sb.WriteString("\n")
		sb.WriteString(renderCandidate(c))
	}
	if text, err := g.provider.Generate(ctx, sb.String(), llm.WithTemperature(0.5)); err == nil && strings.TrimSpace(text) != "" {
		return text
	} else if err != nil {
		g.logger.Warn("Respond", "compare generation failed, using fallback", map[string]interface{}{"error": err.Error()})
	}
	return fallbackCompare(candidates)
}

func (g *Generator) Advice(ctx context.Context, utterance string) string {
	prompt := fmt.Sprintf(
		"You are a hiring advisor working with psychometric assessment data. Answer briefly and concretely.\n\nQuestion: %s",
		utterance,
	)
	if text, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(0.7)); err == nil && strings.TrimSpace(text) != "" {
		return text
	} else if err != nil {
		g.logger.Warn("Respond", "advice generation failed, using fallback", map[string]interface{}{"error": err.Error()})
	}
	return "I can help you search candidates by traits, compare them, or prepare interviews. Try describing the qualities you are hiring for."
}

// --- Deterministic fallbacks ---

func fallbackDescribe(candidate *entity.Candidate) string {
	if candidate == nil {
		return "No candidate is in focus right now."
	}
	top := topTraits(candidate, 3)
	if len(top) == 0 {
		return fmt.Sprintf("%s has not completed any trait assessments yet.", candidate.Name)
	}
	parts := make([]string, 0, len(top))
	for _, t := range top {
		parts = append(parts, fmt.Sprintf("%s (%.0f)", t.name, t.score))
	}
	return fmt.Sprintf("%s has completed %d trait assessments. Strongest areas: %s.",
		candidate.Name, candidate.AssessedTraitCount(), strings.Join(parts, ", "))
}

func fallbackInterview(candidate *entity.Candidate) string {
	if candidate == nil {
		return "No candidate is in focus right now."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Interview outline for %s:\n", candidate.Name)
	for i, t := range topTraits(candidate, 3) {
		fmt.Fprintf(&sb, "%d. Ask for a concrete example demonstrating %s (scored %.0f).\n", i+1, t.name, t.score)
	}
	sb.WriteString("Also cover motivation, team fit and expectations.")
	return sb.String()
}

func fallbackCompare(candidates []*entity.Candidate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Comparison of %d candidates by assessment coverage:\n", len(candidates))
	for _, c := range candidates {
		fmt.Fprintf(&sb, "- %s: %d completed assessments\n", c.Name, c.AssessedTraitCount())
	}
	return sb.String()
}

type namedScore struct {
	name  string
	score float64
}

func topTraits(candidate *entity.Candidate, n int) []namedScore {
	scores := make([]namedScore, 0, len(candidate.TraitResults))
	for key, result := range candidate.TraitResults {
		name := result.DisplayName
		if name == "" {
			name = key
		}
		scores = append(scores, namedScore{name: name, score: result.Score})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].name < scores[j].name
	})
	if len(scores) > n {
		scores = scores[:n]
	}
	return scores
}

func renderCandidate(candidate *entity.Candidate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Candidate: %s\n", candidate.Name)
	for _, t := range topTraits(candidate, 10) {
		fmt.Fprintf(&sb, "- %s: %.0f/100\n", t.name, t.score)
	}
	return sb.String()
}
