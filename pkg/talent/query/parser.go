package query

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"talent-search-be/internal/pkg/logger"
	"talent-search-be/pkg/llm"
	"talent-search-be/pkg/retry"
	"talent-search-be/pkg/talent/registry"
)

// MatchCriterion is one (trait, threshold, weight) requirement extracted
// from an utterance. MinScore is nil when the trait is relevant but
// unconstrained.
type MatchCriterion struct {
	TraitKey    string
	DisplayName string
	MinScore    *float64
	Weight      float64
}

// ParsedQuery is the structured understanding of one utterance. An empty
// criteria list with a non-empty Clarification means the parser could not
// extract anything usable and the caller should ask the user to rephrase.
type ParsedQuery struct {
	Criteria      []MatchCriterion
	Summary       string
	Clarification string
	CandidateName string
	Limit         int
}

func (q *ParsedQuery) NeedsClarification() bool {
	return len(q.Criteria) == 0 && q.CandidateName == "" && q.Clarification != ""
}

func (q *ParsedQuery) TraitKeys() []string {
	keys := make([]string, 0, len(q.Criteria))
	for _, c := range q.Criteria {
		keys = append(keys, c.TraitKey)
	}
	return keys
}

// rawParsedQuery is the schema the reasoning service must emit. Anything
// that does not decode into it is treated as malformed, never trusted.
type rawParsedQuery struct {
	Traits []struct {
		Trait    string   `json:"trait"`
		MinScore *float64 `json:"min_score"`
		Weight   *float64 `json:"weight"`
	} `json:"traits"`
	CandidateName string `json:"candidate_name"`
	Summary       string `json:"summary"`
	Limit         int    `json:"limit"`
}

// Parser turns one utterance plus conversation state into a ParsedQuery
// via a single reasoning-service call. It never returns an error:
// unreachable backends and malformed output degrade to a clarification
// request instead.
type Parser struct {
	provider    llm.LLMProvider
	registry    *registry.Registry
	logger      logger.ILogger
	maxAttempts int
	baseDelay   time.Duration
}

func NewParser(provider llm.LLMProvider, reg *registry.Registry, log logger.ILogger, maxAttempts int, baseDelay time.Duration) *Parser {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if baseDelay <= 0 {
		baseDelay = 2 * time.Second
	}
	return &Parser{
		provider:    provider,
		registry:    reg,
		logger:      log,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

const clarificationFallback = "I could not map your request to known traits. Try naming specific qualities, e.g. \"strong communication and leadership, at least 70\"."

func (p *Parser) Parse(ctx context.Context, utterance, contextSummary string) *ParsedQuery {
	prompt := p.buildPrompt(utterance, contextSummary)

	var response string
	err := retry.WithBackoff(ctx, func() error {
		var callErr error
		response, callErr = p.provider.Chat(ctx, []llm.Message{
			{Role: "system", Content: prompt},
			{Role: "user", Content: utterance},
		}, llm.WithTemperature(0.0))
		if callErr != nil && !llm.IsRetryable(callErr) {
			return &retry.Permanent{Err: callErr}
		}
		return callErr
	}, p.maxAttempts, p.baseDelay)

	if err != nil {
		p.logger.Warn("QueryParser", "reasoning service unavailable, degrading to clarification", map[string]interface{}{
			"error": err.Error(),
		})
		return &ParsedQuery{
			Summary:       "The reasoning service could not be reached, so your request was not interpreted.",
			Clarification: clarificationFallback,
		}
	}

	parsed, parseErr := p.decode(response)
	if parseErr != nil {
		p.logger.Warn("QueryParser", "malformed reasoning output, degrading to clarification", map[string]interface{}{
			"error": parseErr.Error(),
		})
		return &ParsedQuery{
			Summary:       "Your request could not be interpreted reliably.",
			Clarification: clarificationFallback,
		}
	}

	if len(parsed.Criteria) == 0 && parsed.CandidateName == "" {
		parsed.Clarification = clarificationFallback
	}
	return parsed
}

func (p *Parser) buildPrompt(utterance, contextSummary string) string {
	var sb strings.Builder

	sb.WriteString("You are a talent-search query analyzer. Extract trait requirements from hiring requests.\n\n")

	sb.WriteString("Known traits (use ONLY these identifiers, never invent new ones):\n")
	for _, def := range p.registry.List() {
		fmt.Fprintf(&sb, "- %s: %s\n", def.Key, def.DisplayName)
	}

	if contextSummary != "" {
		sb.WriteString("\nConversation state:\n")
		sb.WriteString(contextSummary)
	}

	sb.WriteString("\nRespond with ONLY valid JSON:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"traits\": [{\"trait\": \"identifier from the list\", \"min_score\": 70, \"weight\": 1.0}],\n")
	sb.WriteString("  \"candidate_name\": \"person's name, only if the request is about a specific person\",\n")
	sb.WriteString("  \"summary\": \"one sentence restating the requirement\",\n")
	sb.WriteString("  \"limit\": 0\n")
	sb.WriteString("}\n")
	sb.WriteString("min_score is optional (omit when the request gives no threshold). Scores are 0-100.\n")

	return sb.String()
}

// decode validates the reasoning-service output against the expected
// schema. Unknown trait identifiers are dropped, thresholds clamped to
// [0,100], non-positive weights reset to 1.
func (p *Parser) decode(response string) (*ParsedQuery, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var raw rawParsedQuery
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal reasoning output: %w", err)
	}

	parsed := &ParsedQuery{
		Summary:       raw.Summary,
		CandidateName: strings.TrimSpace(raw.CandidateName),
		Limit:         raw.Limit,
	}

	for _, t := range raw.Traits {
		key := strings.TrimSpace(strings.ToLower(t.Trait))
		def, known := p.registry.Resolve(key)
		if !known {
			p.logger.Debug("QueryParser", "dropping unknown trait from criteria", map[string]interface{}{
				"trait": key,
			})
			continue
		}

		criterion := MatchCriterion{
			TraitKey:    key,
			DisplayName: def.DisplayName,
			Weight:      1.0,
		}
		if t.Weight != nil && *t.Weight > 0 && !math.IsNaN(*t.Weight) && !math.IsInf(*t.Weight, 0) {
			criterion.Weight = *t.Weight
		}
		if t.MinScore != nil && !math.IsNaN(*t.MinScore) && !math.IsInf(*t.MinScore, 0) {
			min := *t.MinScore
			if min < 0 {
				min = 0
			}
			if min > 100 {
				min = 100
			}
			criterion.MinScore = &min
		}
		parsed.Criteria = append(parsed.Criteria, criterion)
	}

	return parsed, nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
