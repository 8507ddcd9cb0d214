package dto

import (
	"time"

	"github.com/google/uuid"
)

type SearchRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Query     string `json:"query" validate:"required"`
}

type SearchResponse struct {
	SessionId          string              `json:"session_id"`
	Intent             string              `json:"intent"`
	SubIntent          string              `json:"sub_intent,omitempty"`
	Message            string              `json:"message"`
	Candidates         []CandidateScoreDTO `json:"candidates,omitempty"`
	TotalCount         int                 `json:"total_count"`
	QueryUnderstanding string              `json:"query_understanding,omitempty"`
	ParsedQuery        *ParsedQueryDTO     `json:"parsed_query,omitempty"`
	Suggestions        []string            `json:"suggestions,omitempty"`
	Degraded           bool                `json:"degraded,omitempty"`
}

type CandidateScoreDTO struct {
	Id            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	MatchScore    float64         `json:"match_score"`
	MatchedTraits []TraitScoreDTO `json:"matched_traits,omitempty"`
	MissingTraits []string        `json:"missing_traits,omitempty"`
}

type TraitScoreDTO struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"display_name"`
	Score       float64  `json:"score"`
	Percentile  *float64 `json:"percentile,omitempty"`
}

// ParsedQueryDTO echoes back how the free-text query was understood.
type ParsedQueryDTO struct {
	Traits   []ParsedTraitDTO `json:"traits"`
	MinScore float64          `json:"min_score"`
	Limit    int              `json:"limit"`
}

type ParsedTraitDTO struct {
	Key    string  `json:"key"`
	Weight float64 `json:"weight"`
}

type TraitResponse struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
}

type CandidateResponse struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	TraitCount int       `json:"trait_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type SessionContextResponse struct {
	SessionId    string    `json:"session_id"`
	LastIntent   string    `json:"last_intent,omitempty"`
	LastQuery    string    `json:"last_query,omitempty"`
	LastTraits   []string  `json:"last_traits,omitempty"`
	ResultCount  int       `json:"result_count"`
	TurnCount    int       `json:"turn_count"`
	LastActivity time.Time `json:"last_activity"`
}
