package service

import (
	"context"
	"time"

	"talent-search-be/internal/dto"
	"talent-search-be/internal/pkg/logger"
	"talent-search-be/internal/repository/contract"
	"talent-search-be/pkg/talent/conversation"
	"talent-search-be/pkg/talent/query"
	"talent-search-be/pkg/talent/search"
)

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	ListCandidates(ctx context.Context, limit, offset int) ([]dto.CandidateResponse, int64, error)
	ListTraits(ctx context.Context) ([]dto.TraitResponse, error)
	GetSessionContext(sessionId string) *dto.SessionContextResponse
	ClearSession(sessionId string)
}

type searchService struct {
	orchestrator *search.Orchestrator
	manager      *conversation.Manager
	store        search.CandidateStore
	traits       contract.TraitRepository
	publisher    IPublisherService
	logger       logger.ILogger
}

func NewSearchService(
	orchestrator *search.Orchestrator,
	manager *conversation.Manager,
	store search.CandidateStore,
	traits contract.TraitRepository,
	publisher IPublisherService,
	log logger.ILogger,
) ISearchService {
	return &searchService{
		orchestrator: orchestrator,
		manager:      manager,
		store:        store,
		traits:       traits,
		publisher:    publisher,
		logger:       log,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	started := time.Now()

	resp := s.orchestrator.HandleTurn(ctx, req.SessionId, req.Query)

	s.publishAudit(req, resp, time.Since(started))

	return &dto.SearchResponse{
		SessionId:          resp.SessionId,
		Intent:             resp.Intent,
		SubIntent:          resp.SubIntent,
		Message:            resp.Message,
		Candidates:         mapResults(resp.Results, resp.ParsedQuery),
		TotalCount:         resp.TotalCount,
		QueryUnderstanding: resp.QueryUnderstanding,
		ParsedQuery:        mapParsedQuery(resp.ParsedQuery),
		Suggestions:        resp.Suggestions,
		Degraded:           resp.Degraded,
	}, nil
}

func (s *searchService) publishAudit(req *dto.SearchRequest, resp *search.Response, elapsed time.Duration) {
	event := dto.SearchAuditEvent{
		SessionId:   req.SessionId,
		Query:       req.Query,
		Intent:      resp.Intent,
		SubIntent:   resp.SubIntent,
		ResultCount: resp.TotalCount,
		DurationMs:  elapsed.Milliseconds(),
		OccurredAt:  time.Now(),
	}
	if resp.ParsedQuery != nil {
		event.ParsedTraits = make(map[string]float64, len(resp.ParsedQuery.Criteria))
		for _, c := range resp.ParsedQuery.Criteria {
			event.ParsedTraits[c.TraitKey] = c.Weight
		}
	}

	// Audit is best effort; the search response never waits on it.
	if err := s.publisher.PublishSearchAudit(event); err != nil {
		s.logger.Warn("SearchService", "audit publish failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *searchService) ListCandidates(ctx context.Context, limit, offset int) ([]dto.CandidateResponse, int64, error) {
	candidates, err := s.store.ListCandidates(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.CountCandidates(ctx)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, dto.CandidateResponse{
			Id:         c.Id,
			Name:       c.Name,
			Email:      c.Email,
			TraitCount: c.AssessedTraitCount(),
			CreatedAt:  c.CreatedAt,
		})
	}
	return out, total, nil
}

func (s *searchService) ListTraits(ctx context.Context) ([]dto.TraitResponse, error) {
	defs, err := s.traits.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TraitResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, dto.TraitResponse{
			Key:         def.Key,
			DisplayName: def.DisplayName,
			Description: def.Description,
		})
	}
	return out, nil
}

func (s *searchService) GetSessionContext(sessionId string) *dto.SessionContextResponse {
	sessionCtx := s.manager.GetOrCreate(sessionId)
	sessionCtx.Lock()
	defer sessionCtx.Unlock()

	resp := &dto.SessionContextResponse{
		SessionId:    sessionCtx.SessionId,
		LastIntent:   sessionCtx.LastIntent,
		LastQuery:    sessionCtx.LastQuery,
		LastTraits:   sessionCtx.LastTraits,
		ResultCount:  len(sessionCtx.FocusedCandidates),
		TurnCount:    len(sessionCtx.Messages),
		LastActivity: sessionCtx.UpdatedAt,
	}
	return resp
}

func (s *searchService) ClearSession(sessionId string) {
	sessionCtx := s.manager.GetOrCreate(sessionId)
	sessionCtx.Lock()
	defer sessionCtx.Unlock()
	s.manager.Clear(sessionCtx)
}

func mapResults(results []search.Result, parsed *query.ParsedQuery) []dto.CandidateScoreDTO {
	out := make([]dto.CandidateScoreDTO, 0, len(results))
	for _, r := range results {
		item := dto.CandidateScoreDTO{
			Id:         r.Candidate.Id,
			Name:       r.Candidate.Name,
			Email:      r.Candidate.Email,
			MatchScore: r.Score,
		}
		if parsed != nil {
			for _, criterion := range parsed.Criteria {
				result, ok := r.Candidate.TraitResults[criterion.TraitKey]
				if !ok {
					item.MissingTraits = append(item.MissingTraits, criterion.DisplayName)
					continue
				}
				item.MatchedTraits = append(item.MatchedTraits, dto.TraitScoreDTO{
					Key:         criterion.TraitKey,
					DisplayName: result.DisplayName,
					Score:       result.Score,
					Percentile:  result.Percentile,
				})
			}
		}
		out = append(out, item)
	}
	return out
}

func mapParsedQuery(parsed *query.ParsedQuery) *dto.ParsedQueryDTO {
	if parsed == nil {
		return nil
	}
	out := &dto.ParsedQueryDTO{
		Traits: make([]dto.ParsedTraitDTO, 0, len(parsed.Criteria)),
		Limit:  parsed.Limit,
	}
	for _, c := range parsed.Criteria {
		out.Traits = append(out.Traits, dto.ParsedTraitDTO{Key: c.TraitKey, Weight: c.Weight})
		if c.MinScore != nil && *c.MinScore > out.MinScore {
			out.MinScore = *c.MinScore
		}
	}
	return out
}
