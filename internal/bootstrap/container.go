package bootstrap

import (
	"context"
	"log"

	"talent-search-be/internal/config"
	"talent-search-be/internal/controller"
	"talent-search-be/internal/pkg/logger"
	"talent-search-be/internal/repository/implementation"
	"talent-search-be/internal/repository/memory"
	"talent-search-be/internal/service"
	"talent-search-be/pkg/llm/factory"
	"talent-search-be/pkg/talent/conversation"
	"talent-search-be/pkg/talent/intent"
	"talent-search-be/pkg/talent/query"
	"talent-search-be/pkg/talent/registry"
	"talent-search-be/pkg/talent/respond"
	"talent-search-be/pkg/talent/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SearchController controller.ISearchController

	// Background Services (Exposed for main.go to run)
	AuditConsumerService service.IAuditConsumerService

	// Exposed for shutdown
	Scorer *search.Scorer
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger("logs/search_audit.log")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Repositories
	candidateRepository := implementation.NewCandidateRepository(db)
	traitRepository := implementation.NewTraitRepository(db)
	searchLogRepository := implementation.NewSearchLogRepository(db)
	sessionRepository := memory.NewSessionRepository(cfg.Search.SessionTTL)

	// 4. Trait Registry (loaded once at startup; traits change via
	// migrations, not at runtime)
	definitions, err := traitRepository.FindAll(context.Background())
	if err != nil {
		log.Panicf("Unable to load trait registry: %v", err)
	}
	traitRegistry := registry.New(definitions)
	sysLogger.Info("Bootstrap", "trait registry loaded", map[string]interface{}{
		"traits": traitRegistry.Len(),
	})

	// 5. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
		cfg.Ai.Timeout,
	)
	if err != nil {
		log.Panicf("Unable to initialize LLM provider: %v", err)
	}

	// 6. Search Pipeline
	candidateStore := service.NewCandidateStoreAdapter(
		candidateRepository,
		cfg.Search.StoreTimeout,
		cfg.Search.StoreMaxRetries,
		cfg.Search.StoreRetryBaseWait,
	)
	manager := conversation.NewManager(sessionRepository)
	classifier := intent.NewClassifier()
	parser := query.NewParser(llmProvider, traitRegistry, sysLogger, cfg.Ai.MaxRetries, cfg.Ai.RetryBaseWait)
	retriever := search.NewRetriever(candidateStore, cfg.Search.RetrievalLimit)
	scorer, err := search.NewScorer(search.DefaultThresholdPenalty, traitRegistry.Len(), cfg.Search.ScorerPoolSize)
	if err != nil {
		log.Panicf("Unable to initialize scorer pool: %v", err)
	}
	responder := respond.NewGenerator(llmProvider, sysLogger)

	orchestrator := search.NewOrchestrator(
		manager,
		classifier,
		parser,
		retriever,
		scorer,
		traitRegistry,
		candidateStore,
		responder,
		sysLogger,
	)

	// 7. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.SearchAuditTopic, sysLogger)
	auditConsumerService := service.NewAuditConsumerService(pubSub, cfg.App.SearchAuditTopic, searchLogRepository, auditLogger)
	searchService := service.NewSearchService(
		orchestrator,
		manager,
		candidateStore,
		traitRepository,
		publisherService,
		sysLogger,
	)

	// 8. Controllers
	searchController := controller.NewSearchController(searchService)

	return &Container{
		SearchController:     searchController,
		AuditConsumerService: auditConsumerService,
		Scorer:               scorer,
		Logger:               sysLogger,
	}
}
