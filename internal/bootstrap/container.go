package bootstrap

import (
	"log"

	"ai-docqa-be/internal/config"
	"ai-docqa-be/internal/controller"
	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/internal/repository/contract"
	"ai-docqa-be/internal/repository/implementation"
	"ai-docqa-be/internal/repository/memory"
	"ai-docqa-be/internal/repository/unitofwork"
	"ai-docqa-be/internal/service"
	"ai-docqa-be/pkg/embedding"
	"ai-docqa-be/pkg/extract"
	"ai-docqa-be/pkg/llm/factory"
	"ai-docqa-be/pkg/rag/critic"
	"ai-docqa-be/pkg/rag/editor"
	"ai-docqa-be/pkg/rag/research"
	"ai-docqa-be/pkg/rag/summarize"
	"ai-docqa-be/pkg/rag/workflow"
	"ai-docqa-be/pkg/vecstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const documentEventsTopic = "DOCUMENT_EVENTS"

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	QueryController    controller.IQueryController
	SessionController  controller.ISessionController
	SystemController   controller.ISystemController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.OpenAIEmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.OpenAIEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Vector Stores
	sharedStore, err := vecstore.NewSharedStore(cfg.Store.SharedDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open shared index: %v", err)
	}
	documentStore, err := vecstore.NewDocumentStore(cfg.Store.MultiDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open document store: %v", err)
	}

	// 5. Conversation Memory
	var conversationStore contract.ConversationStore
	if cfg.Memory.Backend == "postgres" && db != nil {
		uowFactory := unitofwork.NewRepositoryFactory(db)
		conversationStore = implementation.NewGormConversationStore(uowFactory, sysLogger)
		log.Printf("[INFO] Using Conversation Backend: POSTGRES")
	} else {
		conversationStore = memory.NewConversationStore(sysLogger)
		log.Printf("[INFO] Using Conversation Backend: MEMORY")
	}

	// 6. Workflow Agents
	researchAgent := research.NewAgent(embeddingProvider, sharedStore, documentStore, sysLogger)
	summarizeAgent := summarize.NewAgent(llmProvider, sysLogger)
	criticAgent := critic.NewAgent(llmProvider, sysLogger)
	editorAgent := editor.NewAgent(llmProvider, sysLogger)
	engine := workflow.NewEngine(researchAgent, summarizeAgent, criticAgent, editorAgent, sysLogger)

	// 7. Services
	publisherService := service.NewPublisherService(documentEventsTopic, pubSub, sysLogger)
	statsService := service.NewStatsService(sharedStore, documentStore, conversationStore, sysLogger)
	consumerService := service.NewConsumerService(pubSub, documentEventsTopic, statsService, sysLogger)

	documentService := service.NewDocumentService(
		extract.NewExtractor(),
		embeddingProvider,
		sharedStore,
		documentStore,
		publisherService,
		sysLogger,
	)
	queryService := service.NewQueryService(
		engine,
		embeddingProvider,
		llmProvider,
		sharedStore,
		conversationStore,
		cfg.Query.DefaultTopK,
		cfg.Query.ContextWindow,
		sysLogger,
	)
	sessionService := service.NewSessionService(conversationStore, sysLogger)

	// 8. Controllers
	return &Container{
		DocumentController: controller.NewDocumentController(documentService),
		QueryController:    controller.NewQueryController(queryService),
		SessionController:  controller.NewSessionController(sessionService),
		SystemController:   controller.NewSystemController(statsService),

		ConsumerService: consumerService,
	}
}
