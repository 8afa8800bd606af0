package bootstrap

import (
	"context"
	"log"

	"market-research-be/internal/config"
	"market-research-be/internal/controller"
	"market-research-be/internal/pkg/logger"
	"market-research-be/internal/repository/contract"
	"market-research-be/internal/repository/memory"
	"market-research-be/internal/repository/redisstore"
	"market-research-be/internal/service"
	natspkg "market-research-be/pkg/nats"
	"market-research-be/pkg/retrieval/wikipedia"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ResearchController controller.IResearchController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Session Store
	var sessionRepo contract.SessionRepository
	if cfg.Session.Store == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisstore.NewSessionRepository(rdb)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository()
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 4. External Adapters
	retriever := wikipedia.NewRetriever(cfg.Ai.WikipediaURL)
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// NATS is optional; events stay on the in-process bus without it.
	var natsPub *natspkg.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = natspkg.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// 5. Services
	publisherService := service.NewPublisherService(pubSub)
	consumerService := service.NewConsumerService(pubSub, sysLogger, natsPub)

	researchService := service.NewResearchService(
		cfg,
		sessionRepo,
		retriever,
		publisherService,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		ResearchController: controller.NewResearchController(researchService),

		ConsumerService: consumerService,
	}
}
