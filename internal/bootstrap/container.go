package bootstrap

import (
	"log"

	"station-chat-be/internal/config"
	"station-chat-be/internal/controller"
	"station-chat-be/internal/pkg/logger"
	"station-chat-be/internal/repository/jsonstore"
	"station-chat-be/internal/repository/memory"
	"station-chat-be/internal/seed"
	"station-chat-be/internal/service"
	"station-chat-be/pkg/llm/ollama"
	"station-chat-be/pkg/resolver"
	"station-chat-be/pkg/resolver/flow"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicStationUpdated carries status-change events from the geo service to
// the snapshot consumer.
const TopicStationUpdated = "station.updated"

type Container struct {
	// Controllers
	ChatController controller.IChatController
	GeoController  controller.IGeoController

	// Background services (run from main)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Stores
	stationStore, err := jsonstore.NewStationStore(cfg.Store.StationsPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open station store: %v", err)
	}
	poiStore, err := jsonstore.NewPOIStore(cfg.Store.PoisPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open poi store: %v", err)
	}

	// First boot only; an existing file is never overwritten.
	if err := stationStore.InitIfMissing(seed.Stations(seed.DefaultSeed)); err != nil {
		log.Fatalf("[FATAL] Failed to seed station store: %v", err)
	}
	if err := poiStore.InitIfMissing(seed.POIs()); err != nil {
		log.Fatalf("[FATAL] Failed to seed poi store: %v", err)
	}

	sessionRepo := memory.NewSessionRepository()

	// 3. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisherService := service.NewPublisherService(pubSub, TopicStationUpdated)

	// 4. Resolver pipeline
	flowMgr := flow.NewManager(poiStore, stationStore, flow.Options{
		DefaultRadiusM: cfg.Geo.DefaultRadiusM,
		MinRadiusM:     cfg.Geo.MinRadiusM,
		MaxRadiusM:     cfg.Geo.MaxRadiusM,
		NearbyLimit:    cfg.Geo.NearbyLimit,
		TTL:            cfg.Flow.TTL,
	})
	router := resolver.NewRouter(stationStore, flowMgr)

	// 5. Model backend
	llmProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	log.Printf("[INFO] Using LLM Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)

	// 6. Services
	chatService := service.NewChatService(router, flowMgr, stationStore, sessionRepo, llmProvider, sysLogger, cfg.Ai.TopKContext)
	geoService := service.NewGeoService(stationStore, sessionRepo, publisherService, sysLogger)
	consumerService := service.NewConsumerService(pubSub, TopicStationUpdated, stationStore, sysLogger)

	return &Container{
		ChatController:  controller.NewChatController(chatService),
		GeoController:   controller.NewGeoController(geoService),
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
