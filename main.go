package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"collection-connector/internal/config"
	"collection-connector/internal/domain/entities"
	Iservices "collection-connector/internal/domain/interfaces/services"
	"collection-connector/internal/infra/handlers"
	"collection-connector/internal/infra/logger"
	"collection-connector/internal/infra/provider"
	"collection-connector/internal/infra/repository"
	"collection-connector/internal/infra/routes"
	"collection-connector/internal/infra/services"
	"collection-connector/internal/infra/store"
	"collection-connector/internal/middleware"
	client "collection-connector/internal/pkg"

	"github.com/gorilla/mux"
)

const replyPause = 2 * time.Second

func main() {
	config.LoadEnv()

	ctx := context.Background()
	log := logger.NewLogger(ctx, true)

	redisClient := client.RedisClient()
	sessionStore, err := store.NewRedisSessionStore(redisClient)
	if err != nil {
		log.Fatal(fmt.Sprintf("Failed to build session store: %v", err))
	}

	mongoClient := client.MongoClient()
	auditDB := mongoClient.Database("Audit")
	auditRepo := repository.NewMongoRepository[entities.AuditMessage](auditDB)

	debounceWindow := config.GetEnvSeconds("MESSAGE_BUFFER_WAIT_TIME")
	sessionTTL := config.GetEnvSeconds("SESSION_BUFFER_WAIT_TIME")

	httpClient := &http.Client{Timeout: 60 * time.Second}

	accounts := provider.NewHTTPAccountProvider(log, httpClient, config.GetEnv("ACCOUNTS_API_HOST"), config.GetEnv("ACCOUNTS_API_KEY"))
	whatsApp := provider.NewJelouWhatsAppProvider(log, httpClient, config.GetEnv("JELOU_API_URL"), config.GetEnv("JELOU_API_KEY"), config.GetEnv("JELOU_BOT_ID"))

	var ocrService Iservices.IOCRService = services.NewOCRService(log, httpClient, config.GetEnv("OCR_API_HOST"))
	var queryAIService Iservices.IQueryAIService = services.NewQueryAIService(log, httpClient, config.GetEnv("QUERY_AI_API_HOST"))
	var userService Iservices.IUserService = services.NewUserService(sessionStore, log, accounts, sessionTTL)
	var memoryService Iservices.IMemoryService = services.NewMemoryService(sessionStore, log, sessionTTL)
	var auditService Iservices.IAuditService = services.NewAuditService(log, auditRepo)
	var parser Iservices.IFragmentParser = services.NewFragmentParser(log, ocrService)
	// bursts must outlive the debounce sleep of their own waiters
	var aggregator Iservices.IAggregatorService = services.NewAggregatorService(sessionStore, log, 2*debounceWindow)

	var channelService Iservices.IChannelService = services.NewChannelService(
		log, userService, parser, aggregator, memoryService, queryAIService,
		auditService, whatsApp, accounts, debounceWindow, replyPause,
	)

	clientSync := services.NewClientSyncService(log, memoryService)
	collectionSync := services.NewCollectionSyncService(log, memoryService)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	webhookHandlers := handlers.NewWebhookHandlers(log, channelService)
	memorySyncHandlers := handlers.NewMemorySyncHandlers(log, clientSync, collectionSync)

	routes := routes.NewRoutes(router, webhookHandlers, memorySyncHandlers)
	routes.Init()

	port := config.GetEnv("PORT")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}
