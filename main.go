package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"sportlink-service/internal/config"
	"sportlink-service/internal/db"
	"sportlink-service/internal/handlers"
	"sportlink-service/internal/middleware"
	"sportlink-service/internal/observability"
	"sportlink-service/internal/rabbitmq"
	"sportlink-service/internal/repositories"
	"sportlink-service/internal/services"
	"sportlink-service/internal/telemetry"
	"sportlink-service/internal/ws"
)

const serviceName = "sportlink-service"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := initLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	database, err := db.Connect(cfg.DB.DSN, logger)
	if err != nil {
		logger.Fatal("failed to connect to db", zap.Error(err))
	}
	defer database.Close()

	shutdownTracing, err := observability.SetupTracing(context.Background(), cfg.Trace.OTLPEndpoint, serviceName, cfg.Server.Env)
	if err != nil {
		logger.Fatal("failed to set up tracing", zap.Error(err))
	}
	defer shutdownTracing(context.Background())

	publisher := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
	defer publisher.Close()
	observability.SetPublisher(publisher)
	logger.Info("event publisher ready", zap.String("mode", rabbitmq.PublisherMode(publisher)))

	audit := telemetry.NewAuditEmitter(publisher, "audit.connections", serviceName, cfg.Server.Env, logger)

	userRepo := repositories.NewUserRepo(database)
	connRepo := repositories.NewConnectionRepo(database)
	chatRepo := repositories.NewChatRepo(database)
	messageRepo := repositories.NewMessageRepo(database)

	connectionService := services.NewConnectionService(connRepo, userRepo)
	chatService := services.NewChatService(chatRepo, messageRepo, userRepo)

	hub := ws.NewHub(logger)
	relay := ws.NewRelayHandler(hub, chatService, logger, cfg.Relay.HeartbeatTimeout)

	connectionHandler := handlers.NewConnectionHandler(connectionService, audit, logger)
	chatHandler := handlers.NewChatHandler(chatService, hub, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/health", handlers.HealthHandler(database))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Relay sessions announce identity via the join event.
	router.GET("/ws", relay.Handle)

	authMiddleware := middleware.AuthMiddleware(cfg.JWT.Secret)
	user := router.Group("/user", authMiddleware)

	user.POST("/chats", chatHandler.Start)
	user.GET("/chats/user/:userId", chatHandler.ListForUser)
	user.POST("/chats/messages", chatHandler.SendMessage)
	user.GET("/chats/messages", chatHandler.Messages)

	user.POST("/connections/:connectedUserId", connectionHandler.Create)
	user.PUT("/connections/:connectedUserId", connectionHandler.Respond)
	user.GET("/connections", connectionHandler.List)
	user.GET("/connections/pending/:userId", connectionHandler.ListPending)
	user.GET("/connections/accepted/:userId", connectionHandler.ListAccepted)
	user.GET("/connections/status/:connectedUserId", connectionHandler.Status)
	user.GET("/search/:currentUserId", connectionHandler.Search)

	logger.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func initLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
