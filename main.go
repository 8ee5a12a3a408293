package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	gorillahandlers "github.com/gorilla/handlers"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"messenger-service/internal/auth"
	"messenger-service/internal/config"
	"messenger-service/internal/db"
	"messenger-service/internal/handlers"
	"messenger-service/internal/middleware"
	"messenger-service/internal/observability"
	"messenger-service/internal/rabbitmq"
	"messenger-service/internal/repositories"
	"messenger-service/internal/telemetry"
)

const serviceName = "messenger-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownTracing, err := telemetry.InitTracing(context.Background(), serviceName, cfg.Environment, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}

	database, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer database.Close()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AuditExchange)
	defer publisher.Close()
	audit := telemetry.NewAuditEmitter(publisher, cfg.AuditRoutingKey, serviceName, cfg.Environment)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("failed to init tokens: %v", err)
	}

	userRepo := repositories.NewUserRepo(database)
	fileRepo := repositories.NewFileRepo(database)
	dialogRepo := repositories.NewDialogRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	roomRepo := repositories.NewRoomRepo(database)
	friendRepo := repositories.NewFriendRepo(database)
	communityRepo := repositories.NewCommunityRepo(database)

	api := handlers.API{
		Auth:      handlers.NewAuthHandler(userRepo, tokens, audit),
		Dialogs:   handlers.NewDialogHandler(dialogRepo, roomRepo, messageRepo, cfg.PaginationEndRule),
		Users:     handlers.NewUserHandler(userRepo, fileRepo, audit),
		Friends:   handlers.NewFriendHandler(friendRepo, audit),
		Rooms:     handlers.NewRoomHandler(roomRepo, fileRepo, messageRepo, cfg.PaginationEndRule, audit),
		Messages:  handlers.NewMessageHandler(messageRepo),
		Community: handlers.NewCommunityHandler(communityRepo, audit),
	}

	router := gin.Default()

	// middlewares
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(middleware.RequestID())
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.GET("/metrics", observability.MetricsHandler())
	handlers.RegisterHealthRoutes(router, database)
	handlers.RegisterDebugRoutes(router, audit, handlers.AuditSink{
		Mode:       rabbitmq.PublisherMode(publisher),
		NoopReason: rabbitmq.PublisherNoopReason(publisher),
	}, cfg.DebugRoutes)

	api.Register(router.Group("/api"), middleware.AuthMiddleware(tokens))

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.CORSOrigins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodPatch, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{middleware.TokenHeader, "Content-Type", observability.RequestIDHeader}),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           cors(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
}
