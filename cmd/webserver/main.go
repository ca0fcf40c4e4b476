package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	redisDriver "github.com/redis/go-redis/v9"

	"teammatch/internal/apptypes"
	"teammatch/internal/config"
	"teammatch/internal/handlers/webserver"
	appKafka "teammatch/internal/kafka"
	kafkahandlers "teammatch/internal/kafka/handlers"
	appRedis "teammatch/internal/redis"
	"teammatch/internal/services"
	"teammatch/internal/session"
	"teammatch/internal/storage"
	"teammatch/internal/taxonomy"
	"teammatch/internal/view"
	ws "teammatch/internal/websocket"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	// 1. Configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Config loaded for %s.", cfg.AppName)

	tx, err := taxonomy.New(cfg.Taxonomy)
	if err != nil {
		log.Fatalf("Invalid skill taxonomy: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Database
	db, err := storage.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := storage.AutoMigrateTables(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Printf("Connected to %s database.", cfg.Database.Type)

	// 3. Repositories
	userRepo := storage.NewGormUserRepository(db)
	friendReqRepo := storage.NewGormFriendRequestRepository(db)
	var historyRepo storage.SearchHistoryRepository
	switch cfg.History.Backend {
	case "redis":
		redisClient := redisDriver.NewClient(&redisDriver.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		historyRepo = appRedis.NewRedisSearchHistory(redisClient, cfg.History.KeyPrefix)
		log.Printf("Search history stored in Redis at %s.", cfg.Redis.Addr)
	case "database", "":
		historyRepo = storage.NewGormSearchHistoryRepository(db)
	default:
		log.Fatalf("Unsupported history backend: %s", cfg.History.Backend)
	}

	// 4. Profile picture storage
	var storageService apptypes.StorageService
	switch cfg.Storage.Type {
	case "local":
		storageService, err = storage.NewLocalStorageService(cfg.Storage)
	case "s3":
		storageService, err = storage.NewS3StorageService(ctx, cfg.Storage.S3)
	default:
		err = fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Printf("Profile pictures stored in %s storage.", cfg.Storage.Type)

	// 5. Notifications: friend request events reach the hub directly, or
	// through Kafka so that every server instance can deliver them.
	hub := ws.NewHub()
	go hub.Run(ctx)

	var publisher services.EventPublisher = hub
	if cfg.Kafka.Enabled {
		producer, err := appKafka.NewConfluentKafkaProducer(cfg.Kafka)
		if err != nil {
			log.Fatalf("Failed to create Kafka producer: %v", err)
		}
		defer producer.Close()
		publisher = appKafka.NewFriendRequestPublisher(producer, cfg.Kafka.FriendRequestTopic)

		consumer, err := appKafka.NewConfluentKafkaConsumer(cfg.Kafka)
		if err != nil {
			log.Fatalf("Failed to create Kafka consumer: %v", err)
		}
		defer consumer.Close()

		notifier := kafkahandlers.NewFriendRequestNotifier(hub)
		go func() {
			topics := []string{cfg.Kafka.FriendRequestTopic}
			log.Printf("Kafka consumer listening on %s (group %s)", cfg.Kafka.FriendRequestTopic, cfg.Kafka.ConsumerGroup)
			if err := consumer.Consume(ctx, topics, notifier.HandleMessage); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Kafka consumer stopped: %v", err)
			}
		}()
	}

	// 6. Services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, historyRepo, storageService, tx, cfg.Storage.MaxFileSizeMB<<20)
	recommendationService := services.NewRecommendationService(userRepo, historyRepo, tx)
	friendReqService := services.NewFriendRequestService(userRepo, friendReqRepo, publisher)

	// 7. Routes
	renderer, err := view.NewPageRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	router := webserver.NewRouter(webserver.Dependencies{
		Config:          &cfg,
		Sessions:        session.NewManager(session.NewCookieStore(cfg.Session), cfg.Session.Name),
		Renderer:        renderer,
		Hub:             hub,
		AuthService:     authService,
		UserService:     userService,
		Recommendations: recommendationService,
		FriendRequests:  friendReqService,
	})

	// 8. Serve until a signal arrives
	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handlers.LoggingHandler(os.Stdout, router)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Web server listening on %s", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start web server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down web server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		log.Printf("Web server forced to shut down: %v", err)
	}
	log.Println("Web server stopped.")
}
