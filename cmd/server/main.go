package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/adapter/httpapi"
	natsadapter "github.com/freecosystem/marketplace/internal/adapter/messaging/nats"
	"github.com/freecosystem/marketplace/internal/adapter/repository/cache"
	"github.com/freecosystem/marketplace/internal/adapter/repository/mongodb"
	"github.com/freecosystem/marketplace/internal/adapter/storage/s3"
	"github.com/freecosystem/marketplace/internal/config"
	interestusecase "github.com/freecosystem/marketplace/internal/interest/usecase"
	listingusecase "github.com/freecosystem/marketplace/internal/listing/usecase"
	"github.com/freecosystem/marketplace/internal/mailer"
	moderationusecase "github.com/freecosystem/marketplace/internal/moderation/usecase"
	notificationusecase "github.com/freecosystem/marketplace/internal/notification/usecase"
	sysconfigusecase "github.com/freecosystem/marketplace/internal/sysconfig/usecase"
	userusecase "github.com/freecosystem/marketplace/internal/user/usecase"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDatabase)

	listingCache, err := cache.NewListingCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer listingCache.Close()

	publisher, err := natsadapter.NewPublisher(cfg.NATSURL)
	if err != nil {
		// The bus is best-effort; run without it rather than refuse to start.
		logger.Warn("failed to connect to NATS, events disabled", zap.Error(err))
		publisher = nil
	} else {
		defer publisher.Close()
	}

	storage, err := s3.NewS3Storage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL, logger)
	if err != nil {
		logger.Fatal("failed to initialize media storage", zap.Error(err))
	}

	// Repositories.
	userRepo := mongodb.NewUserRepository(db, logger)
	listingRepo := mongodb.NewListingRepository(db, logger)
	interestRepo := mongodb.NewInterestRepository(db, logger)
	notificationRepo := mongodb.NewNotificationRepository(db, logger)
	sysconfigRepo := mongodb.NewSystemConfigRepository(db, logger)
	moderationStore := mongodb.NewModerationStore(db, logger)

	// Usecases.
	sysconfigService, err := sysconfigusecase.NewService(ctx, sysconfigRepo, logger)
	if err != nil {
		logger.Fatal("failed to load system config", zap.Error(err))
	}

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	var mail notificationusecase.Mailer
	if cfg.SMTPEmail != "" {
		mail = smtpMailer
	}

	var events notificationusecase.EventPublisher
	if publisher != nil {
		events = publisher
	}
	dispatcher := notificationusecase.NewNotificationUsecase(notificationRepo, userRepo, events, mail, logger)

	listingUC := listingusecase.NewListingUsecase(listingRepo, listingCache, sysconfigService, logger)
	photoUC := listingusecase.NewPhotoUsecase(storage, sysconfigService, logger)
	userUC := userusecase.NewUserUsecase(userRepo, logger)
	interestUC := interestusecase.NewInterestUsecase(interestRepo, listingUC, dispatcher, logger)

	engine := moderationusecase.NewEngine(moderationStore, dispatcher, logger)
	moderatorFacade := moderationusecase.NewModeratorFacade(engine, moderationStore)
	adminFacade := moderationusecase.NewAdminFacade(engine, moderationStore, listingRepo, userRepo)

	// HTTP transport.
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Listings:        httpapi.NewListingHandler(listingUC, photoUC, logger),
		Interests:       httpapi.NewInterestHandler(interestUC, logger),
		Notifications:   httpapi.NewNotificationHandler(dispatcher, logger),
		Users:           httpapi.NewUserHandler(userUC, logger),
		Moderation:      httpapi.NewModerationHandler(listingUC, userUC, interestUC, logger),
		Admin:           httpapi.NewAdminHandler(moderatorFacade, adminFacade, userUC, sysconfigService, logger),
		ModeratorFacade: moderatorFacade,
		AdminFacade:     adminFacade,
		Maintenance:     sysconfigService,
		JWTSecret:       cfg.JWTSecret,
		RequestTimeout:  time.Duration(cfg.RequestTimeout) * time.Second,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("starting marketplace server", zap.Int("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
