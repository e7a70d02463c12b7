package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"meetfood/domain/repository"
	"meetfood/infrastructure/cache"
	"meetfood/infrastructure/configuration"
	"meetfood/infrastructure/identity"
	"meetfood/infrastructure/logger"
	"meetfood/infrastructure/persistence"
	"meetfood/infrastructure/storage"
	httpHandler "meetfood/interfaces/http"
	"meetfood/interfaces/middleware"
	"meetfood/server"
	"meetfood/usecase"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	app := configuration.C.App

	mongoClient, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to MongoDB")
		os.Exit(1)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB ping failed")
		os.Exit(1)
	}
	logger.GetLogger().Info("MongoDB connected successfully")

	db := mongoClient.Database(configuration.C.Database.Mongo.Name)
	if err := persistence.EnsureUserIndexes(ctx, db); err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot ensure user indexes")
		os.Exit(1)
	}

	redisClient, _ := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	tokenCache := cache.NewTokenCache(redisClient)

	assetStorage, err := storage.NewS3AssetStorage(ctx, configuration.C.S3)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot initialize asset storage")
		os.Exit(1)
	}

	// Production verifies tokens against the Cognito user pool; without a
	// pool configured we fall back to a shared-secret verifier for local use.
	var verifier repository.ITokenVerifier
	if configuration.C.Cognito.UserPoolID != "" {
		verifier, err = identity.NewOIDCVerifier(ctx, configuration.C.Cognito.Issuer(), configuration.C.Cognito.ClientID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Cannot initialize OIDC verifier")
			os.Exit(1)
		}
	} else {
		logger.GetLogger().Warn("Cognito user pool not configured; using HMAC token verifier")
		verifier = identity.NewHMACVerifier(app.SecretKey)
	}

	identityProvider, err := identity.NewCognitoProvider(ctx, configuration.C.Cognito.Region, configuration.C.Cognito.UserPoolID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot initialize identity provider")
		os.Exit(1)
	}

	userRepository := persistence.NewUserRepository(db)
	videoPostRepository := persistence.NewVideoPostRepository(mongoClient, db)

	userUsecase := usecase.NewUserUsecase(userRepository, videoPostRepository, assetStorage, identityProvider, tokenCache)
	videoUsecase := usecase.NewVideoUsecase(videoPostRepository, userRepository, assetStorage)
	feedUsecase := usecase.NewFeedUsecase(videoPostRepository, userRepository)

	userHandler := httpHandler.NewUserHandler(userUsecase)
	videoHandler := httpHandler.NewVideoHandler(videoUsecase, feedUsecase)

	authMiddleware := middleware.Auth(verifier, userRepository, tokenCache)
	router := server.InitiateRouter(userHandler, videoHandler, authMiddleware)

	logger.GetLogger().WithField("port", app.Port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", app.Port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}

	if err := mongoClient.Disconnect(context.Background()); err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB disconnect failed")
	}
}
