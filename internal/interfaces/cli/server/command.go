package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"remory/internal/application/auth/usecases"
	"remory/internal/domain/identity"
	infraAuth "remory/internal/infrastructure/auth"
	"remory/internal/infrastructure/cache"
	"remory/internal/infrastructure/config"
	"remory/internal/infrastructure/database"
	"remory/internal/infrastructure/repository"
	"remory/internal/infrastructure/services"
	"remory/internal/interfaces/http/handlers"
	"remory/internal/interfaces/http/routes"
	"remory/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "environment", env)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	log := logger.NewLogger()
	db := database.Get()

	identityRepo := repository.NewIdentityRepository(db)
	linkRepo := repository.NewLinkedProviderRepository(db)
	chatRepo := repository.NewChatMessageRepository(db)

	var refreshRepo identity.RefreshCredentialRepository
	if cfg.Auth.RefreshStore == "redis" {
		refreshRepo = cache.NewRedisRefreshStore(redisClient, cfg.Auth.JWT.RefreshExpDays)
	} else {
		refreshRepo = repository.NewRefreshCredentialRepository(db)
	}

	codec := infraAuth.NewTokenCodec(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	hasher := infraAuth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	states := cache.NewOAuthStateStore(redisClient)

	providers := map[string]infraAuth.ProviderClient{
		identity.ProviderKakao:  infraAuth.NewKakaoOAuthClient(cfg.OAuth.Kakao),
		identity.ProviderNaver:  infraAuth.NewNaverOAuthClient(cfg.OAuth.Naver),
		identity.ProviderGoogle: infraAuth.NewGoogleOAuthClient(cfg.OAuth.Google),
	}

	authHandler := handlers.NewAuthHandler(
		usecases.NewRegisterWithPasswordUseCase(identityRepo, hasher, log),
		usecases.NewLoginWithPasswordUseCase(identityRepo, refreshRepo, hasher, codec, log),
		usecases.NewReissueTokenUseCase(identityRepo, refreshRepo, codec, log),
		usecases.NewLogoutUseCase(refreshRepo, codec, log),
		usecases.NewLinkSocialIdentityUseCase(identityRepo, linkRepo, refreshRepo, codec, log),
		usecases.NewCompleteProfileUseCase(identityRepo, refreshRepo, codec, log),
		providers,
		states,
		&cfg.OAuth,
		log,
	)
	userHandler := handlers.NewUserHandler(
		usecases.NewGetProfileUseCase(identityRepo, linkRepo, log),
		usecases.NewChangePasswordUseCase(identityRepo, hasher, log),
		usecases.NewWithdrawUseCase(identityRepo, refreshRepo, log),
		usecases.NewChangeRoleUseCase(identityRepo, refreshRepo, log),
		log,
	)
	chatHandler := handlers.NewChatHandler(services.NewChatHub(chatRepo, log), codec, log)

	router := gin.New()
	router.Use(gin.Recovery())
	routes.Setup(router, authHandler, userHandler, chatHandler, codec, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", srv.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
