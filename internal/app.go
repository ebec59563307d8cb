package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"listing-service/internal/adapters/ai_api_client"
	"listing-service/internal/adapters/fixture"
	token_adapter "listing-service/internal/adapters/jwt"
	logger_adapter "listing-service/internal/adapters/logger"
	"listing-service/internal/adapters/rest"
	"listing-service/internal/configs"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/usecase"
	fluentlogger "listing-service/pkg/fluent_logger"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	logger       port.LoggerPort
	fluentClient *fluent.Fluent // закрываем последним
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}
	return newAppFromConfig(appConfig)
}

func newAppFromConfig(appConfig *configs.AppConfig) (*App, error) {
	// --- логгеры ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	closeFluent := func() {
		if fluentClient != nil {
			fluentClient.Close()
		}
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		closeFluent()
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- исходящие адаптеры ---
	validator, err := contracts.NewValidator()
	if err != nil {
		closeFluent()
		return nil, fmt.Errorf("failed to compile json schemas: %w", err)
	}

	var source *fixture.ListingSource
	if appConfig.Listings.FixturePath != "" {
		source, err = fixture.NewListingSourceFromFile(appConfig.Listings.FixturePath, validator)
	} else {
		source, err = fixture.NewDefaultListingSource(validator)
	}
	if err != nil {
		appLogger.Error("Failed to load listings", err, port.Fields{"path": appConfig.Listings.FixturePath})
		closeFluent()
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	appLogger.Info("Listings loaded", port.Fields{"count": source.Len()})

	var aiService port.AISearchServicePort
	if appConfig.ApiClient.AIServiceURL != "" {
		aiService = ai_api_client.NewAIServiceAPIClient(appConfig.ApiClient.AIServiceURL, appConfig.ApiClient.AIServiceTimeout)
		appLogger.Info("External AI search enabled", port.Fields{"url": appConfig.ApiClient.AIServiceURL})
	} else {
		appLogger.Warn("AI_SERVICE_URL is not set, AI search uses the local stub", nil)
	}

	var authProxy http.Handler
	if appConfig.ApiClient.AuthServiceURL != "" {
		authProxy, err = rest.CreateProxy(appConfig.ApiClient.AuthServiceURL, "/api", "")
		if err != nil {
			closeFluent()
			return nil, fmt.Errorf("failed to create auth proxy: %w", err)
		}
		appLogger.Info("Auth passthrough enabled", port.Fields{"url": appConfig.ApiClient.AuthServiceURL})
	}

	var authn *rest.AuthMiddleware
	if appConfig.Auth.JWTSecret != "" {
		tokenValidator, err := token_adapter.NewTokenValidator(appConfig.Auth.JWTSecret)
		if err != nil {
			closeFluent()
			return nil, fmt.Errorf("failed to create token validator: %w", err)
		}
		authn = rest.NewAuthMiddleware(tokenValidator)
		appLogger.Info("AI search requires a valid access token", nil)
	}

	// --- use cases ---
	policy := domain.PolicyIgnore
	if appConfig.Listings.StrictFilters {
		policy = domain.PolicyReject
	}

	searchListingsUseCase := usecase.NewSearchListingsUseCase(source, policy)
	findListingsUseCase := usecase.NewFindListingsUseCase(source, policy)
	getListingByIDUseCase := usecase.NewGetListingByIDUseCase(source)
	aiSearchUseCase := usecase.NewAISearchUseCase(source, aiService)
	appLogger.Info("All use cases initialized", nil)

	// --- входящие адаптеры ---
	listingHandlers := rest.NewListingHandler(searchListingsUseCase, findListingsUseCase, getListingByIDUseCase, validator)
	aiSearchHandlers := rest.NewAISearchHandler(aiSearchUseCase, validator)
	apiServer := rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.PORT,
		AllowedOrigins: appConfig.Rest.AllowedOrigins,
	}, listingHandlers, aiSearchHandlers, authProxy, authn, baseLogger)

	return &App{
		config:       appConfig,
		apiServer:    apiServer,
		logger:       appLogger,
		fluentClient: fluentClient,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала ОС или ошибки сервера.
func (a *App) Run() error {
	var runErr error

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", port.Fields{"port": a.config.Rest.PORT})
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed, shutting down", err, nil)
		runErr = err
	}

	return runErr
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
