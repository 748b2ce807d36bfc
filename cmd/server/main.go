package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/flexprice/azpay/internal/api"
	v1 "github.com/flexprice/azpay/internal/api/v1"
	"github.com/flexprice/azpay/internal/config"
	"github.com/flexprice/azpay/internal/httpclient"
	"github.com/flexprice/azpay/internal/integration"
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/flexprice/azpay/internal/types"
	"github.com/flexprice/azpay/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Initialize Fx application
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// HTTP Client
			provideHTTPClient,

			// Gateways
			integration.NewFactory,
			provideManager,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHTTPClient(cfg *config.Configuration) httpclient.Client {
	// Rate limiting is applied per gateway by the factory
	return httpclient.NewClient(httpclient.ClientConfig{Timeout: cfg.HTTP.Timeout})
}

func provideManager(factory *integration.Factory) (*base.Manager, error) {
	return factory.NewManager()
}

func provideHandlers(manager *base.Manager, logger *logger.Logger) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(manager),
		Gateway:  v1.NewGatewayHandler(manager, logger),
		Callback: v1.NewCallbackHandler(manager, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return server.Shutdown(ctx)
		},
	})
}
