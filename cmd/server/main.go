package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"respondo.app/backend/common/id"
	"respondo.app/backend/common/llm"
	"respondo.app/backend/common/logger"
	"respondo.app/backend/common/otel"
	"respondo.app/backend/core/config"
	"respondo.app/backend/internal/http/handler"
	"respondo.app/backend/internal/http/middleware"
	httprouter "respondo.app/backend/internal/http/router"
	"respondo.app/backend/internal/metrics"
	"respondo.app/backend/internal/prompt"
	"respondo.app/backend/internal/service"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "respondo starting", "env", cfg.Env, "version", cfg.Version)
	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	llmClient, err := llm.NewClient(ctx, llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create llm client", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "llm client ready",
		"provider", llmClient.Provider(),
		"model", llmClient.Model(),
		"custom_endpoint", cfg.LLM.CustomEndpoint())

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}

		redisClient = redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		slog.InfoContext(ctx, "redis connected")
	}

	var source prompt.Source
	switch cfg.Prompt.Source {
	case config.PromptSourceRedis:
		source = prompt.NewRedisSource(redisClient, cfg.Prompt.RedisKey)
	default:
		source = prompt.NewFileSource(cfg.Prompt.File)
	}

	store := prompt.NewStore(source)
	_, err = store.Reload(ctx)
	metrics.RecordPromptReload("startup", err)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load system instruction", "error", err, "source", source.Describe())
		os.Exit(1)
	}

	runCtx, stopRun := context.WithCancel(ctx)
	defer stopRun()

	servicesCfg := service.ServicesConfig{
		LLM:          llmClient,
		Instructions: store,
	}
	if redisClient != nil {
		hostname, _ := os.Hostname()
		notifier := prompt.NewNotifier(redisClient, cfg.Prompt.ReloadChannel, hostname+"-"+id.NewString(), store)
		servicesCfg.Broadcaster = notifier

		go func() {
			if err := notifier.Run(runCtx); err != nil {
				slog.ErrorContext(runCtx, "reload notifier stopped", "error", err)
			}
		}()
	}

	services := service.NewServices(servicesCfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, llmClient)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second, // model calls are not bounded by the service
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")
	stopRun()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, llmClient llm.Client) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → RequestID tags logs → Logger
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.CORS.AllowedOrigins}))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		Info: handler.ServiceInfo{
			Name:           cfg.OTel.ServiceName,
			Version:        cfg.Version,
			Model:          llmClient.Model(),
			Provider:       llmClient.Provider(),
			CustomEndpoint: cfg.LLM.CustomEndpoint(),
		},
	})

	return router
}

const banner = `
 ____  _____ ____  ____   ___  _   _ ____   ___
|  _ \| ____/ ___||  _ \ / _ \| \ | |  _ \ / _ \
| |_) |  _| \___ \| |_) | | | |  \| | | | | | | |
|  _ <| |___ ___) |  __/| |_| | |\  | |_| | |_| |
|_| \_\_____|____/|_|    \___/|_| \_|____/ \___/
`
