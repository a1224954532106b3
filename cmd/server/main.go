package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/network/netpoll"
	"github.com/spf13/cobra"

	"github.com/RahulRR-10/EchoSQL/internal/config"
	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/handler"
	"github.com/RahulRR-10/EchoSQL/internal/infrastructure/agent"
	infradb "github.com/RahulRR-10/EchoSQL/internal/infrastructure/database"
	"github.com/RahulRR-10/EchoSQL/internal/infrastructure/recommender"
	"github.com/RahulRR-10/EchoSQL/internal/infrastructure/renderer"
	"github.com/RahulRR-10/EchoSQL/internal/router"
	"github.com/RahulRR-10/EchoSQL/internal/usecase"
	dbpkg "github.com/RahulRR-10/EchoSQL/pkg/database"
	"github.com/RahulRR-10/EchoSQL/pkg/logger"
)

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "echosql-server",
	Short: "EchoSQL API server",
	Long: `EchoSQL API server is a high-performance HTTP API built with the Hertz framework.
It relays natural-language questions to the query agent service, persists
sessions and exchanges, and turns query results into charts and PDF reports.`,
	Version: version,
	Run:     runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "path to config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runServer(cmd *cobra.Command, args []string) {
	// Load configuration
	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	slog.Info("config loaded successfully", "config_file", cfgFile)
	slog.Info("EchoSQL server starting...",
		"version", version,
		"config", cfgFile,
	)

	// Setup Hertz to use slog
	hertzLogger := logger.NewHertzSlogAdapter(slog.Default())
	hlog.SetLogger(hertzLogger)
	hlog.SetLevel(hlog.LevelDebug)

	// Initialize database
	dbClient, err := dbpkg.NewClient(cfg.Database, slog.Default())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := infradb.Migrate(migrateCtx, dbClient); err != nil {
		cancelMigrate()
		slog.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}
	cancelMigrate()

	slog.Info("database connected successfully")

	// Repositories
	userRepo := infradb.NewUserRepository(dbClient)
	sessionRepo := infradb.NewSessionRepository(dbClient)
	messageRepo := infradb.NewMessageRepository(dbClient)
	profileRepo := infradb.NewProfileRepository(dbClient)
	bookmarkRepo := infradb.NewBookmarkRepository(dbClient)

	// External service clients
	agentClient, err := agent.NewClient(cfg.Agent.BaseURL, cfg.Agent.Timeout, slog.Default())
	if err != nil {
		slog.Error("failed to create agent client", "error", err)
		os.Exit(1)
	}

	var recommenderClient domain.RecommenderClient
	if cfg.Recommender.BaseURL != "" {
		recommenderClient, err = recommender.NewClient(cfg.Recommender.BaseURL, cfg.Recommender.Timeout, slog.Default())
		if err != nil {
			slog.Error("failed to create recommender client", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("recommender not configured, chart selection runs without recommendations")
	}

	rendererClient, err := renderer.NewClient(cfg.Renderer.BaseURL, cfg.Renderer.Timeout, slog.Default())
	if err != nil {
		slog.Error("failed to create renderer client", "error", err)
		os.Exit(1)
	}

	// Usecases
	userUsecase := usecase.NewUserUsecase(userRepo, slog.Default())
	sessionUsecase := usecase.NewSessionUsecase(sessionRepo, messageRepo, slog.Default())
	messageUsecase := usecase.NewMessageUsecase(sessionRepo, messageRepo, profileRepo, agentClient, slog.Default())
	databaseUsecase := usecase.NewDatabaseUsecase(profileRepo, slog.Default())
	bookmarkUsecase := usecase.NewBookmarkUsecase(bookmarkRepo, slog.Default())
	visualizationUsecase := usecase.NewVisualizationUsecase(messageUsecase, recommenderClient, slog.Default())
	exportUsecase := usecase.NewExportUsecase(sessionUsecase, messageUsecase, rendererClient, slog.Default())

	// Handlers
	userHandler := handler.NewUserHandler(userUsecase, cfg.JWT.Secret, slog.Default())
	sessionHandler := handler.NewSessionHandler(sessionUsecase, messageUsecase, exportUsecase, slog.Default())
	messageHandler := handler.NewMessageHandler(messageUsecase, slog.Default())
	databaseHandler := handler.NewDatabaseHandler(databaseUsecase, slog.Default())
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkUsecase, slog.Default())
	visualizationHandler := handler.NewVisualizationHandler(visualizationUsecase, slog.Default())
	whatsappHandler := handler.NewWhatsAppHandler(agentClient, profileRepo, cfg.WhatsApp, slog.Default())
	healthHandler := handler.NewHealthHandler(dbClient)

	slog.Info("handlers initialized")

	// Create Hertz server with performance optimization
	h := server.Default(
		server.WithHostPorts(cfg.GetServerAddr()),
		server.WithReadTimeout(cfg.GetReadTimeout()),
		server.WithWriteTimeout(cfg.GetWriteTimeout()),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodySize*1024*1024),
		server.WithTransport(netpoll.NewTransporter),
	)

	// Setup routes
	router.Setup(h,
		userHandler,
		sessionHandler,
		messageHandler,
		databaseHandler,
		bookmarkHandler,
		visualizationHandler,
		whatsappHandler,
		healthHandler,
	)

	slog.Info("server started successfully",
		"address", cfg.GetServerAddr(),
		"mode", cfg.Server.Mode,
	)

	// Graceful shutdown
	go func() {
		if err := h.Run(); err != nil {
			slog.Error("server run failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	dbpkg.Close(dbClient, slog.Default())

	slog.Info("server stopped gracefully")
}
