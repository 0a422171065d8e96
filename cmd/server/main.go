package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/audiofetch-go/api"
	"github.com/yourusername/audiofetch-go/internal/app"
	"github.com/yourusername/audiofetch-go/internal/infrastructure"
	"github.com/yourusername/audiofetch-go/pkg/logger"
)

var configPath = flag.String("config", "", "Path to config file")

func main() {
	flag.Parse()

	// Load configuration
	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
		MaxSizeMB:  config.Logging.MaxSizeMB,
		MaxBackups: config.Logging.MaxBackups,
		MaxAgeDays: config.Logging.MaxAgeDays,
		Compress:   config.Logging.Compress,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting audiofetch server",
		zap.String("version", "1.0.0"),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("books_dir", config.Library.BooksDir),
		zap.String("download_dir", config.Library.DownloadDir))

	// Runtime-mutable directories; creates the download dir up front
	paths, err := app.NewPathConfig(config.Library.BooksDir, config.Library.DownloadDir)
	if err != nil {
		log.Fatal("Failed to initialize directories", zap.Error(err))
	}

	// Initialize repository
	repo, err := infrastructure.NewSQLiteHistoryRepository(config.Database.Path)
	if err != nil {
		log.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	// Initialize search
	searchClient := infrastructure.NewYouTubeSearchClient(log)
	defer searchClient.Close()
	searchSvc := app.NewSearchService(searchClient, config.Search.CacheTTL, log)

	// Initialize download pipeline
	downloader := infrastructure.NewYTDLPDownloader(config.YTDLP.Binary, log)
	downloadMgr := app.NewDownloadManager(repo, downloader, paths, log)

	scanner := app.NewBookScanner(paths, log)

	// Setup HTTP router
	router := api.SetupRouter(scanner, searchSvc, downloadMgr, repo, paths, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// In-flight downloads are abandoned; their records stay in downloading
	// state until deleted
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
