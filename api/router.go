package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/audiofetch-go/api/handlers"
	"github.com/yourusername/audiofetch-go/api/middleware"
	"github.com/yourusername/audiofetch-go/internal/app"
	"github.com/yourusername/audiofetch-go/internal/domain"
)

// SetupRouter sets up the HTTP router
func SetupRouter(
	scanner *app.BookScanner,
	searchSvc *app.SearchService,
	downloadMgr *app.DownloadManager,
	repo domain.HistoryRepository,
	paths *app.PathConfig,
	log *zap.Logger,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	healthHandler := handlers.NewHealthHandler()
	bookHandler := handlers.NewBookHandler(scanner)
	searchHandler := handlers.NewSearchHandler(searchSvc, log)
	downloadHandler := handlers.NewDownloadHandler(downloadMgr, repo, log)
	historyHandler := handlers.NewHistoryHandler(repo, log)
	configHandler := handlers.NewConfigHandler(paths, log)

	router.GET("/health", healthHandler.Health)

	router.GET("/books", bookHandler.ListBooks)
	router.POST("/search", searchHandler.Search)

	router.POST("/download", downloadHandler.StartDownload)
	router.GET("/progress/:id", downloadHandler.GetProgress)

	router.GET("/history", historyHandler.ListHistory)
	router.DELETE("/history/:id", historyHandler.DeleteHistory)

	router.GET("/config", configHandler.GetConfig)
	router.POST("/config", configHandler.SetConfig)

	return router
}
