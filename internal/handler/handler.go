package handler

import (
	"embed"
	"html/template"

	"fraud-detector/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded HTML pages.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// Handler handles HTTP requests
type Handler struct {
	scanner *service.Scanner
	game    *service.Game
	logger  *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(scanner *service.Scanner, game *service.Game, logger *zap.Logger) *Handler {
	return &Handler{
		scanner: scanner,
		game:    game,
		logger:  logger,
	}
}

// RegisterRoutes registers the HTML pages and the JSON API. Game routes
// expect the session middleware to have run.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.ScanPage)
	r.POST("/", h.Scan)

	r.GET("/game", h.GamePage)
	r.POST("/game", h.GameAnswer)
	r.GET("/reset-game", h.ResetGame)

	r.GET("/history", h.HistoryPage)
	r.GET("/history/export.csv", h.ExportCSV)
	r.GET("/scores", h.ScoresPage)

	api := r.Group("/api/v1")
	{
		api.POST("/scan", h.ScanJSON)
		api.GET("/history", h.GetHistory)
		api.GET("/scores", h.GetScores)
		api.GET("/stats", h.GetStats)
	}

	// Health check
	r.GET("/health", h.HealthCheck)
}
