package handler

import (
	"errors"
	"html/template"
	"net/http"

	"fraud-detector/internal/middleware"
	"fraud-detector/internal/models"
	"fraud-detector/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScanPage renders the empty scan form
func (h *Handler) ScanPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":      "Scan",
		"email_text": "",
	})
}

// Scan classifies the posted email. A missing email field counts as empty.
func (h *Handler) Scan(c *gin.Context) {
	email := c.PostForm("email")

	res, err := h.scanner.Scan(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("Failed to scan email", zap.Error(err))
		h.errorPage(c, http.StatusInternalServerError, "Something went wrong while scanning.")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":            "Scan",
		"result":           res.Record.Result,
		"confidence":       res.Record.Confidence,
		"email_text":       email,
		"highlighted_text": template.HTML(res.HighlightedText), // escaped by the scanner
	})
}

// GamePage shows a random question
func (h *Handler) GamePage(c *gin.Context) {
	view, err := h.game.Show(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.logger.Error("Failed to show game", zap.Error(err))
		h.errorPage(c, http.StatusInternalServerError, "Something went wrong while loading the game.")
		return
	}
	h.renderGame(c, view)
}

// GameAnswer grades the posted answer
func (h *Handler) GameAnswer(c *gin.Context) {
	var form models.AnswerForm
	if err := c.ShouldBind(&form); err != nil {
		h.errorPage(c, http.StatusBadRequest, "The answer form is incomplete.")
		return
	}

	view, err := h.game.Answer(c.Request.Context(), middleware.SessionID(c), form)
	if errors.Is(err, service.ErrUnknownQuestion) || errors.Is(err, service.ErrInvalidAnswer) {
		h.errorPage(c, http.StatusBadRequest, "The answer form is invalid.")
		return
	}
	if err != nil {
		h.logger.Error("Failed to grade answer", zap.Error(err))
		h.errorPage(c, http.StatusInternalServerError, "Something went wrong while grading.")
		return
	}
	h.renderGame(c, view)
}

// ResetGame clears the session and starts over
func (h *Handler) ResetGame(c *gin.Context) {
	if err := h.game.Reset(c.Request.Context(), middleware.SessionID(c)); err != nil {
		h.logger.Error("Failed to reset game", zap.Error(err))
		h.errorPage(c, http.StatusInternalServerError, "Something went wrong while resetting.")
		return
	}
	c.Redirect(http.StatusFound, "/game")
}

// HistoryPage lists all scans, newest first
func (h *Handler) HistoryPage(c *gin.Context) {
	scans, err := h.scanner.History(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get scan history", zap.Error(err))
		h.errorPage(c, http.StatusInternalServerError, "Something went wrong while loading the history.")
		return
	}
	c.HTML(http.StatusOK, "history.html", gin.H{
		"title": "History",
		"scans": scans,
	})
}

// ScoresPage lists all game snapshots, newest first
func (h *Handler) ScoresPage(c *gin.Context) {
	scores, err := h.game.Scores(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get game scores", zap.Error(err))
		h.errorPage(c, http.StatusInternalServerError, "Something went wrong while loading the scores.")
		return
	}
	c.HTML(http.StatusOK, "scores.html", gin.H{
		"title":  "Scores",
		"scores": scores,
	})
}

func (h *Handler) renderGame(c *gin.Context, view *models.GameView) {
	c.HTML(http.StatusOK, "game.html", gin.H{
		"title":    "Training game",
		"question": view.Question,
		"feedback": view.Feedback,
		"score":    view.Score,
		"total":    view.Total,
		"level":    view.Level,
	})
}

func (h *Handler) errorPage(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"title":   http.StatusText(status),
		"message": message,
	})
}
