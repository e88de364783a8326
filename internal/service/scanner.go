package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"fraud-detector/internal/metrics"
	"fraud-detector/internal/models"
	"fraud-detector/internal/repository"
	"fraud-detector/internal/textnorm"

	"go.uber.org/zap"
)

const (
	highlightOpen  = `<span class="highlight">`
	highlightClose = `</span>`
)

// Predictor labels normalized text.
type Predictor interface {
	Predict(text string) (models.Label, float64)
}

// Scanner classifies submitted emails and logs every scan.
type Scanner struct {
	model  Predictor
	scans  repository.ScanRepository
	logger *zap.Logger
}

// NewScanner creates a new scanner service
func NewScanner(model Predictor, scans repository.ScanRepository, logger *zap.Logger) *Scanner {
	return &Scanner{
		model:  model,
		scans:  scans,
		logger: logger,
	}
}

// Scan normalizes and classifies email, stores the original text with the
// verdict and returns the record together with an HTML-safe rendering of the
// email in which suspicious words are highlighted for fraud verdicts.
func (s *Scanner) Scan(ctx context.Context, email string) (*models.ScanResult, error) {
	start := time.Now()
	label, confidence := s.model.Predict(textnorm.Normalize(email))
	metrics.ClassifyDuration.Observe(time.Since(start).Seconds())

	record := &models.ScanRecord{
		Email:      email,
		Result:     label,
		Confidence: confidence,
	}
	if err := s.scans.CreateScan(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to log scan: %w", err)
	}
	metrics.ScansTotal.WithLabelValues(string(label)).Inc()

	highlighted := html.EscapeString(email)
	if label == models.LabelFraud {
		highlighted = Highlight(highlighted, highlightOpen, highlightClose)
	}

	s.logger.Debug("Email scanned",
		zap.Int64("scan_id", record.ID),
		zap.String("result", string(label)),
		zap.Float64("confidence", confidence))

	return &models.ScanResult{
		Record:          record,
		HighlightedText: highlighted,
	}, nil
}

// History returns all scans, newest first.
func (s *Scanner) History(ctx context.Context) ([]*models.ScanRecord, error) {
	return s.scans.GetAllScans(ctx)
}

// Stats counts scans per verdict.
func (s *Scanner) Stats(ctx context.Context) (*models.ScanStats, error) {
	byResult, err := s.scans.CountByResult(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.ScanStats{ByResult: byResult}
	for _, n := range byResult {
		stats.TotalScans += n
	}
	return stats, nil
}
