package repository

import (
	"context"
	"fmt"

	"fraud-detector/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type ScanRepository interface {
	CreateScan(ctx context.Context, scan *models.ScanRecord) error
	GetAllScans(ctx context.Context) ([]*models.ScanRecord, error)
	CountByResult(ctx context.Context) (map[models.Label]int, error)
}

type scanRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewScanRepository(db *sqlx.DB, logger *zap.Logger) ScanRepository {
	return &scanRepository{db: db, logger: logger}
}

// CreateScan appends a scan and fills in its id.
func (r *scanRepository) CreateScan(ctx context.Context, scan *models.ScanRecord) error {
	query := r.db.Rebind(`INSERT INTO scans (email, result, confidence) VALUES (?, ?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, query, scan.Email, scan.Result, scan.Confidence).Scan(&scan.ID); err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	return nil
}

// GetAllScans returns every scan, newest first.
func (r *scanRepository) GetAllScans(ctx context.Context) ([]*models.ScanRecord, error) {
	scans := []*models.ScanRecord{}
	query := `SELECT id, email, result, confidence FROM scans ORDER BY id DESC`
	if err := r.db.SelectContext(ctx, &scans, query); err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	return scans, nil
}

func (r *scanRepository) CountByResult(ctx context.Context) (map[models.Label]int, error) {
	var rows []struct {
		Result models.Label `db:"result"`
		Count  int          `db:"count"`
	}
	query := `SELECT result, COUNT(*) AS count FROM scans GROUP BY result`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count scans: %w", err)
	}

	counts := map[models.Label]int{models.LabelFraud: 0, models.LabelSafe: 0}
	for _, row := range rows {
		counts[row.Result] = row.Count
	}
	return counts, nil
}
