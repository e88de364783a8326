package repository

import (
	"context"
	"fmt"

	"fraud-detector/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type GameScoreRepository interface {
	CreateGameScore(ctx context.Context, score *models.GameScoreRecord) error
	GetAllGameScores(ctx context.Context) ([]*models.GameScoreRecord, error)
	CountGameScores(ctx context.Context) (int, error)
}

type gameScoreRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewGameScoreRepository(db *sqlx.DB, logger *zap.Logger) GameScoreRepository {
	return &gameScoreRepository{db: db, logger: logger}
}

func (r *gameScoreRepository) CreateGameScore(ctx context.Context, score *models.GameScoreRecord) error {
	query := r.db.Rebind(`INSERT INTO game_scores (score, total, level) VALUES (?, ?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, query, score.Score, score.Total, score.Level).Scan(&score.ID); err != nil {
		return fmt.Errorf("failed to save game score: %w", err)
	}
	return nil
}

// GetAllGameScores returns every snapshot, newest first.
func (r *gameScoreRepository) GetAllGameScores(ctx context.Context) ([]*models.GameScoreRecord, error) {
	scores := []*models.GameScoreRecord{}
	query := `SELECT id, score, total, level FROM game_scores ORDER BY id DESC`
	if err := r.db.SelectContext(ctx, &scores, query); err != nil {
		return nil, fmt.Errorf("failed to query game scores: %w", err)
	}
	return scores, nil
}

func (r *gameScoreRepository) CountGameScores(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM game_scores`); err != nil {
		return 0, fmt.Errorf("failed to count game scores: %w", err)
	}
	return count, nil
}
