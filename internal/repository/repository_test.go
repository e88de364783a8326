package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"fraud-detector/internal/config"
	"fraud-detector/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	logger := zap.NewNop()

	db, err := NewDB(config.Database{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "data", "test.db"),
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, MigrateDB(db, "sqlite", logger))
	return db
}

func TestMigrateDB_Idempotent(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, MigrateDB(db, "sqlite", zap.NewNop()))
}

func TestNewDB_UnsupportedType(t *testing.T) {
	_, err := NewDB(config.Database{Type: "mysql"}, zap.NewNop())
	assert.Error(t, err)
}

func TestScanRepository_AppendOnlyNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewScanRepository(newTestDB(t), zap.NewNop())

	const n = 5
	for i := 0; i < n; i++ {
		label := models.LabelSafe
		if i%2 == 0 {
			label = models.LabelFraud
		}
		scan := &models.ScanRecord{
			Email:      fmt.Sprintf("email %d", i),
			Result:     label,
			Confidence: 50 + float64(i),
		}
		require.NoError(t, repo.CreateScan(ctx, scan))
		assert.Equal(t, int64(i+1), scan.ID)
	}

	scans, err := repo.GetAllScans(ctx)
	require.NoError(t, err)
	require.Len(t, scans, n)
	for i, scan := range scans {
		want := n - 1 - i
		assert.Equal(t, fmt.Sprintf("email %d", want), scan.Email)
		assert.Equal(t, 50+float64(want), scan.Confidence)
	}
	assert.Greater(t, scans[0].ID, scans[n-1].ID)

	counts, err := repo.CountByResult(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[models.LabelFraud])
	assert.Equal(t, 2, counts[models.LabelSafe])
}

func TestScanRepository_Empty(t *testing.T) {
	ctx := context.Background()
	repo := NewScanRepository(newTestDB(t), zap.NewNop())

	scans, err := repo.GetAllScans(ctx)
	require.NoError(t, err)
	assert.Empty(t, scans)

	counts, err := repo.CountByResult(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts[models.LabelFraud])
	assert.Equal(t, 0, counts[models.LabelSafe])
}

func TestGameScoreRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGameScoreRepository(newTestDB(t), zap.NewNop())

	snapshots := []models.GameScoreRecord{
		{Score: 0, Total: 0, Level: models.LevelBeginner},
		{Score: 1, Total: 1, Level: models.LevelBeginner},
		{Score: 3, Total: 4, Level: models.LevelIntermediate},
	}
	for i := range snapshots {
		require.NoError(t, repo.CreateGameScore(ctx, &snapshots[i]))
		assert.NotZero(t, snapshots[i].ID)
	}

	scores, err := repo.GetAllGameScores(ctx)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, 3, scores[0].Score)
	assert.Equal(t, 4, scores[0].Total)
	assert.Equal(t, models.LevelIntermediate, scores[0].Level)
	assert.Equal(t, 0, scores[2].Score)

	count, err := repo.CountGameScores(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
