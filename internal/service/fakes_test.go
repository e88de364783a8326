package service

import (
	"context"
	"errors"
	"sync"

	"fraud-detector/internal/models"
)

var errStoreDown = errors.New("store down")

type fakeScanRepo struct {
	mu    sync.Mutex
	scans []*models.ScanRecord
	err   error
}

func (f *fakeScanRepo) CreateScan(_ context.Context, scan *models.ScanRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	scan.ID = int64(len(f.scans) + 1)
	cp := *scan
	f.scans = append(f.scans, &cp)
	return nil
}

func (f *fakeScanRepo) GetAllScans(_ context.Context) ([]*models.ScanRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.ScanRecord, 0, len(f.scans))
	for i := len(f.scans) - 1; i >= 0; i-- {
		out = append(out, f.scans[i])
	}
	return out, f.err
}

func (f *fakeScanRepo) CountByResult(_ context.Context) (map[models.Label]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[models.Label]int{models.LabelFraud: 0, models.LabelSafe: 0}
	for _, s := range f.scans {
		counts[s.Result]++
	}
	return counts, f.err
}

type fakeScoreRepo struct {
	mu     sync.Mutex
	scores []*models.GameScoreRecord
	err    error
}

func (f *fakeScoreRepo) CreateGameScore(_ context.Context, score *models.GameScoreRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	score.ID = int64(len(f.scores) + 1)
	cp := *score
	f.scores = append(f.scores, &cp)
	return nil
}

func (f *fakeScoreRepo) GetAllGameScores(_ context.Context) ([]*models.GameScoreRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.GameScoreRecord, 0, len(f.scores))
	for i := len(f.scores) - 1; i >= 0; i-- {
		out = append(out, f.scores[i])
	}
	return out, f.err
}

func (f *fakeScoreRepo) CountGameScores(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scores), f.err
}

func (f *fakeScoreRepo) last() *models.GameScoreRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scores[len(f.scores)-1]
}
