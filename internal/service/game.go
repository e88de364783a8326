package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"fraud-detector/internal/metrics"
	"fraud-detector/internal/models"
	"fraud-detector/internal/repository"
	"fraud-detector/internal/session"

	"go.uber.org/zap"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidAnswer   = errors.New("invalid answer")
)

const (
	feedbackCorrect = "✅ Correct! "
	feedbackWrong   = "❌ Wrong! "
)

// Game runs the phishing training quiz. Progress is kept per session in the
// session store and every request logs a score snapshot.
type Game struct {
	questions []models.QuizQuestion
	sessions  session.Store
	scores    repository.GameScoreRepository
	strict    bool
	pick      func(n int) int
	logger    *zap.Logger
}

// GameOption customizes a Game.
type GameOption func(*Game)

// WithPicker replaces the uniform random question picker.
func WithPicker(pick func(n int) int) GameOption {
	return func(g *Game) { g.pick = pick }
}

// NewGame creates the game service. With strict grading answers are checked
// against the question set; otherwise the correct answer and reason posted
// by the client are trusted.
func NewGame(questions []models.QuizQuestion, sessions session.Store, scores repository.GameScoreRepository, strict bool, logger *zap.Logger, opts ...GameOption) *Game {
	g := &Game{
		questions: questions,
		sessions:  sessions,
		scores:    scores,
		strict:    strict,
		pick:      rand.IntN,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Show presents a random question without touching the session's progress.
func (g *Game) Show(ctx context.Context, sessionID string) (*models.GameView, error) {
	state, err := g.state(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return g.view(ctx, state, "")
}

// Answer grades one answer, updates the session and presents a new question.
// A choice that is not a known label is graded as wrong.
func (g *Game) Answer(ctx context.Context, sessionID string, form models.AnswerForm) (*models.GameView, error) {
	correct, reason, err := g.expected(form)
	if err != nil {
		return nil, err
	}

	state, err := g.state(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state.Total++
	var feedback string
	if form.Choice == correct {
		state.Score++
		feedback = feedbackCorrect + reason
		metrics.GameAnswersTotal.WithLabelValues("correct").Inc()
	} else {
		feedback = feedbackWrong + reason
		metrics.GameAnswersTotal.WithLabelValues("wrong").Inc()
	}

	if err := g.sessions.Save(ctx, sessionID, state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return g.view(ctx, state, feedback)
}

// Reset forgets the session's progress.
func (g *Game) Reset(ctx context.Context, sessionID string) error {
	if err := g.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	metrics.GameResetsTotal.Inc()
	g.logger.Debug("Game reset", zap.String("session_id", sessionID))
	return nil
}

// Scores returns every logged snapshot, newest first.
func (g *Game) Scores(ctx context.Context) ([]*models.GameScoreRecord, error) {
	return g.scores.GetAllGameScores(ctx)
}

// SnapshotCount is the number of logged snapshots.
func (g *Game) SnapshotCount(ctx context.Context) (int, error) {
	return g.scores.CountGameScores(ctx)
}

func (g *Game) expected(form models.AnswerForm) (models.Label, string, error) {
	if !g.strict {
		if !form.Correct.Valid() {
			return "", "", fmt.Errorf("%w: correct %q", ErrInvalidAnswer, form.Correct)
		}
		return form.Correct, form.Reason, nil
	}

	if form.QuestionID == nil || *form.QuestionID < 0 || *form.QuestionID >= len(g.questions) {
		return "", "", ErrUnknownQuestion
	}
	q := g.questions[*form.QuestionID]
	return q.Answer, q.Reason, nil
}

// state loads the session, starting it at zero on first access.
func (g *Game) state(ctx context.Context, sessionID string) (models.SessionState, error) {
	state, err := g.sessions.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		state = models.SessionState{}
		if err := g.sessions.Save(ctx, sessionID, state); err != nil {
			return state, fmt.Errorf("failed to start session: %w", err)
		}
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("failed to load session: %w", err)
	}
	return state, nil
}

func (g *Game) view(ctx context.Context, state models.SessionState, feedback string) (*models.GameView, error) {
	level := models.LevelFor(state.Score)

	snapshot := &models.GameScoreRecord{
		Score: state.Score,
		Total: state.Total,
		Level: level,
	}
	if err := g.scores.CreateGameScore(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to log game score: %w", err)
	}

	question := g.questions[g.pick(len(g.questions))]
	return &models.GameView{
		Question: &question,
		Feedback: feedback,
		Score:    state.Score,
		Total:    state.Total,
		Level:    level,
	}, nil
}
