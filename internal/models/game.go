package models

// Level is the competency tier derived from a player's score.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelExpert       Level = "Expert"
)

// LevelFor maps a cumulative correct-answer count to a level.
func LevelFor(score int) Level {
	switch {
	case score < 3:
		return LevelBeginner
	case score < 6:
		return LevelIntermediate
	default:
		return LevelExpert
	}
}

// GameScoreRecord is a snapshot of a game session taken on every game request.
type GameScoreRecord struct {
	ID    int64 `json:"id" db:"id"`
	Score int   `json:"score" db:"score"`
	Total int   `json:"total" db:"total"`
	Level Level `json:"level" db:"level"`
}

// SessionState is the server-held progress of one browser session.
type SessionState struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// QuizQuestion is one entry of the training game.
type QuizQuestion struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Answer Label  `json:"answer"`
	Reason string `json:"reason"`
}

// AnswerForm is the form posted by the game page.
type AnswerForm struct {
	Choice     Label  `form:"choice" binding:"required"`
	Correct    Label  `form:"correct"`
	Reason     string `form:"reason"`
	QuestionID *int   `form:"question_id"`
}

// GameView is everything the game page needs to render.
type GameView struct {
	Question *QuizQuestion
	Feedback string
	Score    int
	Total    int
	Level    Level
}
