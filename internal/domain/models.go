package domain

import "time"

// Member is a connected participant of a room. A member exists only for
// the lifetime of its connection; ConnectionID is not stable across reconnects.
type Member struct {
	ConnectionID string
	DisplayName  string
	JoinedAt     time.Time
}

// ScoreEntry records one finished quiz run for a display name. Resubmitting
// under the same name replaces the previous entry rather than accumulating.
type ScoreEntry struct {
	DisplayName    string
	Score          int
	CorrectCount   int
	TotalQuestions int
	TotalTime      int // seconds taken over the whole quiz
	SubmittedAt    time.Time
	Seq            uint64 // per-room submission counter, assigned by the registry
}

// LeaderboardEntry is the wire view of a ScoreEntry.
type LeaderboardEntry struct {
	Username       string `json:"username"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correctAnswers"`
	TotalQuestions int    `json:"totalQuestions"`
	TotalTime      int    `json:"totalTime"`
}

// Option is a possible answer, labelled "A", "B", ... by position.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question models an MCQ question with exactly one correct option,
// referenced by its label.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"question"`
	Options       []Option `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	TimeLimit     int      `json:"timeLimit,omitempty"` // seconds, overrides the quiz default
}

// Quiz is the canonical persisted/transmitted quiz shape. Quiz ids share the
// room id namespace: a quiz is addressed by the room it was assigned to.
type Quiz struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Category   string     `json:"category,omitempty"`
	Difficulty string     `json:"difficulty,omitempty"`
	TimeLimit  int        `json:"timeLimit,omitempty"` // default per-question seconds
	Questions  []Question `json:"questions"`
}

// QuizDraft is the shape hosts submit from the authoring screen. Answers are
// bare strings; CorrectIndex points into Answers.
type QuizDraft struct {
	Title      string          `json:"title"`
	Category   string          `json:"category,omitempty"`
	Difficulty string          `json:"difficulty,omitempty"`
	TimeLimit  int             `json:"timeLimit,omitempty"`
	Questions  []QuestionDraft `json:"questions"`
}

// QuestionDraft is a single authored question before canonicalization.
type QuestionDraft struct {
	Question     string   `json:"question"`
	Answers      []string `json:"answers"`
	CorrectIndex int      `json:"correctIndex"`
	TimeLimit    int      `json:"timeLimit,omitempty"`
}
