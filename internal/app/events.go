package app

import "github.com/bhaviksharmawork/Quizzer/internal/domain"

// Server-to-client event names.
const (
	EventRoomState         = "roomState"
	EventUserJoined        = "userJoined"
	EventUserLeft          = "userLeft"
	EventQuizData          = "quizData"
	EventQuizSaved         = "quizSaved"
	EventYourRank          = "yourRank"
	EventLeaderboardUpdate = "leaderboardUpdate"
	EventError             = "error"
)

// RoomState is sent to a joining connection only; unlike UserJoined it carries
// the quiz title, which existing members already have.
type RoomState struct {
	UserCount int      `json:"userCount"`
	Users     []string `json:"users"`
	QuizTitle string   `json:"quizTitle,omitempty"`
}

// UserJoined goes to every member of the room when someone joins.
type UserJoined struct {
	Username  string   `json:"username"`
	UserCount int      `json:"userCount"`
	Users     []string `json:"users"`
}

// UserLeft goes to the remaining members when someone disconnects or leaves.
type UserLeft struct {
	Username  string   `json:"username"`
	UserCount int      `json:"userCount"`
	Users     []string `json:"users"`
}

// QuizData answers a getQuiz request; Quiz is null when no quiz exists for the
// room, or when the store is unreachable.
type QuizData struct {
	RoomID string       `json:"roomId"`
	Quiz   *domain.Quiz `json:"quiz"`
}

// QuizSaved acknowledges a saveQuiz request.
type QuizSaved struct {
	RoomID  string `json:"roomId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// YourRank goes to the submitting connection after a score submission.
type YourRank struct {
	Rank         int                       `json:"rank"`
	TotalPlayers int                       `json:"totalPlayers"`
	Leaderboard  []domain.LeaderboardEntry `json:"leaderboard"`
}

// LeaderboardUpdate goes to every other member so standings update live as
// players finish at different times.
type LeaderboardUpdate struct {
	TotalPlayers int                       `json:"totalPlayers"`
	Leaderboard  []domain.LeaderboardEntry `json:"leaderboard"`
}
