package app

import (
	"context"
	"errors"
	"log"

	"github.com/bhaviksharmawork/Quizzer/internal/domain"
)

// Sender delivers a named event to one connection. Delivery is best-effort:
// a connection that is gone simply misses the message.
type Sender interface {
	Send(connectionID, event string, payload any)
}

// Coordinator maps inbound room-session messages onto the registry and the
// leaderboard, and fans resulting state out to the affected connections. All
// failures are contained here and converted to response events; none escape
// to crash the process or touch other rooms.
type Coordinator struct {
	registry *Registry
	store    QuizStore
	sender   Sender
}

func NewCoordinator(registry *Registry, store QuizStore, sender Sender) *Coordinator {
	return &Coordinator{registry: registry, store: store, sender: sender}
}

// JoinRoom admits a connection into a room. A connection already joined
// elsewhere is explicitly moved: old membership is removed (with a userLeft to
// the old room) before the new one is added.
func (c *Coordinator) JoinRoom(ctx context.Context, connectionID, roomID, username string) {
	if err := c.registry.EnsureRoom(ctx, roomID); err != nil {
		if !errors.Is(err, domain.ErrRoomNotFound) {
			log.Printf("join room %s: %v", roomID, err)
		}
		c.sender.Send(connectionID, EventError, "Room does not exist")
		return
	}

	prevRoom, prevName, prevUsers, moved := c.registry.RemoveMember(connectionID)
	if moved && prevRoom != roomID {
		c.broadcast(prevRoom, EventUserLeft, UserLeft{
			Username:  prevName,
			UserCount: len(prevUsers),
			Users:     prevUsers,
		})
	}

	users, err := c.registry.AddMember(roomID, connectionID, username)
	if err != nil {
		c.sender.Send(connectionID, EventError, "Room does not exist")
		return
	}

	c.broadcast(roomID, EventUserJoined, UserJoined{
		Username:  username,
		UserCount: len(users),
		Users:     users,
	})

	state := RoomState{UserCount: len(users), Users: users}
	if title, ok := c.registry.QuizTitle(roomID); ok {
		state.QuizTitle = title
	}
	c.sender.Send(connectionID, EventRoomState, state)
}

// GetQuiz resolves the room's quiz and replies to the requester only; clients
// poll for quiz content independently, so this never broadcasts.
func (c *Coordinator) GetQuiz(ctx context.Context, connectionID, roomID string) {
	payload := QuizData{RoomID: roomID}
	quiz, ok, err := c.registry.GetQuiz(ctx, roomID)
	if err != nil {
		log.Printf("get quiz %s: %v", roomID, err)
	}
	if ok {
		payload.Quiz = &quiz
	}
	c.sender.Send(connectionID, EventQuizData, payload)
}

// SaveQuiz validates and canonicalizes a quiz draft, writes it through to the
// quiz store, and only then updates in-memory room state. A store failure
// leaves any previously assigned quiz untouched.
func (c *Coordinator) SaveQuiz(ctx context.Context, connectionID, roomID string, draft domain.QuizDraft) {
	if verr := ValidateDraft(draft); verr != nil {
		c.sender.Send(connectionID, EventQuizSaved, QuizSaved{RoomID: roomID, Error: verr.Message})
		return
	}

	quiz := CanonicalQuiz(roomID, draft)
	if err := c.store.Upsert(ctx, quiz); err != nil {
		log.Printf("save quiz %s: %v", roomID, err)
		c.sender.Send(connectionID, EventQuizSaved, QuizSaved{RoomID: roomID, Error: "failed to store quiz"})
		return
	}

	c.registry.SetQuiz(roomID, quiz)
	c.sender.Send(connectionID, EventQuizSaved, QuizSaved{RoomID: roomID, Success: true})
}

// SubmitScore upserts the player's score entry, recomputes standings, answers
// the submitter with their rank, and pushes the new leaderboard to everyone
// else in the room.
func (c *Coordinator) SubmitScore(_ context.Context, connectionID, roomID, username string, score, correctAnswers, totalQuestions, totalTime int) {
	scores, err := c.registry.UpsertScore(roomID, domain.ScoreEntry{
		DisplayName:    username,
		Score:          score,
		CorrectCount:   correctAnswers,
		TotalQuestions: totalQuestions,
		TotalTime:      totalTime,
	})
	if err != nil {
		c.sender.Send(connectionID, EventError, "Room does not exist")
		return
	}

	standings := Rank(scores)
	c.sender.Send(connectionID, EventYourRank, YourRank{
		Rank:         RankOf(standings, username),
		TotalPlayers: len(standings),
		Leaderboard:  standings,
	})

	update := LeaderboardUpdate{TotalPlayers: len(standings), Leaderboard: standings}
	for _, m := range c.registry.Members(roomID) {
		if m.ConnectionID == connectionID {
			continue
		}
		c.sender.Send(m.ConnectionID, EventLeaderboardUpdate, update)
	}
}

// Disconnect removes the connection's membership, if any, and tells the
// remaining members. Safe to call for connections that never joined.
func (c *Coordinator) Disconnect(connectionID string) {
	roomID, username, users, removed := c.registry.RemoveMember(connectionID)
	if !removed {
		return
	}
	c.broadcast(roomID, EventUserLeft, UserLeft{
		Username:  username,
		UserCount: len(users),
		Users:     users,
	})
}

func (c *Coordinator) broadcast(roomID, event string, payload any) {
	for _, m := range c.registry.Members(roomID) {
		c.sender.Send(m.ConnectionID, event, payload)
	}
}
