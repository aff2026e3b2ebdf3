package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bhaviksharmawork/Quizzer/internal/domain"
)

// QuizStore is the durable collaborator holding quiz definitions, keyed by
// room id (in-memory, Postgres, Redis-cached, etc).
type QuizStore interface {
	Get(ctx context.Context, id string) (domain.Quiz, error)
	GetAll(ctx context.Context) ([]domain.Quiz, error)
	Upsert(ctx context.Context, quiz domain.Quiz) error
}

type room struct {
	id       string
	quiz     *domain.Quiz
	members  []domain.Member
	scores   []domain.ScoreEntry
	scoreSeq uint64
}

// Registry is the authoritative in-memory map of rooms. A room materializes
// lazily the first time its id resolves against the quiz store, so a room is
// joinable the instant a quiz is saved for that id. Rooms are never deleted:
// membership shrinks to empty but the entry persists so the quiz is not lost.
//
// All quiz store I/O happens outside the registry lock, with existence
// re-checked after the call returns.
type Registry struct {
	store QuizStore
	clock func() time.Time

	mu    sync.RWMutex
	rooms map[string]*room
}

func NewRegistry(store QuizStore) *Registry {
	return NewRegistryWithClock(store, time.Now)
}

// NewRegistryWithClock allows deterministic timestamps in tests.
func NewRegistryWithClock(store QuizStore, clock func() time.Time) *Registry {
	return &Registry{
		store: store,
		clock: clock,
		rooms: make(map[string]*room),
	}
}

// EnsureRoom makes roomID joinable. If the room is not in memory it is
// materialized from the quiz store; domain.ErrRoomNotFound means the id is
// unknown to both.
func (r *Registry) EnsureRoom(ctx context.Context, roomID string) error {
	r.mu.RLock()
	_, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if ok {
		return nil
	}

	quiz, err := r.store.Get(ctx, roomID)
	if errors.Is(err, domain.ErrQuizNotFound) {
		return domain.ErrRoomNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[roomID]; !ok {
		r.rooms[roomID] = &room{id: roomID, quiz: &quiz}
	}
	return nil
}

// AddMember appends a member to the room and returns the updated display name
// list. Callers must have called EnsureRoom first.
func (r *Registry) AddMember(roomID, connectionID, displayName string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	rm.members = append(rm.members, domain.Member{
		ConnectionID: connectionID,
		DisplayName:  displayName,
		JoinedAt:     r.clock(),
	})
	return rm.displayNames(), nil
}

// RemoveMember drops the connection from whichever room holds it. It reports
// the room it left together with the remaining member names, and is a no-op
// for connections that never joined.
func (r *Registry) RemoveMember(connectionID string) (roomID, displayName string, users []string, removed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rm := range r.rooms {
		for i, m := range rm.members {
			if m.ConnectionID == connectionID {
				rm.members = append(rm.members[:i], rm.members[i+1:]...)
				return id, m.DisplayName, rm.displayNames(), true
			}
		}
	}
	return "", "", nil, false
}

// Members returns a point-in-time snapshot of the room's membership.
func (r *Registry) Members(roomID string) []domain.Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]domain.Member, len(rm.members))
	copy(out, rm.members)
	return out
}

// SetQuiz assigns a quiz to the room, creating the room if absent. Membership
// and scores are untouched.
func (r *Registry) SetQuiz(roomID string, quiz domain.Quiz) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		rm = &room{id: roomID}
		r.rooms[roomID] = rm
	}
	rm.quiz = &quiz
}

// GetQuiz resolves the room's quiz, in-memory first, falling back to the quiz
// store and caching the result onto the room. ok is false when neither side
// has a quiz for the id.
func (r *Registry) GetQuiz(ctx context.Context, roomID string) (domain.Quiz, bool, error) {
	r.mu.RLock()
	if rm, ok := r.rooms[roomID]; ok && rm.quiz != nil {
		quiz := *rm.quiz
		r.mu.RUnlock()
		return quiz, true, nil
	}
	r.mu.RUnlock()

	quiz, err := r.store.Get(ctx, roomID)
	if errors.Is(err, domain.ErrQuizNotFound) {
		return domain.Quiz{}, false, nil
	}
	if err != nil {
		return domain.Quiz{}, false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[roomID]
	if !ok {
		rm = &room{id: roomID}
		r.rooms[roomID] = rm
	}
	// A saveQuiz may have landed while the store read was in flight; the
	// in-memory copy wins in that case.
	if rm.quiz == nil {
		rm.quiz = &quiz
	}
	return *rm.quiz, true, nil
}

// QuizTitle returns the title of the room's in-memory quiz, if any.
func (r *Registry) QuizTitle(roomID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rm, ok := r.rooms[roomID]
	if !ok || rm.quiz == nil {
		return "", false
	}
	return rm.quiz.Title, true
}

// UpsertScore records a score entry for the room, replacing any prior entry
// for the same display name, and returns a snapshot of all entries.
func (r *Registry) UpsertScore(roomID string, entry domain.ScoreEntry) ([]domain.ScoreEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	rm.scoreSeq++
	entry.Seq = rm.scoreSeq
	entry.SubmittedAt = r.clock()

	replaced := false
	for i := range rm.scores {
		if rm.scores[i].DisplayName == entry.DisplayName {
			rm.scores[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		rm.scores = append(rm.scores, entry)
	}

	out := make([]domain.ScoreEntry, len(rm.scores))
	copy(out, rm.scores)
	return out, nil
}

func (rm *room) displayNames() []string {
	names := make([]string, len(rm.members))
	for i, m := range rm.members {
		names[i] = m.DisplayName
	}
	return names
}
