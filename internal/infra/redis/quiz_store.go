package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/bhaviksharmawork/Quizzer/internal/app"
	"github.com/bhaviksharmawork/Quizzer/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuizStore caches quiz documents in Redis in front of a backing store.
// Each quiz is stored as: SET quiz:{id} {JSON document} with TTL.
// Writes go through to the backing store first, then refresh the cache, so a
// cache miss after a failed write never resurrects stale content.
type QuizStore struct {
	client  *redis.Client
	backing app.QuizStore
	ttl     time.Duration
	sf      singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuizStore(client *redis.Client, backing app.QuizStore, ttl time.Duration) *QuizStore {
	return &QuizStore{
		client:  client,
		backing: backing,
		ttl:     ttl,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *QuizStore) Get(ctx context.Context, id string) (domain.Quiz, error) {
	if quiz, ok := s.cached(ctx, id); ok {
		return quiz, nil
	}

	result, err, _ := s.sf.Do(id, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if quiz, ok := s.cached(ctx, id); ok {
			return quiz, nil
		}

		quiz, err := s.backing.Get(ctx, id)
		if err != nil {
			return domain.Quiz{}, err
		}
		s.fill(ctx, quiz)
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

// GetAll always goes to the backing store; the full dump is an infrequent
// authoring-screen call and caching it would complicate invalidation.
func (s *QuizStore) GetAll(ctx context.Context) ([]domain.Quiz, error) {
	return s.backing.GetAll(ctx)
}

func (s *QuizStore) Upsert(ctx context.Context, quiz domain.Quiz) error {
	if err := s.backing.Upsert(ctx, quiz); err != nil {
		return err
	}
	s.fill(ctx, quiz)
	return nil
}

func (s *QuizStore) cached(ctx context.Context, id string) (domain.Quiz, bool) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		return domain.Quiz{}, false
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, false
	}
	return quiz, true
}

// fill is best-effort: a cache write failure only costs a future backing read.
func (s *QuizStore) fill(ctx context.Context, quiz domain.Quiz) {
	data, err := json.Marshal(quiz)
	if err != nil {
		return
	}
	_ = s.client.Set(ctx, s.key(quiz.ID), data, s.ttlWithJitter()).Err()
}

func (s *QuizStore) key(id string) string {
	return "quiz:" + id
}

func (s *QuizStore) ttlWithJitter() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(s.ttl) / 10
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return s.ttl + time.Duration(s.rnd.Int63n(jitterMax+1))
}
