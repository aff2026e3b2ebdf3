package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bhaviksharmawork/Quizzer/internal/app"
	"github.com/bhaviksharmawork/Quizzer/internal/domain"
	pgstore "github.com/bhaviksharmawork/Quizzer/internal/infra/postgres"
	pgmigrations "github.com/bhaviksharmawork/Quizzer/internal/infra/postgres/migrations"
	redisstore "github.com/bhaviksharmawork/Quizzer/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestRoomSessionEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	applyMigrations(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	store := redisstore.NewQuizStore(redisClient, pgstore.NewQuizStore(pool), 5*time.Minute)
	registry := app.NewRegistry(store)
	sender := &recordingSender{}
	coordinator := app.NewCoordinator(registry, store, sender)

	// Host authors a quiz; it lands in Postgres and warms the cache.
	coordinator.SaveQuiz(ctx, "host", "111111", domain.QuizDraft{
		Title:     "Capitals",
		TimeLimit: 20,
		Questions: []domain.QuestionDraft{
			{Question: "Capital of France?", Answers: []string{"Paris", "London", "Rome", "Berlin"}, CorrectIndex: 0},
		},
	})
	saved, ok := sender.last("host", app.EventQuizSaved).(app.QuizSaved)
	if !ok || !saved.Success {
		t.Fatalf("expected successful save, got %+v", saved)
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM quizzes WHERE id='111111'`).Scan(&count); err != nil || count != 1 {
		t.Fatalf("expected quiz row in postgres, count=%d err=%v", count, err)
	}

	// Players can now join the room the quiz was saved for.
	coordinator.JoinRoom(ctx, "c1", "111111", "Ann")
	coordinator.JoinRoom(ctx, "c2", "111111", "Ben")
	state, ok := sender.last("c2", app.EventRoomState).(app.RoomState)
	if !ok || state.UserCount != 2 || state.QuizTitle != "Capitals" {
		t.Fatalf("unexpected room state: %+v", state)
	}

	coordinator.SubmitScore(ctx, "c1", "111111", "Ann", 300, 3, 4, 40)
	coordinator.SubmitScore(ctx, "c2", "111111", "Ben", 300, 3, 4, 30)
	rank, ok := sender.last("c2", app.EventYourRank).(app.YourRank)
	if !ok || rank.Rank != 1 || rank.TotalPlayers != 2 {
		t.Fatalf("expected Ben first on tie-break, got %+v", rank)
	}
}

func applyMigrations(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quizzer", "POSTGRES_PASSWORD": "quizzerpass", "POSTGRES_DB": "quizzerdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quizzer:quizzerpass@%s:%s/quizzerdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}

type recordedEvent struct {
	connectionID string
	event        string
	payload      any
}

type recordingSender struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (s *recordingSender) Send(connectionID, event string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, recordedEvent{connectionID: connectionID, event: event, payload: payload})
}

func (s *recordingSender) last(connectionID, event string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].connectionID == connectionID && s.events[i].event == event {
			return s.events[i].payload
		}
	}
	return nil
}
