package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bhaviksharmawork/Quizzer/internal/app"
	"github.com/bhaviksharmawork/Quizzer/internal/config"
	"github.com/bhaviksharmawork/Quizzer/internal/domain"
	"github.com/bhaviksharmawork/Quizzer/internal/infra/memory"
	pgstore "github.com/bhaviksharmawork/Quizzer/internal/infra/postgres"
	redisstore "github.com/bhaviksharmawork/Quizzer/internal/infra/redis"
	transport "github.com/bhaviksharmawork/Quizzer/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz room server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := withMigratorConfig(ctx, cfg, applyMigrations); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "3000"
	}

	var store app.QuizStore
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		store = pgstore.NewQuizStore(pool)
	} else {
		store = memory.NewQuizStore(seedQuizzes())
		log.Printf("postgres not configured, using in-memory quiz store")
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cacheTTL := config.DurationOr(cfg.Quiz.CacheTTL, 10*time.Minute)
		store = redisstore.NewQuizStore(client, store, cacheTTL)
	}

	registry := app.NewRegistry(store)
	hub := transport.NewHub()
	coordinator := app.NewCoordinator(registry, store, hub)
	wsHandler := transport.NewWSHandler(coordinator, hub)
	apiHandler := transport.NewAPIHandler(store)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.HandleFunc("/api/quizzes", apiHandler.ListQuizzes)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  config.DurationOr(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: config.DurationOr(cfg.Server.WriteTimeout, 15*time.Second),
	}

	go func() {
		log.Printf("starting quizzer on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// seedQuizzes pre-loads the demo room so the server is joinable out of the
// box when running without Postgres.
func seedQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"111111": {
			ID:        "111111",
			Title:     "General Knowledge",
			Category:  "General",
			TimeLimit: 20,
			Questions: []domain.Question{
				{
					ID:   "1",
					Text: "What is the capital of France?",
					Options: []domain.Option{
						{ID: "A", Text: "Paris"},
						{ID: "B", Text: "London"},
						{ID: "C", Text: "Rome"},
						{ID: "D", Text: "Berlin"},
					},
					CorrectAnswer: "A",
					TimeLimit:     20,
				},
				{
					ID:   "2",
					Text: "What is 2 + 2?",
					Options: []domain.Option{
						{ID: "A", Text: "3"},
						{ID: "B", Text: "4"},
						{ID: "C", Text: "5"},
					},
					CorrectAnswer: "B",
					TimeLimit:     10,
				},
			},
		},
	}
}
