package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/app"
	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/cache"
	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/config"
	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/domain"
	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/infra/forms"
	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/infra/memory"
	pgloader "github.com/Chris-topher0910/quiz-code-scanner-score/internal/infra/postgres"
	redisinfra "github.com/Chris-topher0910/quiz-code-scanner-score/internal/infra/redis"
	transport "github.com/Chris-topher0910/quiz-code-scanner-score/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz session server",
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
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	// External sources in order of preference: the form-fetch service, a
	// Postgres question_sets table, or the built-in defaults for demos.
	var loader memory.QuestionLoader
	switch {
	case cfg.Forms.URL != "":
		timeout := config.TTLDuration(cfg.Forms.Timeout, 10*time.Second)
		loader = forms.NewClient(cfg.Forms.URL, timeout)
	case pool != nil:
		loader = pgloader.NewQuestionLoader(pool)
	default:
		loader = memory.NewStaticLoader(map[string]domain.QuestionSet{
			"default": domain.DefaultQuestionSet(),
		})
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var source app.QuestionSource
	if redisClient != nil {
		source = redisinfra.NewQuestionRepository(redisClient, loader, quizTTL)
	} else {
		source = memory.NewQuestionRepository(loader, quizTTL)
	}

	var kv cache.KeyValueStore
	if redisClient != nil {
		kv = redisinfra.NewKVStore(redisClient)
	} else {
		log.Printf("redis not configured; session history will not survive restarts")
		kv = memory.NewKVStore()
	}

	service := app.NewSessionService(source, cache.New(kv))
	handler := transport.NewSessionHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", handler.ServeWS)
	mux.HandleFunc("/history", handler.ServeHistory)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz session server on :%s", finalPort)
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
