package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bravedhq/beelearn/internal/lesson"
	"github.com/bravedhq/beelearn/internal/llm"
	"github.com/bravedhq/beelearn/internal/progress"
	"github.com/bravedhq/beelearn/internal/server"
	"github.com/bravedhq/beelearn/internal/social"
	"github.com/bravedhq/beelearn/internal/store"
	"github.com/bravedhq/beelearn/internal/topics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the lesson API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Listen port (overrides PORT env var, default 3000)")
	serveCmd.Flags().String("store", "memory", "User store backend: memory or sqlite")
	serveCmd.Flags().String("db", "", "SQLite database path (overrides BEELEARN_DB env var)")
}

func runServe(cmd *cobra.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx := cmd.Context()

	provider, err := llm.NewProviderFromEnv(ctx, log)
	if err != nil {
		return err
	}

	userStore, cleanup, err := openStore(cmd)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	engine := progress.NewEngine(userStore, social.NewSimulatedPoster(log), log)
	selector := topics.NewSelector(provider, topics.DefaultConfig(), log)
	generator := lesson.NewGenerator(provider, engine, lesson.DefaultConfig(), log)

	srv := server.New(engine, selector, generator, log)

	port, _ := cmd.Flags().GetString("port")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "3000"
	}

	httpSrv := &http.Server{
		Addr:    ":" + port,
		Handler: srv.Router(),
	}

	notifyCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-notifyCtx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// openStore picks the user store backend. The cleanup func is non-nil for
// backends that hold resources.
func openStore(cmd *cobra.Command) (store.UserStore, func(), error) {
	backend, _ := cmd.Flags().GetString("store")
	switch backend {
	case "", "memory":
		return store.NewMemoryStore(), nil, nil
	case "sqlite":
		path, _ := cmd.Flags().GetString("db")
		if path == "" {
			var err error
			path, err = store.DefaultDBPath()
			if err != nil {
				return nil, nil, fmt.Errorf("resolve database path: %w", err)
			}
		} else if err := store.EnsureDir(path); err != nil {
			return nil, nil, fmt.Errorf("create database directory: %w", err)
		}
		s, err := store.OpenSQLite(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return s, func() { s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
