// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"userdir/internal/audit"
	auditmetrics "userdir/internal/audit/metrics"
	"userdir/internal/directory"
	directorymetrics "userdir/internal/directory/metrics"
	"userdir/internal/domain"
	"userdir/internal/platform/config"
	"userdir/internal/platform/httpserver"
	"userdir/internal/platform/logger"
	"userdir/internal/store"
	httptransport "userdir/internal/transport/http"
)

func main() {
	configFile := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, entries, err := buildStores(ctx, cfg)
	if err != nil {
		log.Error("store initialization failed", "error", err)
		os.Exit(1)
	}

	auditSvc := audit.New(entries, log, auditmetrics.New())
	directorySvc := directory.New(
		users,
		directory.BcryptHasher{},
		directory.UpperNormalizer{},
		log,
		directorymetrics.New(),
	)

	handler := httptransport.NewHandler(directorySvc, auditSvc, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	log.Info("starting userdir", "addr", cfg.Addr, "env", cfg.Env)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// buildStores selects the backing technology: postgres when DATABASE_URL is
// configured, the in-memory store otherwise. Seed data loads only into an
// empty store.
func buildStores(ctx context.Context, cfg config.Server) (store.Store[*domain.User], store.Store[*domain.AuditEntry], error) {
	if cfg.DatabaseURL == "" {
		entries := store.NewMemory[*domain.AuditEntry](nil)
		users := store.NewMemory(store.UserLogsLoader(entries))
		if cfg.SeedData {
			if err := store.Seed(ctx, users, entries); err != nil {
				return nil, nil, err
			}
		}
		return users, entries, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(ctx, db); err != nil {
		return nil, nil, err
	}

	entries := store.NewPostgresAudit(db)
	users := store.NewPostgresUsers(db, entries)
	if cfg.SeedData {
		existing, err := users.GetAll(ctx)
		if err != nil {
			return nil, nil, err
		}
		if len(existing) == 0 {
			if err := store.Seed(ctx, users, entries); err != nil {
				return nil, nil, err
			}
		}
	}
	return users, entries, nil
}
