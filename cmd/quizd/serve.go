package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	api "github.com/mind-engage/mindengage-quiz/internal/api/http"
	auth "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/config"
	"github.com/mind-engage/mindengage-quiz/internal/db"
	"github.com/mind-engage/mindengage-quiz/internal/grading"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
	"github.com/mind-engage/mindengage-quiz/internal/storage"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the quiz HTTP service",
		Action: cmdServe,
	}
}

func cmdServe(ctx context.Context, _ *cli.Command) error {
	cfg := config.FromEnv()

	store, closeStore, err := openBankStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	provider := quiz.NewProvider(store, quiz.ReloadPolicy(cfg.BankReload))
	bank, err := provider.Reload(ctx)
	if err != nil {
		return fmt.Errorf("loading question bank: %w", err)
	}
	slog.Info("question bank loaded", "source", cfg.BankSource, "questions", bank.Len(), "reload", cfg.BankReload)

	assets, err := storage.NewFSStore(cfg.StaticDir)
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}

	deps := api.Deps{
		Bank:          provider,
		Sink:          store,
		Scorer:        grading.NewScorer(grading.WithOverlapThreshold(cfg.OverlapThreshold)),
		Categories:    cfg.Categories,
		Pick:          quiz.RandomPicker(),
		RequireTicket: cfg.RequireTicket,
		AdminUser:     cfg.AdminUser,
		AdminPassHash: cfg.AdminPassHash,
		Assets:        assets,
		CORSOrigins:   cfg.CORSOrigins,
	}
	if cfg.TicketSecret != "" {
		deps.Tickets = auth.NewTicketService(cfg.TicketSecret, cfg.TicketTTL)
	} else if cfg.RequireTicket {
		return errors.New("REQUIRE_TICKET is set but TICKET_SECRET is empty")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("listening", "addr", cfg.HTTPAddr, "categories", cfg.Categories, "admin", cfg.AdminPassHash != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		slog.Info("shutting down server")
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

// openBankStore returns the configured bank store and a close func.
func openBankStore(ctx context.Context, cfg config.Config) (quiz.Store, func(), error) {
	switch cfg.BankSource {
	case config.BankSourceFile:
		bs, err := storage.NewFSStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("data dir: %w", err)
		}
		return quiz.NewFileSource(bs, cfg.BankKey), func() {}, nil
	case config.BankSourceDB:
		dbh, err := openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return quiz.NewSQLStore(dbh), func() { dbh.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported bank source: %s", cfg.BankSource)
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	octx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dbh, err := db.Open(octx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("db open (%s): %w", cfg.DBDriver, err)
	}
	return dbh, nil
}
