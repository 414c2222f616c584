package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	auth "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/config"
	"github.com/mind-engage/mindengage-quiz/internal/quiz"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Load a question bank file into the configured database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Bank file to import (.json, .yaml or .yml)",
				Required: true,
			},
		},
		Action: cmdImport,
	}
}

func hashCommand() *cli.Command {
	return &cli.Command{
		Name:  "hash-password",
		Usage: "Print a bcrypt hash for ADMIN_PASS_HASH",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "password",
				Usage:    "Admin password to hash",
				Required: true,
			},
		},
		Action: cmdHash,
	}
}

func cmdImport(ctx context.Context, cmd *cli.Command) error {
	cfg := config.FromEnv()
	path := cmd.String("file")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening bank file: %w", err)
	}
	defer f.Close()

	qs, err := quiz.DecodeQuestions(f, quiz.FormatFromName(path))
	if err != nil {
		return err
	}
	if err := quiz.Validate(qs); err != nil {
		return fmt.Errorf("bank file %s: %w", path, err)
	}

	dbh, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbh.Close()

	if err := quiz.NewSQLStore(dbh).Save(ctx, qs); err != nil {
		return fmt.Errorf("importing bank: %w", err)
	}
	slog.Info("question bank imported", "file", path, "questions", len(qs), "driver", cfg.DBDriver)
	return nil
}

func cmdHash(_ context.Context, cmd *cli.Command) error {
	h, err := auth.HashPassword(cmd.String("password"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, h)
	return err
}
