package main

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v3"

	"github.com/mind-engage/mindengage-quiz/internal/config"
	"github.com/mind-engage/mindengage-quiz/internal/grading"
)

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "Score one answer against a reference answer and print the result",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "answer",
				Aliases: []string{"a"},
				Usage:   "User answer text",
			},
			&cli.StringFlag{
				Name:    "reference",
				Aliases: []string{"r"},
				Usage:   "Reference answer text",
			},
		},
		Action: cmdScore,
	}
}

func cmdScore(_ context.Context, cmd *cli.Command) error {
	cfg := config.FromEnv()
	s := grading.NewScorer(grading.WithOverlapThreshold(cfg.OverlapThreshold))

	res := s.Explain(cmd.String("answer"), cmd.String("reference"))
	res.Score = grading.Round2(res.Score)

	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
