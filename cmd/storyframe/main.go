package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/eringen/storyframe"
)

type appKey struct{}

// prepare loads the configuration and builds the App before any command
// runs. Commands read it back with appFrom.
func prepare(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := storyframe.LoadConfig(cmd.String("config"))
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	log, err := storyframe.NewLogger(cfg.LogLevel)
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", storyframe.Version), zap.String("runtime", runtime.Version()))

	app := storyframe.New(cfg, storyframe.DefaultViews(),
		storyframe.WithLogger(log),
		storyframe.WithStaticDir(cmd.String("static")),
	)
	return context.WithValue(ctx, appKey{}, app), nil
}

func appFrom(ctx context.Context) *storyframe.App {
	app, _ := ctx.Value(appKey{}).(*storyframe.App)
	return app
}

func cleanup(ctx context.Context, _ *cli.Command) (err error) {
	if app := appFrom(ctx); app != nil {
		err = multierr.Append(err, app.Close())
	}
	return err
}

func serve(ctx context.Context, _ *cli.Command) error {
	return appFrom(ctx).Start(ctx)
}

func render(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("render: expected exactly one SLUG")
	}
	return appFrom(ctx).RenderArticle(ctx, os.Stdout, cmd.Args().First())
}

func snapshot(ctx context.Context, cmd *cli.Command) error {
	res, err := appFrom(ctx).Mirror(ctx, cmd.Bool("thumbs"))
	fmt.Printf("documents: %d, pruned: %d, thumbnails: %d\n", res.Documents, res.Pruned, res.Thumbnails)
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "storyframe",
		Usage:           "server-rendered articles from a structured content source",
		Version:         storyframe.Version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "static", Value: "public", Usage: "serve and write static files under `DIR`"},
			&cli.StringFlag{Name: "log-level", Usage: "override the configured log `LEVEL`"},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serves the site until interrupted",
				Before: prepare,
				After:  cleanup,
				Action: serve,
			},
			{
				Name:      "render",
				Usage:     "Renders one article page to STDOUT",
				ArgsUsage: "SLUG",
				Before:    prepare,
				After:     cleanup,
				Action:    render,
			},
			{
				Name:  "snapshot",
				Usage: "Mirrors the content source into the local database",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "thumbs", Usage: "also generate card thumbnails"},
				},
				Before: prepare,
				After:  cleanup,
				Action: snapshot,
			},
			{
				Name:  "version",
				Usage: "Prints the version",
				Action: func(context.Context, *cli.Command) error {
					fmt.Printf("storyframe %s\n", storyframe.Version)
					return nil
				},
			},
		},
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
