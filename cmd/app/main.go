package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/hemolymph/internal"
	pkgconfig "github.com/starford/hemolymph/pkg/config"
)

const version = "1.0.0"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func importCards(ctx context.Context, cmd *cli.Command) error {
	file := cmd.Args().First()
	if file == "" {
		return fmt.Errorf("import: missing card file")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	n, err := internal.Import(ctx, file, cmd.Bool("replace"), internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
	if err != nil {
		return err
	}
	fmt.Printf("imported %d cards\n", n)
	return nil
}

func show(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.Args().First()
	if arg == "" {
		return fmt.Errorf("show: missing card file or id")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Show(ctx, os.Stdout, arg, internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.ServeMCP(ctx, version, internal.WithConfig(cfg))
}

func main() {
	cmd := &cli.Command{
		Name:    "hemolymph",
		Usage:   "Card database browser with search, card pages, JSON API and MCP tools",
		Version: version,
		Action:  serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the card pages and API (default)",
				Action: serve,
			},
			{
				Name:      "import",
				Usage:     "Split a JSON array of cards into the catalog",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "replace", Usage: "Overwrite cards that already exist"},
				},
				Action: importCards,
			},
			{
				Name:      "show",
				Usage:     "Print a card file or an indexed card",
				ArgsUsage: "<file|id>",
				Action:    show,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the MCP tools on stdio",
				Action: serveMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
