// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secretstore/cmd/app/commands"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "secretstore",
		Usage:   "Versioned secret-management service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "create-key-material",
				Usage: "Generate a sealed encryption key for KEY_MATERIAL",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "id",
						Aliases: []string{"i"},
						Value:   "",
						Usage:   "Key ID (e.g., prod-key-2026)",
					},
					&cli.StringFlag{
						Name:  "kms-provider",
						Usage: "KMS provider for sealing (gcpkms, awskms, azurekeyvault, hashivault, localsecrets)",
					},
					&cli.StringFlag{
						Name:  "kms-key-uri",
						Usage: "gocloud.dev keeper URI for the sealing key",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateKeyMaterial(
						ctx,
						cmd.String("id"),
						cmd.String("kms-provider"),
						cmd.String("kms-key-uri"),
					)
				},
			},
			{
				Name:  "create-project",
				Usage: "Create a new project",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Project name",
					},
					&cli.StringFlag{
						Name:    "labels",
						Aliases: []string{"l"},
						Usage:   "JSON object of project labels",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateProject(
						ctx,
						cmd.String("name"),
						cmd.String("labels"),
						cmd.String("format"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
