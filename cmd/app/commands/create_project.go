package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/allisson/secretstore/internal/app"
	"github.com/allisson/secretstore/internal/config"
)

// RunCreateProject creates a new project that secrets can be stored under.
// Labels are an optional JSON object of free-form key/value pairs. Outputs
// the project ID in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateProject(ctx context.Context, name, labelsJSON, format string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	var labels map[string]string
	if labelsJSON != "" {
		if err := json.Unmarshal([]byte(labelsJSON), &labels); err != nil {
			return fmt.Errorf("failed to parse labels JSON: %w", err)
		}
	}

	projectUseCase, err := container.ProjectUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize project use case: %w", err)
	}

	project, err := projectUseCase.Create(ctx, name, labels)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	if format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(map[string]any{
			"id":     project.ID.String(),
			"name":   project.Name,
			"labels": project.Labels,
		}); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
	} else {
		fmt.Printf("Project created\n")
		fmt.Printf("  ID:   %s\n", project.ID)
		fmt.Printf("  Name: %s\n", project.Name)
		if len(project.Labels) > 0 {
			fmt.Printf("  Labels:\n")
			for k, v := range project.Labels {
				fmt.Printf("    %s: %s\n", k, v)
			}
		}
	}

	logger.Info("project created successfully",
		slog.String("project_id", project.ID.String()),
		slog.String("name", project.Name),
	)

	return nil
}
