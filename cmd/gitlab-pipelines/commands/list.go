package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/savaki/gitlab-pipelines/internal/gitlab"
	"github.com/savaki/gitlab-pipelines/internal/gitrepo"
	"github.com/savaki/gox/slicex"
	"github.com/urfave/cli/v2"
)

// ListCommand returns the list command for showing recent pipelines
func ListCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List recent pipelines for a ref",
		Description: `List the most recent pipelines for a ref, newest first.

Examples:
  # List pipelines for master
  gitlab-pipelines list --ref master

  # List pipelines for the current checkout as JSON
  gitlab-pipelines list --here --json`,
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:    "ref",
				Aliases: []string{"r"},
				Usage:   "List pipelines for this ref",
			},
			&cli.BoolFlag{
				Name:  "here",
				Usage: "List pipelines for the current branch",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of pipelines to show",
				Value:   10,
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
		),
		Action: listAction,
	}
}

// listAction lists pipelines for the selected ref
func listAction(c *cli.Context) error {
	applyVerbosity(c)

	logger := zerolog.Ctx(c.Context)

	ref := c.String("ref")
	if ref == "" && c.Bool("here") {
		branch, err := gitrepo.CurrentBranch(c.Context)
		if err != nil {
			return err
		}
		ref = branch
	}
	if ref == "" {
		return fmt.Errorf("one of --ref or --here is required")
	}

	service, cfg, err := newService(c)
	if err != nil {
		return err
	}

	records, err := service.Recent(c.Context, cfg.Project, ref, c.Int("limit"))
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Printf("No pipelines found for %s\n", ref)
		return nil
	}

	if c.Bool("json") {
		if err := displayJSON(os.Stdout, records); err != nil {
			return err
		}
	} else {
		displayPipelines(cfg.Project, ref, records)
	}

	logger.Info().
		Str("project", cfg.Project).
		Str("ref", ref).
		Int("count", len(records)).
		Msg("Retrieved pipelines")

	return nil
}

// displayPipelines prints the pipelines in a readable format
func displayPipelines(project, ref string, records []gitlab.Pipeline) {
	fmt.Println()
	fmt.Printf("Pipelines for %s (%s)\n", ref, project)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	for _, record := range records {
		sha := record.SHA
		if len(sha) > 8 {
			sha = sha[:8]
		}
		fmt.Printf("  #%-10d %-10s %s  %s\n", record.ID, record.Status, sha, record.WebURL)
	}
	fmt.Println()
}

// displayJSON writes the pipelines as JSON
func displayJSON(w io.Writer, records []gitlab.Pipeline) error {
	output := slicex.Map(records, func(record gitlab.Pipeline) map[string]any {
		return map[string]any{
			"id":         record.ID,
			"status":     record.Status,
			"ref":        record.Ref,
			"sha":        record.SHA,
			"web_url":    record.WebURL,
			"created_at": record.CreatedAt,
		}
	})

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pipelines: %w", err)
	}
	fmt.Fprintln(w, string(jsonBytes))
	return nil
}
