// submodule cmd contains command definitions
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/quaver/internal/formatter"
	"github.com/desertthunder/quaver/internal/shared"
	"github.com/urfave/cli/v3"
)

// Export writes the cached library listing as CSV, Markdown or plain text.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	db, cache, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	tracks, err := cache.All()
	if err != nil {
		return fmt.Errorf("failed to read track cache: %w", err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("%w: run 'quaver scan' first", shared.ErrEmptyLibrary)
	}

	root := r.config.Library.Root
	format := cmd.String("format")

	var content []byte
	switch format {
	case "csv":
		if content, err = formatter.ExportToCSV(tracks); err != nil {
			return fmt.Errorf("failed to format library: %w", err)
		}
	case "markdown", "md":
		content = formatter.ExportToMarkdown(root, tracks)
	case "text", "txt":
		content = formatter.ExportToText(root, tracks)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		return r.writePlain("%s", content)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	r.logger.Info("library exported", "format", format, "path", outputPath)
	r.writePlain("✓ Library exported to %s\n", outputPath)
	return nil
}

// exportCommand handles library listing exports
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the library listing for sharing or debugging",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv, markdown or text",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (prints to stdout when empty)",
			},
		},
		Action: r.Export,
	}
}
