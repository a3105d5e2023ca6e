package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studybuddy/core/internal/adapters/aibackend"
	"github.com/studybuddy/core/internal/adapters/timetableio"
	"github.com/studybuddy/core/internal/application/services"
	"github.com/studybuddy/core/internal/infrastructure/database"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/infrastructure/server"
)

// NewTimetableCommand bulk-loads and dumps the class timetable without
// going through the HTTP API.
func NewTimetableCommand(configFile *string) *cobra.Command {
	timetableCmd := &cobra.Command{
		Use:   "timetable",
		Short: "Timetable import and export",
	}

	var file string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import timetable entries from a CSV or YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			return withTimetable(*configFile, func(ctx context.Context, svc *services.TimetableService) error {
				n, err := svc.Import(ctx, filepath.Base(file), data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries\n", n)
				return nil
			})
		},
	}
	importCmd.Flags().StringVar(&file, "file", "", "CSV or YAML file to import")
	_ = importCmd.MarkFlagRequired("file")

	var out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the timetable as ICS, CSV or YAML (chosen by file extension)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTimetable(*configFile, func(ctx context.Context, svc *services.TimetableService) error {
				data, err := exportTimetable(ctx, svc, out)
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
				return nil
			})
		},
	}
	exportCmd.Flags().StringVar(&out, "out", "timetable.ics", "output file")

	timetableCmd.AddCommand(importCmd, exportCmd)
	return timetableCmd
}

func exportTimetable(ctx context.Context, svc *services.TimetableService, path string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".ics") {
		return svc.ExportICS(ctx)
	}

	format, err := timetableio.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := svc.Export(ctx, format, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func withTimetable(configFile string, fn func(context.Context, *services.TimetableService) error) error {
	cfg, db, err := openDatabase(configFile)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	log := logger.NewNop()
	svcs, err := server.NewServices(cfg, db, aibackend.NewClient(cfg.AIBackend, log), log)
	if err != nil {
		return err
	}
	return fn(context.Background(), svcs.Timetable)
}
