// Package main provides the CLI entry point for projdash.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/projdash-go/pkg/projdash"
	"github.com/ukaji3/projdash-go/pkg/projdash/store"
)

var (
	verbose       bool
	outputPath    string
	dashboardName string
	headerRow     int
	onMissing     string
	idPattern     string
	spreadsheetID string
	credentials   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "projdash",
		Short: "Summarise project sheets into a dashboard",
		Long: `projdash reads every project sheet of a workbook (a tab whose name carries
a four digit project id) and writes one summary row per project to the
dashboard sheet, then formats it.

The workbook is either a local .xlsx file or, with --spreadsheet-id, a
Google Sheets spreadsheet.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			log.SetFormatter(&log.TextFormatter{
				FullTimestamp: true,
			})
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	flags.StringVarP(&outputPath, "output", "o", "", "Write the .xlsx workbook here instead of in place")
	flags.StringVar(&dashboardName, "dashboard", "Dashboard", "Name of the dashboard sheet")
	flags.IntVar(&headerRow, "header-row", 1, "Row of the dashboard header (rows above are kept)")
	flags.StringVar(&idPattern, "id-pattern", projdash.DefaultProjectIDPattern, "Pattern matching the project id in sheet names; its first capture group, if any, is the id")
	flags.StringVar(&spreadsheetID, "spreadsheet-id", "", "Google Sheets spreadsheet id")
	flags.StringVar(&credentials, "credentials", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"), "Service account key for Google Sheets")

	buildCmd := &cobra.Command{
		Use:   "build [input.xlsx]",
		Short: "Rebuild the dashboard from all project sheets and format it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVar(&onMissing, "on-missing", string(projdash.MissingSheetNull), "What to do when a project sheet vanishes mid-build: null or abort")

	formatCmd := &cobra.Command{
		Use:   "format [input.xlsx]",
		Short: "Clear and reapply dashboard formatting without touching data",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFormat,
	}

	rootCmd.AddCommand(buildCmd, formatCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	return withBuilder(args, func(b *projdash.Builder) error {
		table, err := b.Build()
		if err != nil {
			return err
		}

		fields := log.Fields{"projects": len(table.Records)}
		missing := table.MissingSheets()
		if len(missing) > 0 {
			// null rows are blank on the dashboard, so name them here
			fields["missing"] = strings.Join(missing, ", ")
			log.WithFields(fields).Warn("Dashboard built with empty rows")
			return nil
		}
		log.WithFields(fields).Info("Dashboard built")
		return nil
	})
}

func runFormat(cmd *cobra.Command, args []string) error {
	return withBuilder(args, func(b *projdash.Builder) error {
		if err := b.ClearFormat(); err != nil {
			return err
		}
		if err := b.Format(); err != nil {
			return err
		}
		log.Info("Dashboard formatted")
		return nil
	})
}

// withBuilder opens the workbook, runs fn and saves local workbooks on success.
func withBuilder(args []string, fn func(*projdash.Builder) error) error {
	opts, err := options()
	if err != nil {
		return err
	}

	if spreadsheetID != "" {
		if len(args) > 0 {
			return errors.New("give either an input file or --spreadsheet-id, not both")
		}
		if credentials == "" {
			return errors.New("--credentials is required with --spreadsheet-id")
		}
		gs, err := store.NewGSheets(context.Background(), credentials, spreadsheetID)
		if err != nil {
			return err
		}
		b, err := projdash.NewBuilder(gs, opts)
		if err != nil {
			return err
		}
		return fn(b)
	}

	if len(args) == 0 {
		return errors.New("an input file or --spreadsheet-id is required")
	}
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	wb, err := store.OpenXLSX(inputPath)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	b, err := projdash.NewBuilder(wb, opts)
	if err != nil {
		return err
	}
	if err := fn(b); err != nil {
		return err
	}

	if outputPath != "" {
		return wb.SaveAs(outputPath)
	}
	return wb.Save()
}

func options() (projdash.Options, error) {
	opts := projdash.DefaultOptions()
	opts.DashboardName = dashboardName
	opts.HeaderRow = headerRow
	if onMissing != "" {
		opts.MissingSheet = projdash.MissingSheetPolicy(onMissing)
	}
	if idPattern != projdash.DefaultProjectIDPattern {
		c, err := projdash.NewClassifier(idPattern)
		if err != nil {
			return opts, err
		}
		opts.Classifier = c
	}
	return opts, nil
}
