// Package main provides the CLI entry point for catalogjson.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/catalogjson-go/pkg/catalog"
	"github.com/ukaji3/catalogjson-go/pkg/catalog/config"
	"github.com/ukaji3/catalogjson-go/pkg/catalog/output"
)

var (
	configPath   string
	envFile      string
	outputPath   string
	pretty       bool
	verify       bool
	strategy     string
	headerRow    int
	dataStartRow int
	skipRows     int
	sourceRows   bool
	verbose      bool

	logger = slog.Default()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "catalogjson [input.xlsm]",
		Short: "Convert a product catalog workbook to JSON",
		Long: `catalogjson reads every sheet of a catalog workbook (row 1 decorative,
row 2 header, data from row 3) and writes one JSON document keyed by sheet
name. The CODE column is normalized so numeric codes become six-digit
strings; rows without a code get "<sheet>_<NNNN>".`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
		RunE: run,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file to load if present")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", catalog.DefaultOutputPath, `Output file path ("-" for stdout)`)
	rootCmd.Flags().BoolVar(&pretty, "pretty", true, "Pretty-print JSON output")
	rootCmd.Flags().BoolVar(&verify, "verify", true, "Re-read and check the written file")
	rootCmd.Flags().StringVar(&strategy, "strategy", string(catalog.StrategyOffset), "Row layout: offset, skip, or manual")
	rootCmd.Flags().IntVar(&headerRow, "header-row", catalog.DefaultHeaderRow, "Header row number (manual strategy)")
	rootCmd.Flags().IntVar(&dataStartRow, "data-row", catalog.DefaultDataStartRow, "First data row number (manual strategy)")
	rootCmd.Flags().IntVar(&skipRows, "skip-rows", catalog.DefaultSkipRows, "Leading rows to skip (skip strategy)")
	rootCmd.Flags().BoolVar(&sourceRows, "source-rows", false, "Use physical worksheet rows for _excel_row")

	rootCmd.AddCommand(newInspectCmd())
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	if cfg.Input == "" {
		return fmt.Errorf("no input workbook: pass a path or set %s", config.EnvInput)
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts.Logger = logger

	logger.Info("converting workbook", "input", cfg.Input, "output", cfg.Output, "strategy", opts.Strategy)

	// Extract data
	doc, err := catalog.Extract(cfg.Input, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	// Serialize to JSON
	jsonData, err := output.ToJSON(doc, cfg.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if cfg.Output == "-" {
		_, err := cmd.OutOrStdout().Write(jsonData)
		return err
	}

	if err := output.WriteFile(cfg.Output, jsonData); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("output written", "path", cfg.Output, "sheets", len(doc.Sheets), "records", doc.RecordCount())
	for _, s := range doc.Summary() {
		logger.Info("sheet summary", "sheet", s.Name, "records", s.Records, "first_codes", s.FirstCodes)
	}

	if !cfg.Verify {
		return nil
	}
	report, err := output.Verify(cfg.Output, cfg.Pretty)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	if len(report.BadCodes) > 0 {
		return fmt.Errorf("verification failed: %d records without a string CODE (first: %s)",
			len(report.BadCodes), report.BadCodes[0])
	}
	logger.Info("output verified", "size_kb", fmt.Sprintf("%.2f", float64(report.Size)/1024),
		"sheets", report.Sheets, "records", report.Records)
	return nil
}

// loadConfig layers defaults, the config file, the environment and the
// flags set on the command line, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = outputPath
	}
	if flags.Changed("pretty") {
		cfg.Pretty = pretty
	}
	if flags.Changed("verify") {
		cfg.Verify = verify
	}
	if flags.Changed("strategy") {
		cfg.Strategy = strategy
	}
	if flags.Changed("header-row") {
		cfg.HeaderRow = headerRow
	}
	if flags.Changed("data-row") {
		cfg.DataStartRow = dataStartRow
	}
	if flags.Changed("skip-rows") {
		cfg.SkipRows = skipRows
	}
	if flags.Changed("source-rows") {
		cfg.SourceRowNumbers = sourceRows
	}
	return cfg, nil
}
