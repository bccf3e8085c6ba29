package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/statement-sorter/internal/cli"
	"github.com/Veraticus/statement-sorter/internal/engine"
	"github.com/Veraticus/statement-sorter/internal/extract"
	"github.com/Veraticus/statement-sorter/internal/organize"
	"github.com/Veraticus/statement-sorter/internal/rules"
)

func runSort(cmd *cobra.Command, _ []string) error {
	inputDir := viper.GetString("input.dir")
	outputRoot := viper.GetString("output.dir")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	force, _ := cmd.Flags().GetBool("force")

	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("input directory does not exist: %s", inputDir)
	}
	if !dryRun {
		if err := os.MkdirAll(outputRoot, 0o755); err != nil {
			return fmt.Errorf("could not create output directory %s: %w", outputRoot, err)
		}
	}

	set, err := rules.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	cfg := engine.Config{
		Layout: organize.Options{
			OutputRoot: outputRoot,
			ByIssuer:   viper.GetBool("organize.issuer"),
			ByYear:     viper.GetBool("organize.year"),
		},
		Mode: organize.Mode{DryRun: dryRun, Force: force},
	}

	if dryRun {
		fmt.Println(cli.FormatWarning("Dry run: no files will be moved"))
	}

	// On quiet runs the per-file log lines are suppressed, so show a
	// progress bar instead.
	var bar *progressbar.ProgressBar
	if lvl := viper.GetString("logging.level"); lvl == "warn" || lvl == "error" {
		cfg.Progress = func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Sorting statements"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}
			_ = bar.Set(done)
		}
	}

	sorter := engine.New(extract.NewPDF(), set, cfg)
	summary, err := sorter.Run(cmd.Context(), inputDir)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSummary(summary))
	fmt.Printf("Finished. Renamed %d/%d files.\n", summary.FilesRenamed, summary.FilesProcessed)
	return nil
}
