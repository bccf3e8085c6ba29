// Package engine orchestrates the per-statement pipeline: extract,
// match, normalize, resolve, place.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Veraticus/statement-sorter/internal/common"
	"github.com/Veraticus/statement-sorter/internal/dates"
	"github.com/Veraticus/statement-sorter/internal/extract"
	"github.com/Veraticus/statement-sorter/internal/model"
	"github.com/Veraticus/statement-sorter/internal/organize"
	"github.com/Veraticus/statement-sorter/internal/rules"
)

// Config holds the knobs for a sorting run.
type Config struct {
	Progress func(done, total int)
	Layout   organize.Options
	Mode     organize.Mode
}

// Sorter runs candidate statements through the pipeline and collects
// their outcomes. Files are processed one at a time; nothing is shared
// between them.
type Sorter struct {
	extractor extract.Extractor
	rules     *rules.Set
	placer    *organize.Placer
	cfg       Config
}

// New creates a sorter with the given collaborators.
func New(extractor extract.Extractor, set *rules.Set, cfg Config) *Sorter {
	return &Sorter{
		extractor: extractor,
		rules:     set,
		placer:    organize.NewPlacer(cfg.Mode),
		cfg:       cfg,
	}
}

// Run processes every PDF in inputDir, in name order, and returns the
// run summary. An unreadable input directory is the only fatal error;
// per-file failures are recorded and the run continues.
func (s *Sorter) Run(ctx context.Context, inputDir string) (model.Summary, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to read input directory %s: %w", inputDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	var summary model.Summary
	for i, name := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outcome := s.process(filepath.Join(inputDir, name))
		summary.Record(outcome)
		s.report(name, outcome)

		if s.cfg.Progress != nil {
			s.cfg.Progress(i+1, len(files))
		}
	}

	return summary, nil
}

// process runs one statement through the pipeline and always produces
// an outcome, never an error.
func (s *Sorter) process(path string) model.Outcome {
	text, err := s.extractor.FirstPageText(path)
	if err != nil {
		return skipped(path, err.Error())
	}

	rule, ok := s.rules.Match(text)
	if !ok {
		return skipped(path, common.ErrNoSignature.Error())
	}

	raw := s.rules.ExtractDate(text, rule)
	if raw == "" {
		return skipped(path, fmt.Sprintf("%v for %s", common.ErrNoDate, rule.Name))
	}

	date, err := dates.Normalize(raw)
	if err != nil {
		return skipped(path, err.Error())
	}

	dest := organize.Resolve(rule, date, s.cfg.Layout)
	return s.placer.Place(path, dest)
}

// report emits the single outcome line for a file.
func (s *Sorter) report(name string, o model.Outcome) {
	switch o.Status {
	case model.StatusRenamed:
		if s.cfg.Mode.DryRun {
			slog.Info("Would rename statement", "file", name, "destination", o.Destination)
			return
		}
		slog.Info("Renamed statement", "file", name, "destination", o.Destination)
	case model.StatusSkipped:
		slog.Warn("Skipped statement", "file", name, "reason", o.Reason)
	case model.StatusFailed:
		slog.Error("Failed to place statement", "file", name, "reason", o.Reason)
	}
}

func skipped(path, reason string) model.Outcome {
	return model.Outcome{File: path, Status: model.StatusSkipped, Reason: reason}
}
