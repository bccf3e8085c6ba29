package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/statement-sorter/internal/common"
	"github.com/Veraticus/statement-sorter/internal/model"
	"github.com/Veraticus/statement-sorter/internal/organize"
	"github.com/Veraticus/statement-sorter/internal/rules"
)

// fakeExtractor serves canned first-page text keyed by file name.
type fakeExtractor struct {
	texts map[string]string
}

func (f *fakeExtractor) FirstPageText(path string) (string, error) {
	text, ok := f.texts[filepath.Base(path)]
	if !ok || text == "" {
		return "", common.ErrNoText
	}
	return text, nil
}

func writeStatement(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF"), 0o644))
}

func newSorter(t *testing.T, texts map[string]string, cfg Config) *Sorter {
	t.Helper()
	set, err := rules.New(rules.Default())
	require.NoError(t, err)
	return New(&fakeExtractor{texts: texts}, set, cfg)
}

func TestSorter_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("nordstrom statement end to end", func(t *testing.T) {
		in, out := t.TempDir(), t.TempDir()
		writeStatement(t, in, "scan001.pdf")

		s := newSorter(t, map[string]string{
			"scan001.pdf": "Contact NORDSTROM CARD SERVICES with questions. Activity December 20, 2025 to January 19, 2026.",
		}, Config{Layout: organize.Options{OutputRoot: out}})

		summary, err := s.Run(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, model.Summary{FilesProcessed: 1, FilesRenamed: 1}, summary)
		assert.FileExists(t, filepath.Join(out, "Nordstrom - 2026-01-19 Statement.pdf"))
		assert.NoFileExists(t, filepath.Join(in, "scan001.pdf"))
	})

	t.Run("chase statement lands in issuer and year folders", func(t *testing.T) {
		in, out := t.TempDir(), t.TempDir()
		writeStatement(t, in, "chase.pdf")

		s := newSorter(t, map[string]string{
			"chase.pdf": "Chase Card Services   Opening/Closing Date 12/02/23 - 01/01/24",
		}, Config{Layout: organize.Options{OutputRoot: out, ByIssuer: true, ByYear: true}})

		summary, err := s.Run(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.FilesRenamed)
		assert.FileExists(t, filepath.Join(out, "Chase_Credit_Card", "2024", "Chase_Credit_Card - 2024-01-01 Statement.pdf"))
	})

	t.Run("unmatched and unparseable files are skipped, run continues", func(t *testing.T) {
		in, out := t.TempDir(), t.TempDir()
		for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"} {
			writeStatement(t, in, name)
		}

		s := newSorter(t, map[string]string{
			"a.pdf": "an electricity bill with no known signature",
			"b.pdf": "", // extraction failure
			"c.pdf": "American Express   Closing Date March 3, 2024",
			"d.pdf": "American Express   no date label anywhere",
		}, Config{Layout: organize.Options{OutputRoot: out}})

		summary, err := s.Run(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, model.Summary{FilesProcessed: 4, FilesRenamed: 1, FilesSkipped: 3}, summary)

		// Skipped sources stay put.
		assert.FileExists(t, filepath.Join(in, "a.pdf"))
		assert.FileExists(t, filepath.Join(in, "b.pdf"))
		assert.FileExists(t, filepath.Join(in, "d.pdf"))
		assert.FileExists(t, filepath.Join(out, "Amex - 2024-03-03 Statement.pdf"))
	})

	t.Run("non-pdf files are not candidates", func(t *testing.T) {
		in, out := t.TempDir(), t.TempDir()
		writeStatement(t, in, "statement.PDF")
		require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("x"), 0o644))
		require.NoError(t, os.Mkdir(filepath.Join(in, "nested.pdf"), 0o755))

		s := newSorter(t, map[string]string{
			"statement.PDF": "American Express   Closing Date March 3, 2024",
		}, Config{Layout: organize.Options{OutputRoot: out}})

		summary, err := s.Run(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, model.Summary{FilesProcessed: 1, FilesRenamed: 1}, summary)
		assert.FileExists(t, filepath.Join(in, "notes.txt"))
	})

	t.Run("second run over a drained inbox processes nothing", func(t *testing.T) {
		in, out := t.TempDir(), t.TempDir()
		writeStatement(t, in, "amex.pdf")

		texts := map[string]string{"amex.pdf": "American Express   Closing Date March 3, 2024"}
		s := newSorter(t, texts, Config{Layout: organize.Options{OutputRoot: out}})

		first, err := s.Run(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 1, first.FilesRenamed)

		second, err := s.Run(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, model.Summary{}, second)
	})

	t.Run("dry run moves nothing and counts previews as renames", func(t *testing.T) {
		in, out := t.TempDir(), t.TempDir()
		writeStatement(t, in, "amex.pdf")

		s := newSorter(t, map[string]string{
			"amex.pdf": "American Express   Closing Date March 3, 2024",
		}, Config{
			Layout: organize.Options{OutputRoot: out},
			Mode:   organize.Mode{DryRun: true},
		})

		summary, err := s.Run(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.FilesRenamed)
		assert.FileExists(t, filepath.Join(in, "amex.pdf"))
		assert.NoFileExists(t, filepath.Join(out, "Amex - 2024-03-03 Statement.pdf"))
	})

	t.Run("collision without force is recorded as a skip", func(t *testing.T) {
		in, out := t.TempDir(), t.TempDir()
		writeStatement(t, in, "amex.pdf")
		require.NoError(t, os.WriteFile(filepath.Join(out, "Amex - 2024-03-03 Statement.pdf"), []byte("old"), 0o644))

		s := newSorter(t, map[string]string{
			"amex.pdf": "American Express   Closing Date March 3, 2024",
		}, Config{Layout: organize.Options{OutputRoot: out}})

		summary, err := s.Run(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, model.Summary{FilesProcessed: 1, FilesSkipped: 1}, summary)
		assert.FileExists(t, filepath.Join(in, "amex.pdf"))
	})

	t.Run("missing input directory is fatal", func(t *testing.T) {
		s := newSorter(t, nil, Config{})

		_, err := s.Run(ctx, filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})

	t.Run("cancelled context stops between files", func(t *testing.T) {
		in := t.TempDir()
		writeStatement(t, in, "amex.pdf")

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		s := newSorter(t, nil, Config{})
		_, err := s.Run(cancelled, in)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("progress hook sees every file", func(t *testing.T) {
		in, out := t.TempDir(), t.TempDir()
		writeStatement(t, in, "a.pdf")
		writeStatement(t, in, "b.pdf")

		var calls [][2]int
		s := newSorter(t, nil, Config{
			Layout: organize.Options{OutputRoot: out},
			Progress: func(done, total int) {
				calls = append(calls, [2]int{done, total})
			},
		})

		_, err := s.Run(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, calls)
	})
}
