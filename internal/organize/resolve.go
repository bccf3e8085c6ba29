// Package organize computes where a classified statement belongs and
// carries out the move.
package organize

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/Veraticus/statement-sorter/internal/model"
)

// Options control how destinations are laid out under the output root.
// Year folders are only ever applied beneath issuer folders, mirroring
// an Output/Bank/Year/File hierarchy.
type Options struct {
	OutputRoot string
	ByIssuer   bool
	ByYear     bool
}

// Resolve computes the destination for a classified statement. The
// filename always carries the issuer and date, even when the folders
// already encode them. Resolve performs no I/O, so it is safe for
// dry-run previews.
func Resolve(rule model.Rule, date model.NormalizedDate, opts Options) model.Destination {
	dir := opts.OutputRoot
	if opts.ByIssuer {
		dir = filepath.Join(dir, rule.Name)
		if opts.ByYear {
			dir = filepath.Join(dir, strconv.Itoa(date.Year))
		}
	}

	return model.Destination{
		Dir:      dir,
		Filename: fmt.Sprintf("%s - %s Statement.pdf", rule.Name, date.ISO),
	}
}
