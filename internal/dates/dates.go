// Package dates normalizes raw statement date strings into canonical
// calendar dates.
package dates

import (
	"fmt"

	"github.com/araddon/dateparse"

	"github.com/Veraticus/statement-sorter/internal/common"
	"github.com/Veraticus/statement-sorter/internal/model"
)

// Normalize parses a raw date string into YYYY-MM-DD form. It returns
// either a fully populated NormalizedDate or an error, never a partial
// result.
//
// Ambiguous numeric dates are read month-first ("01/02/24" is January
// 2nd), and two-digit years follow the time.Parse convention: 00-68
// lands in the 2000s, 69-99 in the 1900s.
func Normalize(raw string) (model.NormalizedDate, error) {
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return model.NormalizedDate{}, fmt.Errorf("%w: %q: %v", common.ErrBadDate, raw, err)
	}

	return model.NormalizedDate{
		ISO:  t.Format("2006-01-02"),
		Year: t.Year(),
	}, nil
}
