package model

import "path/filepath"

// NormalizedDate is a statement's closing date in canonical form.
type NormalizedDate struct {
	ISO  string // YYYY-MM-DD
	Year int
}

// Destination is where a classified statement belongs.
type Destination struct {
	Dir      string
	Filename string
}

// Path returns the full destination path.
func (d Destination) Path() string {
	return filepath.Join(d.Dir, d.Filename)
}
