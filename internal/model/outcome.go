package model

// OutcomeStatus describes what happened to a single statement.
type OutcomeStatus string

// Possible outcome statuses.
const (
	StatusRenamed OutcomeStatus = "renamed"
	StatusSkipped OutcomeStatus = "skipped"
	StatusFailed  OutcomeStatus = "failed"
)

// Outcome records the result of processing one statement.
type Outcome struct {
	File        string
	Status      OutcomeStatus
	Reason      string
	Destination string
}

// Summary aggregates outcomes across a run.
type Summary struct {
	FilesProcessed int
	FilesRenamed   int
	FilesSkipped   int
	FilesFailed    int
}

// Record folds one outcome into the summary.
func (s *Summary) Record(o Outcome) {
	s.FilesProcessed++
	switch o.Status {
	case StatusRenamed:
		s.FilesRenamed++
	case StatusSkipped:
		s.FilesSkipped++
	case StatusFailed:
		s.FilesFailed++
	}
}
