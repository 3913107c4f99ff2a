package catalog

import (
	"errors"
	"time"

	"faultline/internal/rupture"
)

// Outcome is the result of reading one document.
type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeFailed Outcome = "failed"
)

// ErrorClassifier lets read errors declare their kind without this package
// importing the reader.
type ErrorClassifier interface {
	ErrorKind() string
}

// Run groups the entries written by one scan.
type Run struct {
	ID          string
	Root        string
	GridSpacing float64
	StartedAt   time.Time
	FinishedAt  *time.Time
}

// Entry is one document read within a run.
type Entry struct {
	ID             int64
	RunID          string
	Source         string
	Outcome        Outcome
	SurfaceKind    string
	Magnitude      *float64
	TectonicRegion string
	Rake           *float64
	PointCount     int
	ErrorKind      string
	ErrorMessage   string
	ReadAt         time.Time
}

// Failed reports whether the read behind the entry failed.
func (e *Entry) Failed() bool { return e.Outcome == OutcomeFailed }

// NewEntry builds the entry for a read that returned r and err.
func NewEntry(runID, source string, r *rupture.Rupture, err error, readAt time.Time) Entry {
	entry := Entry{RunID: runID, Source: source, ReadAt: readAt.UTC()}
	if err != nil {
		entry.Outcome = OutcomeFailed
		entry.ErrorKind = classify(err)
		entry.ErrorMessage = err.Error()
		return entry
	}

	entry.Outcome = OutcomeOK
	if r == nil {
		return entry
	}
	magnitude, rake := r.Magnitude, r.Rake
	entry.Magnitude = &magnitude
	entry.Rake = &rake
	entry.TectonicRegion = r.TectonicRegion.String()
	entry.SurfaceKind = string(r.Kind())
	if r.Surface != nil {
		entry.PointCount = r.Surface.PointCount()
	}
	return entry
}

func classify(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return "unknown"
}
