package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyExtraction is returned when a whole file yields zero shift
// records. Per-row and per-sheet problems never abort a run; an empty
// result is the only extraction-side hard failure.
var ErrEmptyExtraction = errors.New("el archivo no contiene turnos extraibles")

// ClassificationError reports a date or time value that could not be
// canonicalized. Callers treat it as "cannot classify": the row is
// skipped and counted, the batch continues.
type ClassificationError struct {
	Field string // "date" or "time"
	Raw   string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("no se pudo clasificar %s: %q", e.Field, e.Raw)
}

// StructuralError reports a sheet whose required columns could not be
// located. The sheet is skipped and reported, the run continues.
type StructuralError struct {
	Sheet   string
	Missing []string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("hoja %q: columnas no detectadas %v", e.Sheet, e.Missing)
}

type InferenceErrorKind string

const (
	// Transient failures (network, timeout) are retried with backoff.
	InferenceTransient InferenceErrorKind = "transient"
	// Quota failures are never retried; they resolve to the degraded
	// local extractor.
	InferenceQuota InferenceErrorKind = "quota"
	// Terminal failures (malformed request, auth) abort after the
	// first attempt.
	InferenceTerminal InferenceErrorKind = "terminal"
)

type InferenceError struct {
	Kind InferenceErrorKind
	Err  error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inferencia (%s): %v", e.Kind, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}
