package workvalues

import (
	"fmt"

	"github.com/rotisserie/eris"
)

var (
	// ErrMissingSOCColumn means no header looked like a SOC code column.
	ErrMissingSOCColumn = eris.New("could not find a SOC code column in the O*NET file")
	// ErrUnrecognizedShape means the file is neither wide nor long.
	ErrUnrecognizedShape = eris.New("O*NET file is neither recognized wide nor long format")
	// ErrNoWorkValues means no Element Name mapped to one of the six values.
	ErrNoWorkValues = eris.New("could not find any of the six Work Values in 'Element Name'")
)

// SourceError reports a failure to fetch or parse the reference source.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("read work values source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }
