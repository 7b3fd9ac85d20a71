// Package extract holds the error kinds shared by the document extractors.
// Each subpackage turns normalized text lines into one league record.
package extract

import "errors"

var (
	// ErrSectionNotFound means a mandatory structural marker is absent.
	ErrSectionNotFound = errors.New("section not found")
	// ErrNoFixturesFound means a matchday document produced no fixtures.
	ErrNoFixturesFound = errors.New("no fixtures found")
	// ErrNoMatchesFound means an extractor ran but recovered no records.
	ErrNoMatchesFound = errors.New("no matches found")
	// ErrRoundNumberNotFound means no "Jornada N" marker was found.
	ErrRoundNumberNotFound = errors.New("round number not found")
)

// IsUnprocessable reports whether err is an extraction failure caused by
// the document content rather than by the service.
func IsUnprocessable(err error) bool {
	return errors.Is(err, ErrSectionNotFound) ||
		errors.Is(err, ErrNoFixturesFound) ||
		errors.Is(err, ErrNoMatchesFound) ||
		errors.Is(err, ErrRoundNumberNotFound)
}
