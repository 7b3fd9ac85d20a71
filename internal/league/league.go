// Package league defines the structured records recovered from federation
// documents. Records are plain values: they are built once per upload,
// persisted as JSON and reloaded unchanged.
package league

// Int returns a pointer to v, for optional integer fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for optional float fields.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v, for optional string fields.
func String(v string) *string { return &v }

// Kind identifies a stored document type.
type Kind string

const (
	KindClassification Kind = "classification"
	KindSchedule       Kind = "schedule"
	KindMatchday       Kind = "matchday"
	KindResults        Kind = "results"
	KindCalendar       Kind = "calendar"
	KindTopScorers     Kind = "top_scorers"
)

// Kinds lists every stored document type.
func Kinds() []Kind {
	return []Kind{KindClassification, KindSchedule, KindMatchday, KindResults, KindCalendar, KindTopScorers}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}
