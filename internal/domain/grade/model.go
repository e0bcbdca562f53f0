package grade

import (
	"strings"
	"time"
)

// UnknownSystemID is the reserved catalog id for grade systems outside the
// known catalog. It only ever appears at the wire and storage boundaries;
// inside the application a SystemRef carries the distinction.
const UnknownSystemID = 999

// DefaultUnknownLabel is recorded when the caller names no system.
const DefaultUnknownLabel = "Other"

// System is one grading scale in the catalog, with its grade tokens in
// ascending difficulty order.
type System struct {
	ID     int
	Label  string
	Grades []string
}

// Rank returns the position of label in the system's token order, or -1 if
// the label is not a token of this system. Comparison is case-insensitive.
func (s System) Rank(label string) int {
	for i, g := range s.Grades {
		if strings.EqualFold(g, label) {
			return i
		}
	}
	return -1
}

// SystemRef identifies the grading system a route was logged against:
// either a known catalog entry or a caller-labelled unknown system.
type SystemRef struct {
	ID    int
	Label string // caller-supplied system name; set only for unknown systems
}

// IsUnknown reports whether the ref points outside the known catalog.
func (r SystemRef) IsUnknown() bool {
	return r.ID == UnknownSystemID
}

// Resolve maps a wire-level grade-system id to a SystemRef. A nil id means
// the caller left the system unspecified, which resolves to the unknown
// sentinel. The label is only retained for unknown systems, defaulting to
// "Other" when blank.
func Resolve(id *int, label string) SystemRef {
	sysID := UnknownSystemID
	if id != nil {
		sysID = *id
	}
	if sysID != UnknownSystemID {
		return SystemRef{ID: sysID}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultUnknownLabel
	}
	return SystemRef{ID: UnknownSystemID, Label: label}
}

// UnknownRecord is one append-only log entry for a route that referenced a
// grade system outside the catalog. It is a curation signal, not a foreign
// key target.
type UnknownRecord struct {
	ID          string
	SystemID    int
	SystemLabel string
	GradeLabel  string
	LoggedAt    time.Time
}

// DefaultCatalog returns the grade systems seeded on first startup.
func DefaultCatalog() []System {
	return []System{
		{ID: 1, Label: "Boulder Planet", Grades: []string{"WILD", "1", "2", "3", "4", "5", "6", "7", "8"}},
		{ID: 2, Label: "V-Scale", Grades: []string{"VB", "V0", "V1", "V2", "V3", "V4", "V5", "V6", "V7", "V8", "V9", "V10", "V11", "V12"}},
		{ID: 3, Label: "Fontainebleau", Grades: []string{"3", "4", "5", "5+", "6A", "6A+", "6B", "6B+", "6C", "6C+", "7A", "7A+", "7B", "7B+", "7C", "7C+", "8A"}},
		{ID: 4, Label: "French Sport", Grades: []string{"4", "5a", "5b", "5c", "6a", "6a+", "6b", "6b+", "6c", "6c+", "7a", "7a+", "7b", "7b+", "7c", "7c+", "8a"}},
		{ID: 5, Label: "YDS", Grades: []string{"5.6", "5.7", "5.8", "5.9", "5.10a", "5.10b", "5.10c", "5.10d", "5.11a", "5.11b", "5.11c", "5.11d", "5.12a", "5.12b", "5.12c", "5.12d", "5.13a"}},
	}
}
