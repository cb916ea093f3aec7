package core

import "fmt"

// WarningKind classifies a degraded-parse observation.
type WarningKind string

const (
	MalformedNumber    WarningKind = "malformed_number"
	MissingDate        WarningKind = "missing_date"
	ShortDate          WarningKind = "short_date"
	UnknownCategory    WarningKind = "unknown_category"
	MissingSubCategory WarningKind = "missing_sub_category"
	OutOfOrder         WarningKind = "out_of_order"
	DroppedRow         WarningKind = "dropped_row"
)

// Warning records input that was silently zeroed, skipped or ignored.
// Row and Col are zero-based grid positions; -1 when not applicable.
type Warning struct {
	Row     int         `json:"row" yaml:"row"`
	Col     int         `json:"col" yaml:"col"`
	Kind    WarningKind `json:"kind" yaml:"kind"`
	Value   string      `json:"value,omitempty" yaml:"value,omitempty"`
	Message string      `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	if w.Col < 0 {
		return fmt.Sprintf("row %d: %s: %s", w.Row, w.Kind, w.Message)
	}
	return fmt.Sprintf("row %d col %d: %s: %s", w.Row, w.Col, w.Kind, w.Message)
}

// Diagnostics is the warning list that accompanies a parse or aggregation.
type Diagnostics []Warning

// Add appends a warning.
func (d *Diagnostics) Add(w Warning) {
	*d = append(*d, w)
}

// Len returns the number of warnings.
func (d Diagnostics) Len() int {
	return len(d)
}

// ByKind returns the warnings of the given kind, in the order recorded.
func (d Diagnostics) ByKind(kind WarningKind) Diagnostics {
	var out Diagnostics
	for _, w := range d {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}
