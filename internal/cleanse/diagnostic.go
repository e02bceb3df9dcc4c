package cleanse

import "fmt"

// Reason says why a value was rejected.
type Reason string

const (
	ReasonNotInSet      Reason = "not a valid identifier"
	ReasonNotNumeric    Reason = "not numeric"
	ReasonOutOfBounds   Reason = "out of bounds"
	ReasonMissingColumn Reason = "column not found"
)

// Action says what the cleanser did about it.
type Action string

const (
	ActionDropped Action = "row dropped"
	ActionNulled  Action = "cell nulled"
	ActionSkipped Action = "check skipped"
)

// Diagnostic records one data-quality correction. Row is the zero-based row index in
// the table the check ran on; it is -1 for skipped checks.
type Diagnostic struct {
	Table  string `json:"table"`
	Column string `json:"column"`
	Row    int    `json:"row"`
	Value  string `json:"value,omitempty"`
	Reason Reason `json:"reason"`
	Action Action `json:"action"`
}

func (d Diagnostic) String() string {
	if d.Row < 0 {
		return fmt.Sprintf("%s.%s: %s, %s", d.Table, d.Column, d.Reason, d.Action)
	}
	return fmt.Sprintf("%s.%s row %d %q: %s, %s", d.Table, d.Column, d.Row, d.Value, d.Reason, d.Action)
}

// Count returns how many diagnostics carry action a
func Count(diags []Diagnostic, a Action) int {
	n := 0
	for _, d := range diags {
		if d.Action == a {
			n++
		}
	}
	return n
}
