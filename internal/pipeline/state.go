package pipeline

import "fmt"

// State is a stage of one workbook's run.
type State int

const (
	Unclassified State = iota
	Classified
	SchemaBound
	Extracting
	Cleansing
	Assembling
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case Unclassified:
		return "unclassified"
	case Classified:
		return "classified"
	case SchemaBound:
		return "schema-bound"
	case Extracting:
		return "extracting"
	case Cleansing:
		return "cleansing"
	case Assembling:
		return "assembling"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no transition leaves s
func (s State) Terminal() bool {
	return s == Complete || s == Failed
}

// Transition records one state change. Table is set for the per-table states.
type Transition struct {
	From  State
	To    State
	Table string
}

func (t Transition) String() string {
	if t.Table == "" {
		return fmt.Sprintf("%s -> %s", t.From, t.To)
	}
	return fmt.Sprintf("%s -> %s(%s)", t.From, t.To, t.Table)
}

// allowed lists the legal successors of each state. Failed is reachable from any
// non-terminal state and is not listed.
var allowed = map[State][]State{
	Unclassified: {Classified},
	Classified:   {SchemaBound},
	SchemaBound:  {Extracting, Complete},
	Extracting:   {Cleansing},
	Cleansing:    {Assembling},
	Assembling:   {Cleansing, Extracting, Complete},
}

func legal(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == Failed {
		return true
	}
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}
