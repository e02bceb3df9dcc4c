package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"bestest-extract/internal/assemble"
	"bestest-extract/internal/cleanse"
	"bestest-extract/internal/document"
	"bestest-extract/internal/schema"
	"bestest-extract/internal/section"
	"bestest-extract/internal/workbook"
)

// Run is the record of one workbook through the pipeline. Each run owns its
// document; nothing in it is shared with other runs.
type Run struct {
	ID       uuid.UUID
	Input    string
	Workbook *workbook.Reference
	Section  section.Type
	Schema   *schema.Schema
	State    State
	// Table is the logical table being processed, or the one that failed.
	Table       string
	Software    assemble.Software
	Doc         *document.Tree
	Diagnostics []cleanse.Diagnostic
	History     []Transition
	OutputPath  string
	Err         error
}

func newRun(input string) *Run {
	return &Run{
		ID:    uuid.New(),
		Input: input,
		State: Unclassified,
		Doc:   document.NewTree(),
	}
}

// advance moves the run to next, recording the transition
func (r *Run) advance(next State, table string) {
	if !legal(r.State, next) {
		panic(fmt.Sprintf("pipeline: illegal transition %s -> %s", r.State, next))
	}
	r.History = append(r.History, Transition{From: r.State, To: next, Table: table})
	r.State = next
	if table != "" {
		r.Table = table
	}
}

func (r *Run) fail(err error) *Run {
	r.advance(Failed, "")
	r.Err = err
	return r
}

// Visited reports whether the run ever entered s
func (r *Run) Visited(s State) bool {
	for _, t := range r.History {
		if t.To == s {
			return true
		}
	}
	return false
}

// ShortID is the first block of the run id, used as a log tag
func (r *Run) ShortID() string {
	return r.ID.String()[:8]
}

// Summary aggregates a batch of runs.
type Summary struct {
	Total    int
	Complete int
	Failed   int
	Dropped  int
	Nulled   int
	Skipped  int
}

// Summarize counts outcomes and diagnostics
func Summarize(runs []*Run) Summary {
	var s Summary
	for _, r := range runs {
		if r == nil {
			continue
		}
		s.Total++
		switch r.State {
		case Complete:
			s.Complete++
		case Failed:
			s.Failed++
		}
		s.Dropped += cleanse.Count(r.Diagnostics, cleanse.ActionDropped)
		s.Nulled += cleanse.Count(r.Diagnostics, cleanse.ActionNulled)
		s.Skipped += cleanse.Count(r.Diagnostics, cleanse.ActionSkipped)
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d workbook(s): %d complete, %d failed; %d row(s) dropped, %d cell(s) nulled, %d rule(s) skipped",
		s.Total, s.Complete, s.Failed, s.Dropped, s.Nulled, s.Skipped)
}
