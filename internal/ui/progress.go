package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Phase is a stage of a batch run shown to the user
type Phase string

const (
	PhaseExtracting Phase = "Extracting"
	PhaseReporting  Phase = "Reporting"
)

// ProgressBar counts finished items of one phase. Safe for concurrent use.
type ProgressBar struct {
	mu     sync.Mutex
	bar    *progressbar.ProgressBar
	phase  Phase
	failed int
}

// NewProgressBar creates a progress bar on stdout
func NewProgressBar(phase Phase, total int) *ProgressBar {
	return NewProgressBarWithOutput(phase, total, os.Stdout)
}

// NewProgressBarWithOutput creates a progress bar writing to output
func NewProgressBarWithOutput(phase Phase, total int, output io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetPredictTime(true),
	)
	return &ProgressBar{bar: bar, phase: phase}
}

// Done records one finished item named after path's base name
func (pb *ProgressBar) Done(path string, ok bool) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if !ok {
		pb.failed++
	}
	desc := fmt.Sprintf("[%s] %s", pb.phase, filepath.Base(path))
	if pb.failed > 0 {
		desc = fmt.Sprintf("[%s] %s (%d failed)", pb.phase, filepath.Base(path), pb.failed)
	}
	pb.bar.Describe(desc)
	_ = pb.bar.Add(1)
}

// Failed returns how many items were recorded as not ok
func (pb *ProgressBar) Failed() int {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.failed
}

// Finish completes the progress bar
func (pb *ProgressBar) Finish() error {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.bar.Finish()
}

// Phases runs a fixed sequence of phases, one bar at a time.
type Phases struct {
	phases   []Phase
	current  int
	bar      *ProgressBar
	disabled bool
	output   io.Writer
}

// NewPhases creates a tracker on stdout
func NewPhases(phases ...Phase) *Phases {
	return NewPhasesWithOutput(os.Stdout, phases...)
}

// NewPhasesWithOutput creates a tracker writing to output
func NewPhasesWithOutput(output io.Writer, phases ...Phase) *Phases {
	return &Phases{phases: phases, current: -1, output: output}
}

// Disable sends every later bar to io.Discard
func (p *Phases) Disable() {
	p.disabled = true
}

// Next finishes the current bar and starts the next phase. It returns nil once
// every phase has been started.
func (p *Phases) Next(total int) *ProgressBar {
	p.Finish()
	p.current++
	if p.current >= len(p.phases) {
		return nil
	}

	out := p.output
	if p.disabled {
		out = io.Discard
	}
	p.bar = NewProgressBarWithOutput(p.phases[p.current], total, out)
	return p.bar
}

// Finish completes the current bar, if any
func (p *Phases) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

// Println writes a line unless output is disabled
func (p *Phases) Println(message string) {
	if !p.disabled {
		fmt.Fprintln(p.output, message)
	}
}
