// Package pipeline drives workbooks through classification, schema lookup,
// per-table extraction, cleansing and assembly, and persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"bestest-extract/internal/assemble"
	"bestest-extract/internal/cleanse"
	"bestest-extract/internal/config"
	"bestest-extract/internal/errs"
	"bestest-extract/internal/extract"
	"bestest-extract/internal/logger"
	"bestest-extract/internal/schema"
	"bestest-extract/internal/section"
	"bestest-extract/internal/store"
	"bestest-extract/internal/workbook"
)

// Options tunes a Pipeline.
type Options struct {
	// Strict makes a missing cleansing column abort the workbook.
	Strict bool
	// Workers bounds RunBatch concurrency. Values below 1 mean 1.
	Workers int
}

// Pipeline processes workbooks found under a fixed project root.
type Pipeline struct {
	root       string
	classifier *section.Classifier
	registry   *schema.Registry
	store      *store.Store
	opts       Options
}

// New assembles a pipeline from its collaborators
func New(root string, classifier *section.Classifier, registry *schema.Registry, st *store.Store, opts Options) *Pipeline {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Pipeline{root: root, classifier: classifier, registry: registry, store: st, opts: opts}
}

// FromConfig builds the classifier, registry and store described by cfg
func FromConfig(cfg *config.Config) (*Pipeline, error) {
	var extra []section.Pattern
	for _, p := range cfg.Pipeline.SectionPatterns {
		extra = append(extra, section.Pattern{Marker: p.Marker, Type: section.Type(p.Section)})
	}

	registry := schema.Default()
	if err := registry.LoadOverlays(cfg.Pipeline.SchemaOverlays); err != nil {
		return nil, err
	}
	for _, s := range registry.Sections() {
		logger.Debug("Schema registered: %s", s)
	}

	return New(cfg.Project.RootDir, section.NewClassifier(extra...), registry, store.New(cfg), Options{
		Strict:  cfg.Pipeline.StrictColumns,
		Workers: cfg.Pipeline.Workers,
	}), nil
}

// Registry returns the schema registry in use
func (p *Pipeline) Registry() *schema.Registry {
	return p.registry
}

// Process runs one workbook to Complete or Failed. Errors are recorded on the
// returned Run, never returned, so a batch keeps going.
func (p *Pipeline) Process(ctx context.Context, path string) *Run {
	run := newRun(path)
	log := logger.Scope(run.ShortID())

	ref, err := workbook.Locate(p.root, path)
	if err != nil {
		return p.abort(run, log, err)
	}
	run.Workbook = ref
	log = logger.Scope(fmt.Sprintf("%s %s", run.ShortID(), ref.Name()))

	typ, err := p.classifier.Classify(ref.Name())
	if err != nil {
		return p.abort(run, log, err)
	}
	run.Section = typ
	run.advance(Classified, "")
	log.Debug("Classified as %s", typ)

	s, err := p.registry.SchemaFor(typ)
	if err != nil {
		return p.abort(run, log, err)
	}
	run.Schema = s
	run.advance(SchemaBound, "")

	ex, err := extract.Open(ref)
	if err != nil {
		return p.abort(run, log, err)
	}
	defer ex.Close()

	cleanser := &cleanse.Cleanser{Strict: p.opts.Strict, Log: log}
	for i := range s.Tables {
		if err := ctx.Err(); err != nil {
			return p.abort(run, log, err)
		}
		if err := p.processTable(run, ex, cleanser, &s.Tables[i], log); err != nil {
			return p.abort(run, log, err)
		}
	}

	out, err := p.store.PathFor(ref, typ, run.Software)
	if err != nil {
		return p.abort(run, log, err)
	}
	if err := p.store.Save(out, run.Doc); err != nil {
		return p.abort(run, log, err)
	}
	run.OutputPath = out
	run.advance(Complete, "")

	log.Info("Saved %s (%d tables, %s %s)", out, run.Doc.Len(), run.Software.Name, run.Software.Version)
	return run
}

func (p *Pipeline) processTable(run *Run, ex *extract.Extractor, c *cleanse.Cleanser, t *schema.Table, log *logger.Scoped) error {
	run.advance(Extracting, t.Name)
	raw, err := ex.Extract(t.Name, t.Region, t.Labels)
	if err != nil {
		return err
	}
	log.Debug("Extracted %s: %d row(s) from %s", t.Name, raw.Len(), t.Region)

	// The row axis of a split table is shared by every part; check it once.
	rules := t.Rules
	if _, split := t.Assembly.(assemble.Splitter); split && rules.Case != nil {
		filtered, diags, err := c.CheckCategorical(raw, *rules.Case)
		run.Diagnostics = append(run.Diagnostics, diags...)
		if err != nil {
			return err
		}
		raw = filtered
		rules.Case = nil
	}

	parts, err := assemble.PartsOf(t.Assembly, raw)
	if err != nil {
		return err
	}

	for _, part := range parts {
		run.advance(Cleansing, t.Name)
		cleaned, diags, err := c.Apply(part.Table, rules)
		run.Diagnostics = append(run.Diagnostics, diags...)
		if err != nil {
			return err
		}

		run.advance(Assembling, t.Name)
		node, err := t.Assembly.Assemble(assemble.Part{Case: part.Case, Table: cleaned}, log)
		if err != nil {
			return err
		}
		if err := run.Doc.Merge(t.Name, node); err != nil {
			return errs.Processing("merge", t.Name, err)
		}
		if t.Name == run.Schema.IdentityTable {
			run.Software = assemble.SoftwareOf(node)
		}
	}
	return nil
}

func (p *Pipeline) abort(run *Run, log *logger.Scoped, err error) *Run {
	var e *errs.Error
	switch {
	case errors.As(err, &e):
		log.Error("Aborted in %s state (%s): %v", run.State, e.Kind, err)
	default:
		log.Error("Aborted in %s state: %v", run.State, err)
	}
	return run.fail(err)
}

// RunBatch processes paths with up to Options.Workers workbooks in flight. done,
// when non-nil, is called once per finished run and may be called concurrently.
// Runs are returned in input order.
func (p *Pipeline) RunBatch(ctx context.Context, paths []string, done func(*Run)) []*Run {
	runs := make([]*Run, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			runs[i] = p.Process(ctx, path)
			if done != nil {
				done(runs[i])
			}
			return nil
		})
	}
	_ = g.Wait()
	return runs
}
