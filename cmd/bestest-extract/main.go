package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"bestest-extract/internal/config"
	"bestest-extract/internal/inputs"
	"bestest-extract/internal/logger"
	"bestest-extract/internal/pipeline"
	"bestest-extract/internal/report"
	"bestest-extract/internal/ui"
)

const (
	appName    = "BESTEST Extract"
	appVersion = "1.0.0"
	appDesc    = "Extracts ASHRAE 140 / BESTEST results workbooks into JSON documents"
)

// options holds the flag values of one command tree
type options struct {
	configPath  string
	verbose     bool
	showVersion bool
	outputDir   string
	formats     string
	jobs        int
	strict      bool
	quiet       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "bestest-extract [paths...]",
		Short: "Extract BESTEST results workbooks into JSON documents",
		Long: appDesc + `.

Files under an "input" directory segment are extracted; persisted .json result
documents elsewhere are summarized into Excel, HTML and Word reports.
Directories are expanded recursively.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          opts.run,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "config.yaml", "Path to configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging (DEBUG level)")

	root.Flags().BoolVar(&opts.showVersion, "version", false, "Show version information")
	root.Flags().StringVarP(&opts.outputDir, "output", "o", "", "Override output directory from config")
	root.Flags().StringVar(&opts.formats, "format", "", "Comma-separated report formats (excel,html,word), default from config")
	root.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "Workbooks processed in parallel, default from config")
	root.Flags().BoolVar(&opts.strict, "strict", false, "Abort a workbook when a cleansing rule names a missing column")
	root.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Hide progress bars")

	root.AddCommand(newSampleCmd(opts), newSchemasCmd(opts))
	return root
}

// setup loads the configuration, applies flag overrides and starts the logger.
// The returned func closes the logger.
func (o *options) setup(cmd *cobra.Command) (*config.Config, func(), error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("output") {
		cfg.Output.Dir = o.outputDir
		if err := cfg.EnsureOutputDir(); err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Pipeline.Workers = o.jobs
	}
	if cmd.Flags().Changed("strict") {
		cfg.Pipeline.StrictColumns = o.strict
	}
	if cmd.Flags().Changed("format") {
		cfg.Report.Formats = strings.Split(o.formats, ",")
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Init(os.Stdout, cfg.LogFilePath(), o.verbose); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.Close, nil
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	if o.showVersion {
		fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		return nil
	}
	if len(args) == 0 {
		return cmd.Help()
	}

	printBanner()

	cfg, closeLog, err := o.setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	if o.verbose {
		cfg.Print()
	}

	files, err := inputs.Expand(cfg.Project.RootDir, args)
	if err != nil {
		return err
	}
	router := inputs.Router{
		Root:      cfg.Project.RootDir,
		Marker:    cfg.Input.Marker,
		Workbooks: cfg.Input.Extensions,
		Documents: cfg.Output.Extension,
	}
	routed := router.Route(files)
	logger.Info("Found %d file(s): %d workbook(s) to extract, %d document(s) to report, %d ignored",
		len(files), len(routed.Extract), len(routed.Report), len(routed.Ignored))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	phases := ui.NewPhases(ui.PhaseExtracting, ui.PhaseReporting)
	if o.quiet {
		phases.Disable()
	}
	defer phases.Finish()

	failed, err := extractAll(ctx, cfg, phases, routed.Extract)
	if err != nil {
		return err
	}
	if err := reportAll(cfg, phases, routed.Report); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d workbook(s) failed, see %s", failed, cfg.LogFilePath())
	}
	logger.Info("✅ Done. Results in [%s]", cfg.Output.Dir)
	return nil
}

// extractAll runs the extraction pipeline over workbooks and returns how many failed
func extractAll(ctx context.Context, cfg *config.Config, phases *ui.Phases, workbooks []string) (int, error) {
	bar := phases.Next(len(workbooks))
	if len(workbooks) == 0 {
		return 0, nil
	}

	p, err := pipeline.FromConfig(cfg)
	if err != nil {
		return 0, err
	}

	logger.Info("Extracting %d workbook(s) with %d worker(s)...", len(workbooks), cfg.Pipeline.Workers)
	runs := p.RunBatch(ctx, workbooks, func(r *pipeline.Run) {
		bar.Done(r.Input, r.State == pipeline.Complete)
	})
	phases.Finish()

	for _, r := range runs {
		if r.State == pipeline.Complete {
			logger.Debug("%s -> %s", r.Input, r.OutputPath)
			continue
		}
		if r.Table != "" {
			logger.Error("%s failed at table %s: %v", r.Input, r.Table, r.Err)
		} else {
			logger.Error("%s failed: %v", r.Input, r.Err)
		}
	}

	summary := pipeline.Summarize(runs)
	logger.Info("%s", summary)
	return summary.Failed, nil
}

// reportAll summarizes persisted documents in every configured report format
func reportAll(cfg *config.Config, phases *ui.Phases, documents []string) error {
	if len(documents) == 0 {
		return nil
	}

	summary, err := report.Summarize(documents)
	if err != nil {
		return err
	}
	if len(summary.Documents) == 0 {
		logger.Warn("No readable result documents among %d file(s)", len(documents))
		return nil
	}

	if err := os.MkdirAll(cfg.Report.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	exporters := report.GetExporters(cfg.Report.Formats)
	logger.Info("Reporting on %d document(s) in %d format(s)...", len(summary.Documents), len(exporters))
	bar := phases.Next(len(exporters))

	var exportErrors int
	for i, exp := range exporters {
		err := exp.Export(summary, cfg)
		if err != nil {
			logger.Error("Export failed: %v", err)
			exportErrors++
		}
		if bar != nil {
			bar.Done(fmt.Sprintf("%s#%d", cfg.Report.FileName, i+1), err == nil)
		}
	}
	phases.Finish()

	if exportErrors > 0 {
		return fmt.Errorf("one or more exports failed: %d errors", exportErrors)
	}
	logger.Info("Reports written to [%s]", cfg.Report.Dir)
	return nil
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                   BESTEST EXTRACT v1.0.0                  ║
║          ASHRAE 140 Results Workbooks to JSON             ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}
