package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bestest-extract/internal/assemble"
	"bestest-extract/internal/logger"
	"bestest-extract/internal/pipeline"
	"bestest-extract/internal/sample"
	"bestest-extract/internal/section"
)

func newSampleCmd(opts *options) *cobra.Command {
	var (
		sectionName string
		sw          assemble.Software
	)

	cmd := &cobra.Command{
		Use:   "sample <output.xlsx>",
		Short: "Write a workbook laid out like a section's schema, filled with valid values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			p, err := pipeline.FromConfig(cfg)
			if err != nil {
				return err
			}
			s, err := p.Registry().SchemaFor(section.Type(sectionName))
			if err != nil {
				return err
			}

			path := args[0]
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			if err := sample.Write(path, s, sw); err != nil {
				return fmt.Errorf("failed to write sample: %w", err)
			}
			logger.Info("Wrote %s sample (%d tables) to %s", s.Section, len(s.Tables), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sectionName, "section", "s", string(section.ThermalFabric), "Section type to lay out")
	cmd.Flags().StringVar(&sw.Name, "software", "Sample Program", "Software name written to the identity table")
	cmd.Flags().StringVar(&sw.Version, "software-version", "1.0", "Software version written to the identity table")
	cmd.Flags().StringVar(&sw.ReleaseDate, "release-date", "2026-01-01", "Release date written to the identity table")
	return cmd
}

func newSchemasCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List registered section schemas and their table regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			p, err := pipeline.FromConfig(cfg)
			if err != nil {
				return err
			}
			registry := p.Registry()
			for _, sec := range registry.Sections() {
				s, err := registry.SchemaFor(sec)
				if err != nil {
					return err
				}
				fmt.Printf("%s (%s)\n", sec, sec.Code())
				for _, t := range s.Tables {
					fmt.Printf("  %-40s %-24s %d column(s)\n", t.Name, t.Region, len(t.Labels))
				}
			}

			for _, pat := range section.NewClassifier().Patterns() {
				if _, err := registry.SchemaFor(pat.Type); err != nil {
					fmt.Printf("%s (%s): classified, no schema\n", pat.Type, pat.Type.Code())
				}
			}
			return nil
		},
	}
}

