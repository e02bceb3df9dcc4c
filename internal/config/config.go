package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Project  ProjectConfig  `mapstructure:"project"`
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Report   ReportConfig   `mapstructure:"report"`
	Log      LogConfig      `mapstructure:"log"`
}

// ProjectConfig holds project-specific settings
type ProjectConfig struct {
	RootDir string `mapstructure:"root_dir"` // Fixed root every relative workbook path resolves against
}

// InputConfig controls which files are routed to the extraction pipeline
type InputConfig struct {
	Marker     string   `mapstructure:"marker"`     // Path segment that marks simulation input workbooks
	Extensions []string `mapstructure:"extensions"` // Workbook extensions the pipeline accepts
}

// OutputConfig holds result document settings
type OutputConfig struct {
	Dir       string `mapstructure:"dir"`       // Directory for persisted result documents
	Extension string `mapstructure:"extension"` // Result document extension (with leading dot)
	Pretty    bool   `mapstructure:"pretty"`    // Indent JSON output
}

// PipelineConfig holds extraction behavior settings
type PipelineConfig struct {
	Workers         int              `mapstructure:"workers"`          // Workbooks processed in parallel
	StrictColumns   bool             `mapstructure:"strict_columns"`   // Missing cleansing column aborts the workbook
	SchemaOverlays  []string         `mapstructure:"schema_overlays"`  // Extra YAML schema files
	SectionPatterns []SectionPattern `mapstructure:"section_patterns"` // Extra classifier entries
}

// SectionPattern maps a file-name marker to a section type name
type SectionPattern struct {
	Marker  string `mapstructure:"marker"`
	Section string `mapstructure:"section"`
}

// ReportConfig holds settings for the summary reports
type ReportConfig struct {
	Dir      string   `mapstructure:"dir"`       // Report directory
	FileName string   `mapstructure:"file_name"` // Report file name (without extension)
	Formats  []string `mapstructure:"formats"`   // excel, html, word
}

// LogConfig holds logging settings
type LogConfig struct {
	File string `mapstructure:"file"` // Log file, relative paths are under output.dir
}

// Load reads the configuration from a file or uses defaults
// If configPath is empty, it looks for "config.yaml" in the current directory
// If the file doesn't exist, it uses sensible defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath == "" {
		configPath = "config.yaml"
	}

	v.SetConfigFile(configPath)

	// Read config file (ignore error if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			fmt.Println("Config file not found. Using defaults (root: ., results: ./results)")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("project.root_dir", ".")

	v.SetDefault("input.marker", "input")
	v.SetDefault("input.extensions", []string{".xlsx", ".xlsm"})

	v.SetDefault("output.dir", "./results")
	v.SetDefault("output.extension", ".json")
	v.SetDefault("output.pretty", true)

	v.SetDefault("pipeline.workers", 1)
	v.SetDefault("pipeline.strict_columns", false)
	v.SetDefault("pipeline.schema_overlays", []string{})

	v.SetDefault("report.dir", "./reports")
	v.SetDefault("report.file_name", "bestest-summary")
	v.SetDefault("report.formats", []string{"excel", "html", "word"})

	v.SetDefault("log.file", "bestest-extract.log")
}

// normalizePaths converts relative paths to absolute paths.
// The project root is resolved once here and every other relative path hangs off it.
func (c *Config) normalizePaths() error {
	absRoot, err := filepath.Abs(c.Project.RootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve root_dir: %w", err)
	}
	c.Project.RootDir = absRoot

	c.Output.Dir = c.resolve(c.Output.Dir)
	c.Report.Dir = c.resolve(c.Report.Dir)
	for i, overlay := range c.Pipeline.SchemaOverlays {
		c.Pipeline.SchemaOverlays[i] = c.resolve(overlay)
	}

	return nil
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Project.RootDir, path)
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// LogFilePath returns the absolute log file path
func (c *Config) LogFilePath() string {
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.Output.Dir, c.Log.File)
}

// GetReportPath returns the report path for the given extension (".xlsx", ".html", ...)
func (c *Config) GetReportPath(ext string) string {
	return filepath.Join(c.Report.Dir, c.Report.FileName+ext)
}

// IsWorkbook reports whether path carries one of the accepted workbook extensions
func (c *Config) IsWorkbook(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range c.Input.Extensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if info, err := os.Stat(c.Project.RootDir); err != nil || !info.IsDir() {
		return fmt.Errorf("root_dir does not exist: %s", c.Project.RootDir)
	}

	if strings.TrimSpace(c.Input.Marker) == "" {
		return fmt.Errorf("input.marker cannot be empty")
	}

	if len(c.Input.Extensions) == 0 {
		return fmt.Errorf("input.extensions must contain at least one extension")
	}

	if !strings.HasPrefix(c.Output.Extension, ".") {
		return fmt.Errorf("output.extension must start with '.': %q", c.Output.Extension)
	}

	if c.Pipeline.Workers < 1 {
		return fmt.Errorf("pipeline.workers must be at least 1, got %d", c.Pipeline.Workers)
	}

	for _, p := range c.Pipeline.SectionPatterns {
		if p.Marker == "" || p.Section == "" {
			return fmt.Errorf("pipeline.section_patterns entries need both marker and section")
		}
	}

	if c.Report.FileName == "" {
		return fmt.Errorf("report.file_name cannot be empty")
	}

	return nil
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== BESTEST Extract Configuration ===")
	fmt.Printf("Project Root:     %s\n", c.Project.RootDir)
	fmt.Printf("Input Marker:     %s\n", c.Input.Marker)
	fmt.Printf("Workbook Types:   %v\n", c.Input.Extensions)
	fmt.Printf("Results:          %s (*%s)\n", c.Output.Dir, c.Output.Extension)
	fmt.Printf("Workers:          %d\n", c.Pipeline.Workers)
	fmt.Printf("Strict Columns:   %v\n", c.Pipeline.StrictColumns)
	fmt.Printf("Schema Overlays:  %v\n", c.Pipeline.SchemaOverlays)
	fmt.Printf("Report Formats:   %v\n", c.Report.Formats)
	fmt.Printf("Log File:         %s\n", c.LogFilePath())
	fmt.Println("=====================================")
}
