package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigWithDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	defer os.Chdir(wd)

	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load config with defaults: %v", err)
	}

	if !filepath.IsAbs(cfg.Project.RootDir) {
		t.Errorf("Expected absolute RootDir, got %s", cfg.Project.RootDir)
	}

	if cfg.Input.Marker != "input" {
		t.Errorf("Expected default marker 'input', got %q", cfg.Input.Marker)
	}

	if cfg.Output.Extension != ".json" {
		t.Errorf("Expected default extension .json, got %q", cfg.Output.Extension)
	}

	if cfg.Pipeline.Workers != 1 {
		t.Errorf("Expected 1 worker by default, got %d", cfg.Pipeline.Workers)
	}

	if cfg.Pipeline.StrictColumns {
		t.Error("Expected permissive column checks by default")
	}

	if _, err := os.Stat(cfg.Output.Dir); err != nil {
		t.Errorf("Expected output dir to be created: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}

	cfg.Print()
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
project:
  root_dir: "` + filepath.ToSlash(tmpDir) + `"
input:
  marker: "inputs"
output:
  dir: "out"
  pretty: false
pipeline:
  workers: 4
  strict_columns: true
  schema_overlays: ["schemas/ce.yaml"]
  section_patterns:
    - marker: "CE_Output"
      section: "cooling_equipment"
`
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Input.Marker != "inputs" {
		t.Errorf("Marker = %q, expected inputs", cfg.Input.Marker)
	}
	if cfg.Output.Dir != filepath.Join(tmpDir, "out") {
		t.Errorf("Output.Dir = %s, expected it under the project root", cfg.Output.Dir)
	}
	if cfg.Output.Pretty {
		t.Error("Expected pretty=false from file")
	}
	if cfg.Pipeline.Workers != 4 || !cfg.Pipeline.StrictColumns {
		t.Errorf("Pipeline = %+v, expected workers=4 strict=true", cfg.Pipeline)
	}
	if got := cfg.Pipeline.SchemaOverlays[0]; got != filepath.Join(tmpDir, "schemas", "ce.yaml") {
		t.Errorf("Overlay path = %s, expected it resolved against the root", got)
	}
	if len(cfg.Pipeline.SectionPatterns) != 1 || cfg.Pipeline.SectionPatterns[0].Section != "cooling_equipment" {
		t.Errorf("SectionPatterns = %+v", cfg.Pipeline.SectionPatterns)
	}
}

func TestIsWorkbook(t *testing.T) {
	cfg := &Config{Input: InputConfig{Extensions: []string{".xlsx", ".xlsm"}}}

	tests := []struct {
		path     string
		expected bool
	}{
		{"input/eplus/9.0/tf/Std140_TF_Output.xlsx", true},
		{"input/eplus/9.0/tf/Std140_TF_Output.XLSX", true},
		{"input/eplus/9.0/he/HE_Output.xlsm", true},
		{"input/eplus/9.0/tf/readme.txt", false},
		{"results/eplus-9.0-tf.json", false},
	}

	for _, tt := range tests {
		result := cfg.IsWorkbook(tt.path)
		if result != tt.expected {
			t.Errorf("IsWorkbook(%s) = %v, expected %v", tt.path, result, tt.expected)
		}
	}
}

func TestGetReportPath(t *testing.T) {
	cfg := &Config{
		Report: ReportConfig{
			Dir:      "/tmp/reports",
			FileName: "summary",
		},
	}

	expected := filepath.Join("/tmp/reports", "summary.html")
	result := cfg.GetReportPath(".html")

	if result != expected {
		t.Errorf("GetReportPath() = %s, expected %s", result, expected)
	}
}

func TestLogFilePath(t *testing.T) {
	cfg := &Config{Output: OutputConfig{Dir: "/tmp/results"}, Log: LogConfig{File: "run.log"}}
	if got := cfg.LogFilePath(); got != filepath.Join("/tmp/results", "run.log") {
		t.Errorf("LogFilePath() = %s", got)
	}

	cfg.Log.File = "/var/log/bestest.log"
	if got := cfg.LogFilePath(); got != "/var/log/bestest.log" {
		t.Errorf("LogFilePath() = %s, expected absolute path untouched", got)
	}
}

func TestValidate(t *testing.T) {
	tmpDir := t.TempDir()

	valid := func() *Config {
		return &Config{
			Project:  ProjectConfig{RootDir: tmpDir},
			Input:    InputConfig{Marker: "input", Extensions: []string{".xlsx"}},
			Output:   OutputConfig{Extension: ".json"},
			Pipeline: PipelineConfig{Workers: 1},
			Report:   ReportConfig{FileName: "report"},
		}
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		shouldErr bool
	}{
		{"Valid config", func(c *Config) {}, false},
		{"Nonexistent root directory", func(c *Config) { c.Project.RootDir = "/nonexistent/directory" }, true},
		{"Empty marker", func(c *Config) { c.Input.Marker = " " }, true},
		{"No extensions", func(c *Config) { c.Input.Extensions = nil }, true},
		{"Extension without dot", func(c *Config) { c.Output.Extension = "json" }, true},
		{"Zero workers", func(c *Config) { c.Pipeline.Workers = 0 }, true},
		{"Half section pattern", func(c *Config) {
			c.Pipeline.SectionPatterns = []SectionPattern{{Marker: "CE_Output"}}
		}, true},
		{"Empty report filename", func(c *Config) { c.Report.FileName = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.shouldErr && err == nil {
				t.Error("Expected error but got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}
