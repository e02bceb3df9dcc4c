package report

import (
	"bestest-extract/internal/config"
	"bestest-extract/internal/model"
)

// Exporter is the unified interface for all report formats
type Exporter interface {
	Export(summary *model.Summary, cfg *config.Config) error
}
