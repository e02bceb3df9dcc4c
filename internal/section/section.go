// Package section classifies workbooks into the section type that selects
// their extraction schema.
package section

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"bestest-extract/internal/errs"
)

// Type is the category of test output a workbook holds.
type Type string

const (
	ThermalFabric    Type = "thermal_fabric"
	GroundCoupled    Type = "ground_coupled"
	FuelFurnace      Type = "fuel_furnace"
	CoolingEquipment Type = "cooling_equipment"
)

// Code returns the short section code used in file names ("TF", "GC", ...)
func (t Type) Code() string {
	switch t {
	case ThermalFabric:
		return "TF"
	case GroundCoupled:
		return "GC"
	case FuelFurnace:
		return "HE"
	case CoolingEquipment:
		return "CE"
	default:
		return string(t)
	}
}

// Pattern maps a file-name marker to a section type.
type Pattern struct {
	Marker string
	Type   Type
}

// DefaultPatterns is the ordered built-in classification table. First match wins.
var DefaultPatterns = []Pattern{
	{Marker: "TF_Output", Type: ThermalFabric},
	{Marker: "GC_Output", Type: GroundCoupled},
	{Marker: "HE_Output", Type: FuelFurnace},
	{Marker: "CE_Output", Type: CoolingEquipment},
}

// Classifier tests file names against an ordered pattern table.
type Classifier struct {
	patterns []Pattern
}

// NewClassifier returns a classifier over DefaultPatterns followed by extra.
func NewClassifier(extra ...Pattern) *Classifier {
	patterns := make([]Pattern, 0, len(DefaultPatterns)+len(extra))
	patterns = append(patterns, DefaultPatterns...)
	patterns = append(patterns, extra...)
	return &Classifier{patterns: patterns}
}

// Patterns returns a copy of the classifier's table in match order
func (c *Classifier) Patterns() []Pattern {
	return append([]Pattern(nil), c.patterns...)
}

// Classify returns the section type of the first pattern whose marker occurs in
// name, compared case-insensitively. No match is an UnsupportedType error and the
// returned type is empty.
func (c *Classifier) Classify(name string) (Type, error) {
	// a Caser carries state; one per call keeps Classify safe across workers
	fold := cases.Fold()
	folded := fold.String(name)
	for _, p := range c.patterns {
		if p.Marker == "" {
			continue
		}
		if strings.Contains(folded, fold.String(p.Marker)) {
			return p.Type, nil
		}
	}
	return "", errs.Unsupported("classify", name, fmt.Errorf("no section marker in file name"))
}
