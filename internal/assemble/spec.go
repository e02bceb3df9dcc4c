package assemble

import (
	"fmt"

	"bestest-extract/internal/document"
	"bestest-extract/internal/errs"
)

// Spec is the declarative form of a Rule, as written in schema overlays.
type Spec struct {
	Kind string `yaml:"kind" validate:"required,oneof=flat identity surface series wide"`

	// flat
	Key string `yaml:"key"`
	// surface
	Column    string `yaml:"column"`
	Separator string `yaml:"separator"`
	SubKey    string `yaml:"sub_key"`
	// series
	Index    string   `yaml:"index"`
	IndexKey string   `yaml:"index_key" validate:"omitempty,oneof=hour day"`
	Periods  []Period `yaml:"periods" validate:"dive"`
	// wide
	RowKey string     `yaml:"row_key"`
	Cases  []WideCase `yaml:"cases" validate:"dive"`
}

// Build returns the Rule described by s
func (s Spec) Build() (Rule, error) {
	need := func(field, v string) error {
		if v == "" {
			return errs.Configuration("assembly rule", s.Kind, fmt.Errorf("%s is required", field))
		}
		return nil
	}

	switch s.Kind {
	case "flat":
		if err := need("key", s.Key); err != nil {
			return nil, err
		}
		return Flat{Key: s.Key}, nil
	case "identity":
		return Identity{}, nil
	case "surface":
		if err := need("column", s.Column); err != nil {
			return nil, err
		}
		return Surface{Column: s.Column, Sep: s.Separator, SubKey: s.SubKey}, nil
	case "series":
		if err := need("index", s.Index); err != nil {
			return nil, err
		}
		if len(s.Periods) == 0 {
			return nil, errs.Configuration("assembly rule", s.Kind, fmt.Errorf("periods are required"))
		}
		return Series{Index: s.Index, IndexKey: s.IndexKey, Periods: s.Periods}, nil
	case "wide":
		if err := need("row_key", s.RowKey); err != nil {
			return nil, err
		}
		if len(s.Cases) == 0 {
			return nil, errs.Configuration("assembly rule", s.Kind, fmt.Errorf("cases are required"))
		}
		return Wide{RowKey: s.RowKey, Cases: s.Cases}, nil
	default:
		return nil, errs.Configuration("assembly rule", s.Kind, fmt.Errorf("unknown kind"))
	}
}

// Software is the identifying information of the tool that produced a workbook.
type Software struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	ReleaseDate string `json:"release_date"`
}

// SoftwareOf reads the identity record assembled by Identity
func SoftwareOf(n document.Node) Software {
	rec, ok := n.(document.Record)
	if !ok {
		return Software{}
	}
	text := func(field string) string {
		v, ok := rec[field]
		if !ok || v.IsNull() {
			return ""
		}
		return v.String()
	}
	return Software{
		Name:        text("software_name"),
		Version:     text("software_version"),
		ReleaseDate: text("software_release_date"),
	}
}
