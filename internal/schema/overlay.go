package schema

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"bestest-extract/internal/assemble"
	"bestest-extract/internal/cleanse"
	"bestest-extract/internal/errs"
	"bestest-extract/internal/section"
)

type overlayFile struct {
	Section       section.Type   `yaml:"section" validate:"required"`
	IdentityTable string         `yaml:"identity_table"`
	Tables        []overlayTable `yaml:"tables" validate:"required,min=1,dive"`
}

type overlayTable struct {
	Name          string `yaml:"name" validate:"required"`
	Region        `yaml:",inline"`
	Labels        []string `yaml:"labels"`
	cleanse.Rules `yaml:",inline"`
	Assembly      assemble.Spec `yaml:"assembly"`
}

// LoadOverlay decodes a YAML schema for one section. When the document does not
// declare the identity table, the shared IdentityTable is prepended.
func LoadOverlay(r io.Reader) (*Schema, error) {
	var raw overlayFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, errs.Configuration("load overlay", "yaml", err)
	}
	if err := newValidator().Struct(&raw); err != nil {
		return nil, errs.Configuration("load overlay", string(raw.Section), err)
	}

	s := &Schema{Section: raw.Section, IdentityTable: raw.IdentityTable}
	if s.IdentityTable == "" {
		s.IdentityTable = IdentityTableName
	}

	declared := false
	for _, t := range raw.Tables {
		rule, err := t.Assembly.Build()
		if err != nil {
			return nil, errs.Configuration("load overlay", fmt.Sprintf("%s/%s", raw.Section, t.Name), err)
		}
		s.Tables = append(s.Tables, Table{
			Name:     t.Name,
			Region:   t.Region,
			Labels:   t.Labels,
			Rules:    t.Rules,
			Assembly: rule,
		})
		declared = declared || t.Name == s.IdentityTable
	}
	if !declared {
		if s.IdentityTable != IdentityTableName {
			return nil, errs.Configuration("load overlay", string(raw.Section),
				fmt.Errorf("identity table %q is not declared", s.IdentityTable))
		}
		s.Tables = append([]Table{IdentityTable()}, s.Tables...)
	}
	return s, nil
}

// LoadOverlayFile reads an overlay from disk
func LoadOverlayFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NotFound("load overlay", path, err)
		}
		return nil, errs.Configuration("load overlay", path, err)
	}
	return LoadOverlay(bytes.NewReader(data))
}

// LoadOverlays registers every overlay file in order
func (r *Registry) LoadOverlays(paths []string) error {
	for _, p := range paths {
		s, err := LoadOverlayFile(p)
		if err != nil {
			return err
		}
		if err := r.Register(s); err != nil {
			return err
		}
	}
	return nil
}
