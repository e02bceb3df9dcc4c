package cleanse

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"bestest-extract/internal/errs"
)

type limits struct {
	Lower *float64 `yaml:"lower"`
	Upper *float64 `yaml:"upper"`
}

// UnmarshalYAML accepts three entry shapes:
//
//	- annual_heating_mwh                        # bare column, unbounded
//	- {column: peak_heating_hour, lower: 0, upper: 24}
//	- [peak_heating_hour, {lower: 0, upper: 24}]
//
// Anything else is a configuration error.
func (n *Numeric) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag != "!!str" || value.Value == "" {
			return badEntry(value, "bare entries must be a column name")
		}
		*n = Num(value.Value)
		return nil

	case yaml.MappingNode:
		var raw struct {
			Column string   `yaml:"column"`
			Lower  *float64 `yaml:"lower"`
			Upper  *float64 `yaml:"upper"`
		}
		if err := value.Decode(&raw); err != nil {
			return badEntry(value, err.Error())
		}
		if raw.Column == "" {
			return badEntry(value, "mapping entries need a column")
		}
		*n = Numeric{Column: raw.Column, Lower: raw.Lower, Upper: raw.Upper}
		return nil

	case yaml.SequenceNode:
		if len(value.Content) != 2 || value.Content[0].Kind != yaml.ScalarNode || value.Content[1].Kind != yaml.MappingNode {
			return badEntry(value, "pair entries must be [column, {lower, upper}]")
		}
		var l limits
		if err := value.Content[1].Decode(&l); err != nil {
			return badEntry(value, err.Error())
		}
		*n = Numeric{Column: value.Content[0].Value, Lower: l.Lower, Upper: l.Upper}
		return nil
	}

	return badEntry(value, "unsupported entry")
}

func badEntry(value *yaml.Node, msg string) error {
	return errs.Configuration("numeric rule", fmt.Sprintf("line %d", value.Line), fmt.Errorf("%s", msg))
}
