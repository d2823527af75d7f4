package parser

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/tamasfe/opgen/pkg/errs"
	"github.com/tamasfe/opgen/pkg/naming"
	"github.com/tamasfe/opgen/pkg/spec"
	"github.com/tamasfe/opgen/pkg/typemap"
)

// rawEntry is an input, output or attribute record.
// Pointers are used so that missing fields can be told apart.
type rawEntry struct {
	Name     *string `mapstructure:"name"`
	Typename *string `mapstructure:"typename"`
	Optional *bool   `mapstructure:"optional"`
}

type rawOperator struct {
	Name    *string     `mapstructure:"name"`
	Inputs  *[]rawEntry `mapstructure:"inputs"`
	Outputs *[]rawEntry `mapstructure:"outputs"`
	Attrs   *[]rawEntry `mapstructure:"attrs"`
}

// Categories of the raw record, also used as field names in errors.
const (
	fieldInputs  = "inputs"
	fieldOutputs = "outputs"
	fieldAttrs   = "attrs"
)

// Normalize builds an operator from a raw schema record.
//
// Every error is a *errs.SchemaError, wrapping one of
// *errs.StructureError, *errs.UnsupportedTypeError or *errs.CardinalityError.
func Normalize(dialect string, record map[string]interface{}) (*spec.Operator, error) {
	var raw rawOperator

	err := mapstructure.Decode(record, &raw)
	if err != nil {
		name, _ := record["name"].(string)
		return nil, &errs.SchemaError{Op: name, Err: err}
	}

	if raw.Name == nil || *raw.Name == "" {
		return nil, &errs.SchemaError{Err: errs.ErrStructure("", "name")}
	}

	name := *raw.Name

	op, err := normalize(dialect, name, &raw)
	if err != nil {
		return nil, &errs.SchemaError{Op: name, Err: err}
	}

	return op, nil
}

func normalize(dialect, name string, raw *rawOperator) (*spec.Operator, error) {
	switch {
	case raw.Inputs == nil:
		return nil, errs.ErrStructure(name, fieldInputs)
	case raw.Outputs == nil:
		return nil, errs.ErrStructure(name, fieldOutputs)
	case raw.Attrs == nil:
		return nil, errs.ErrStructure(name, fieldAttrs)
	}

	op := &spec.Operator{
		Name:           name,
		Symbol:         naming.Symbol(name),
		RegisteredName: naming.RegisteredName(dialect, name),
	}

	inputs, err := slots(name, fieldInputs, *raw.Inputs, true)
	if err != nil {
		return nil, err
	}
	op.Inputs = inputs

	outputs, err := slots(name, fieldOutputs, *raw.Outputs, false)
	if err != nil {
		return nil, err
	}
	op.Outputs = outputs

	attrs, err := attributes(name, *raw.Attrs)
	if err != nil {
		return nil, err
	}
	op.Attributes = attrs

	return op, nil
}

// slots normalizes inputs or outputs, optionality
// is only required to be present if requireOptional is set.
func slots(op, field string, entries []rawEntry, requireOptional bool) ([]*spec.Slot, error) {
	names, err := nameList(op, field, entries)
	if err != nil {
		return nil, err
	}

	types, err := typeList(op, field, typemap.InOut, entries)
	if err != nil {
		return nil, err
	}

	optionals, err := optionalList(op, field, entries, requireOptional)
	if err != nil {
		return nil, err
	}

	err = crossCheck(op, field, names, types, optionals)
	if err != nil {
		return nil, err
	}

	result := make([]*spec.Slot, 0, len(names))
	for i := range names {
		result = append(result, &spec.Slot{
			Name:     names[i],
			Type:     types[i].Type,
			Vector:   types[i].List,
			Optional: optionals[i],
		})
	}

	return result, nil
}

func attributes(op string, entries []rawEntry) ([]*spec.AttrSlot, error) {
	names, err := nameList(op, fieldAttrs, entries)
	if err != nil {
		return nil, err
	}

	types, err := typeList(op, fieldAttrs, typemap.Attribute, entries)
	if err != nil {
		return nil, err
	}

	err = crossCheck(op, fieldAttrs, names, types, nil)
	if err != nil {
		return nil, err
	}

	result := make([]*spec.AttrSlot, 0, len(names))
	for i := range names {
		result = append(result, &spec.AttrSlot{
			Name:  names[i],
			Type:  types[i].Type,
			Array: types[i].List,
		})
	}

	return result, nil
}

func nameList(op, field string, entries []rawEntry) ([]string, error) {
	names := make([]string, 0, len(entries))
	for i, e := range entries {
		if e.Name == nil || *e.Name == "" {
			return nil, errs.ErrStructure(op, fmt.Sprintf("%v[%v].name", field, i))
		}
		names = append(names, *e.Name)
	}
	return names, nil
}

func typeList(op, field string, c typemap.Category, entries []rawEntry) ([]typemap.Mapping, error) {
	types := make([]typemap.Mapping, 0, len(entries))
	for i, e := range entries {
		if e.Typename == nil {
			return nil, errs.ErrStructure(op, fmt.Sprintf("%v[%v].typename", field, i))
		}

		m, err := typemap.Resolve(c, op, *e.Typename)
		if err != nil {
			return nil, err
		}
		types = append(types, m)
	}
	return types, nil
}

func optionalList(op, field string, entries []rawEntry, required bool) ([]bool, error) {
	optionals := make([]bool, 0, len(entries))
	for i, e := range entries {
		if e.Optional == nil {
			if required {
				return nil, errs.ErrStructure(op, fmt.Sprintf("%v[%v].optional", field, i))
			}
			optionals = append(optionals, false)
			continue
		}
		optionals = append(optionals, *e.Optional)
	}
	return optionals, nil
}

// crossCheck asserts the parallel lists of a category have equal lengths.
// A nil optionals list means the category has no optionality.
func crossCheck(op, field string, names []string, types []typemap.Mapping, optionals []bool) error {
	if optionals == nil {
		if len(names) != len(types) {
			return errs.ErrCardinality(op, field, len(names), len(types), -1)
		}
		return nil
	}

	if len(names) != len(types) || len(types) != len(optionals) {
		return errs.ErrCardinality(op, field, len(names), len(types), len(optionals))
	}

	return nil
}
