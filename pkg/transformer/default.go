package transformer

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/tamasfe/opgen/internal/markdown"
	"github.com/tamasfe/opgen/pkg/util"
	"github.com/tamasfe/opgen/pkg/util/cli"

	"github.com/mohae/deepcopy"
	"github.com/tamasfe/opgen/pkg/spec"
)

// AllOperators is the key of the options that apply to every operator.
const AllOperators = "*"

// ClassTemplateValues contains values for interface and trait templates.
type ClassTemplateValues struct {
	Name           string `description:"Short name of the operator"`
	Symbol         string `description:"Name of the generated class"`
	RegisteredName string `description:"Registered name of the operator"`
	Dialect        string `description:"Name of the dialect"`
}

// DefaultOptions alters the behaviour of the code generator.
type DefaultOptions struct {
	Interfaces map[string][]string `yaml:"interfaces,omitempty" description:"Interfaces of the generated classes by operator name, \"*\" applies to all operators. Supports Go templating with sprig functions"`
	Traits     map[string][]string `yaml:"traits,omitempty" description:"Traits of the generated classes by operator name, \"*\" applies to all operators. Supports Go templating with sprig functions"`
	Exclude    []string            `yaml:"exclude,omitempty" description:"Names of operators that are not generated"`
}

// MarshalYAML implements YAML Marshaler.
func (d *DefaultOptions) MarshalYAML() (interface{}, error) {
	return util.MarshalYAMLWithDescriptions(d)
}

// Default is the default Transformer.
type Default struct{}

// Name implements Transformer
func (d *Default) Name() string {
	return "default"
}

// Description implements Transformer
func (d *Default) Description() string {
	return "The default OpGen operator transformer"
}

// DescriptionMarkdown implements DescriptionMarkdown
func (d *Default) DescriptionMarkdown() string {
	desc := `
# Description

This transformer adds interfaces and traits to the generated
operator classes, and reports operators that are defined more than once.

Interfaces are listed before traits in the template parameters of the class,
the ones configured for all operators come first.

# Options

## List of all options

{{ .OptionsTable }}

## Example usage in OpGen config

{{ .OptionsExample }}

### Interface and trait template values

{{ .ValuesTable }}

`[1:]

	buf := &bytes.Buffer{}

	templ, err := template.New("desc").Parse(desc)
	if err != nil {
		panic(err)
	}

	yamlComments := util.DisableYAMLMarshalComments

	util.DisableYAMLMarshalComments = true

	err = templ.Execute(buf,
		map[string]interface{}{
			"OptionsTable": markdown.OptionsTable(*d.DefaultOptions().(*DefaultOptions)),
			"OptionsExample": "```yaml\n" + string(util.MustMarshalYAML(
				map[string]interface{}{
					"transformers": []interface{}{
						map[string]interface{}{
							"name": d.Name(),
							"options": &DefaultOptions{
								Traits: map[string][]string{
									"relu": {"ir::SideEffectFree"},
								},
								Interfaces: map[string][]string{
									AllOperators: {"paddle::dialect::OpYamlInfoInterface"},
								},
							},
						},
					},
				},
			)) + "```\n",
			"ValuesTable": markdown.ValuesTable(ClassTemplateValues{}),
		},
	)
	if err != nil {
		panic(err)
	}

	util.DisableYAMLMarshalComments = yamlComments

	return buf.String()
}

// DefaultOptions implements Transformer
func (d *Default) DefaultOptions() interface{} {
	return &DefaultOptions{}
}

// Transform implements Transformer
func (d *Default) Transform(ctx context.Context, rawOpts interface{}, sp *spec.Spec) error {
	opts := d.DefaultOptions().(*DefaultOptions)

	err := util.DecodeOptions(rawOpts, opts)
	if err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	err = d.ExcludeOperators(ctx, sp, opts)
	if err != nil {
		return err
	}

	err = d.ReportDuplicates(ctx, sp, opts)
	if err != nil {
		return err
	}

	err = d.AddClasses(ctx, sp, opts)
	if err != nil {
		return err
	}

	return nil
}

// ExcludeOperators removes the excluded operators,
// keeping the order of the rest.
func (d *Default) ExcludeOperators(ctx context.Context, sp *spec.Spec, opts *DefaultOptions) error {
	if len(opts.Exclude) == 0 {
		return nil
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		excluded[name] = true
	}

	kept := make([]*spec.Operator, 0, len(sp.Operators))
	for _, op := range sp.Operators {
		if excluded[op.Name] {
			cli.Verbosef("excluding operator %v\n", op.Name)
			continue
		}
		kept = append(kept, op)
	}

	sp.Operators = kept

	return nil
}

// ReportDuplicates warns about operators that are defined more than once.
// The duplicates are kept, and the generated code will not compile.
func (d *Default) ReportDuplicates(ctx context.Context, sp *spec.Spec, opts *DefaultOptions) error {
	seen := make(map[string]int, len(sp.Operators))

	for i, op := range sp.Operators {
		first, exists := seen[op.Symbol]
		if !exists {
			seen[op.Symbol] = i
			continue
		}

		cli.Warningf(
			"operator %v (#%v) generates the same class %v as operator %v (#%v)\n",
			op.Name, i, op.Symbol, sp.Operators[first].Name, first,
		)
	}

	return nil
}

// AddClasses adds the configured interfaces and traits to the operators.
func (d *Default) AddClasses(ctx context.Context, sp *spec.Spec, opts *DefaultOptions) error {
	if len(opts.Interfaces) == 0 && len(opts.Traits) == 0 {
		return nil
	}

	for i, op := range sp.Operators {
		values := ClassTemplateValues{
			Name:           op.Name,
			Symbol:         op.Symbol,
			RegisteredName: op.RegisteredName,
			Dialect:        sp.Dialect,
		}

		interfaces, err := classesOf(opts.Interfaces, values)
		if err != nil {
			return fmt.Errorf("interfaces of %v: %w", op.Name, err)
		}

		traits, err := classesOf(opts.Traits, values)
		if err != nil {
			return fmt.Errorf("traits of %v: %w", op.Name, err)
		}

		if len(interfaces) == 0 && len(traits) == 0 {
			continue
		}

		changed := deepcopy.Copy(op).(*spec.Operator)
		changed.Interfaces = appendUnique(changed.Interfaces, interfaces...)
		changed.Traits = appendUnique(changed.Traits, traits...)

		sp.Operators[i] = changed
	}

	return nil
}

// classesOf returns the classes for all operators, then the ones
// for the operator, with the templates executed.
func classesOf(classes map[string][]string, values ClassTemplateValues) ([]string, error) {
	templates := append(append([]string(nil), classes[AllOperators]...), classes[values.Name]...)

	out := make([]string, 0, len(templates))

	for _, text := range templates {
		templ, err := template.New("class").Funcs(sprig.TxtFuncMap()).Parse(text)
		if err != nil {
			return nil, err
		}

		buf := &bytes.Buffer{}

		err = templ.Execute(buf, values)
		if err != nil {
			return nil, err
		}

		if buf.Len() == 0 {
			continue
		}

		out = append(out, buf.String())
	}

	return out, nil
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		exists := false
		for _, l := range list {
			if l == v {
				exists = true
				break
			}
		}

		if !exists {
			list = append(list, v)
		}
	}

	return list
}
