package parser

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"text/template"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tamasfe/opgen/internal/markdown"
	"github.com/tamasfe/opgen/pkg/common"
	"github.com/tamasfe/opgen/pkg/spec"
	"github.com/tamasfe/opgen/pkg/util"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document formats
const (
	FormatAuto = "auto"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// OpSchemaOptions are options for the operator schema parser.
type OpSchemaOptions struct {
	DialectName string `yaml:"dialectName" description:"Prefix of the registered operator names, e.g. \"pd\" for \"pd.relu\""`
	Format      string `yaml:"format" description:"Format of the schema documents, one of auto, yaml or json. Auto decides by the file extension, and falls back to YAML"`
}

// MarshalYAML implements YAML Marshaler
func (o *OpSchemaOptions) MarshalYAML() (interface{}, error) {
	return util.MarshalYAMLWithDescriptions(o)
}

// OpSchema parses operator schema documents.
//
// A document is a list of operator records:
//
//	- name: scale
//	  inputs:
//	  - {name: x, typename: Tensor, optional: false}
//	  outputs:
//	  - {name: out, typename: Tensor}
//	  attrs:
//	  - {name: factor, typename: float}
type OpSchema struct{}

// Name implements Parser
func (o *OpSchema) Name() string {
	return "opschema"
}

// Description implements Parser
func (o *OpSchema) Description() string {
	return "Parses operator schema documents in YAML or JSON"
}

// DescriptionMarkdown implements DescriptionMarkdown
func (o *OpSchema) DescriptionMarkdown() string {
	desc := `
# Description

This parser reads operator schema documents. Each document is a list of
operator records with their inputs, outputs and attributes.
Documents are read and concatenated in the given order.

# Options

## List of all options

{{ .OptionsTable }}

## Example usage in the config

{{ .OptionsExample }}

# Example document

{{ .DocumentExample }}
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
			"OptionsTable": markdown.OptionsTable(*o.DefaultOptions().(*OpSchemaOptions)),
			"OptionsExample": "```yaml\n" + string(util.MustMarshalYAML(
				map[string]interface{}{
					"parser": map[string]interface{}{
						"name":    o.Name(),
						"options": o.DefaultOptions(),
					},
				},
			)) + "```\n",
			"DocumentExample": "```yaml\n" + string(util.MustMarshalYAML(
				[]map[string]interface{}{
					{
						"name": "scale",
						"inputs": []map[string]interface{}{
							{"name": "x", "typename": "Tensor", "optional": false},
						},
						"outputs": []map[string]interface{}{
							{"name": "out", "typename": "Tensor"},
						},
						"attrs": []map[string]interface{}{
							{"name": "factor", "typename": "float"},
						},
					},
				},
			)) + "```\n",
		},
	)
	if err != nil {
		panic(err)
	}

	util.DisableYAMLMarshalComments = yamlComments

	return buf.String()
}

// DefaultOptions implements Parser
func (o *OpSchema) DefaultOptions() interface{} {
	return &OpSchemaOptions{
		DialectName: "pd",
		Format:      FormatAuto,
	}
}

func (o *OpSchema) options(rawOpts interface{}) (*OpSchemaOptions, error) {
	opts := o.DefaultOptions().(*OpSchemaOptions)

	err := mapstructure.Decode(rawOpts, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	switch opts.Format {
	case FormatAuto, FormatYAML, FormatJSON:
	default:
		return nil, fmt.Errorf("invalid options: unknown format %v", opts.Format)
	}

	if opts.DialectName == "" {
		return nil, fmt.Errorf("invalid options: dialect name is empty")
	}

	return opts, nil
}

// Parse implements Parser
func (o *OpSchema) Parse(ctx context.Context, rawOpts interface{}, data []byte) (*spec.Spec, error) {
	opts, err := o.options(rawOpts)
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == FormatAuto {
		format = FormatYAML
	}

	records, err := decodeRecords(data, format)
	if err != nil {
		return nil, err
	}

	if state := common.StateFrom(ctx); state != nil {
		state.AddSource("-", len(records))
	}

	sp := &spec.Spec{Dialect: opts.DialectName}

	err = appendOperators(sp, records)
	if err != nil {
		return nil, err
	}

	return sp, nil
}

// ParseResources implements Parser
func (o *OpSchema) ParseResources(ctx context.Context, rawOpts interface{}, paths ...string) (*spec.Spec, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths supplied")
	}

	opts, err := o.options(rawOpts)
	if err != nil {
		return nil, err
	}

	state := common.StateFrom(ctx)

	sp := &spec.Spec{Dialect: opts.DialectName}

	for _, p := range paths {
		data, err := ioutil.ReadFile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read schema document %v", p)
		}

		records, err := decodeRecords(data, formatOf(p, opts.Format))
		if err != nil {
			return nil, errors.Wrapf(err, "%v", p)
		}

		if state != nil {
			state.AddSource(p, len(records))
		}

		err = appendOperators(sp, records)
		if err != nil {
			return nil, errors.Wrapf(err, "%v", p)
		}
	}

	return sp, nil
}

func formatOf(path, format string) string {
	if format != FormatAuto {
		return format
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatYAML
}

func decodeRecords(data []byte, format string) ([]map[string]interface{}, error) {
	var records []map[string]interface{}

	var err error
	if format == FormatJSON {
		err = json.Unmarshal(data, &records)
	} else {
		err = yaml.Unmarshal(data, &records)
	}

	if err != nil {
		return nil, fmt.Errorf("a schema document must be a list of operator records: %w", err)
	}

	return records, nil
}

func appendOperators(sp *spec.Spec, records []map[string]interface{}) error {
	for i, r := range records {
		op, err := Normalize(sp.Dialect, r)
		if err != nil {
			return errors.Wrapf(err, "record %v", i)
		}

		sp.Operators = append(sp.Operators, op)
	}

	return nil
}
