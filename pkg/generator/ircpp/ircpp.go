// Package ircpp generates C++ operator definitions for the IR dialects.
package ircpp

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/tamasfe/opgen/internal/markdown"
	"github.com/tamasfe/opgen/pkg/common"
	"github.com/tamasfe/opgen/pkg/generator"
	"github.com/tamasfe/opgen/pkg/naming"
	"github.com/tamasfe/opgen/pkg/spec"
	"github.com/tamasfe/opgen/pkg/util"
)

// Short names of the targets.
const (
	TargetHeaderAlias = "h"
	TargetSourceAlias = "cc"
)

var (
	_ generator.Generator    = (*IrCpp)(nil)
	_ generator.SymbolLister = (*IrCpp)(nil)
)

// IrCppOptions is the options of the IrCpp generator.
type IrCppOptions struct {
	HeaderIncludes []string `yaml:"headerIncludes" description:"Files included by the generated header"`
	SourceIncludes []string `yaml:"sourceIncludes" description:"Files included by the generated source after the generated header"`
	IncludeGuard   bool     `yaml:"includeGuard" description:"Wrap the declarations of the header in an include guard derived from its file name"`
	GuardMacro     string   `yaml:"guardMacro,omitempty" description:"Name of the include guard macro, derived from the header file name if empty"`
}

// MarshalYAML implements YAML Marshaler
func (o *IrCppOptions) MarshalYAML() (interface{}, error) {
	return util.MarshalYAMLWithDescriptions(o)
}

// IrCpp generates operator classes for the C++ IR.
type IrCpp struct {
	// Now returns the time in the banner, time.Now if nil.
	Now func() time.Time
}

// Name implements Generator
func (g *IrCpp) Name() string {
	return "ir-cpp"
}

// Description implements Generator
func (g *IrCpp) Description() string {
	return "Generates C++ operator declarations and definitions for the IR"
}

// Targets implements Generator
func (g *IrCpp) Targets() map[string]string {
	return map[string]string{
		generator.TargetHeader: "The operator list and the operator class declarations",
		generator.TargetSource: "The attribute name tables and the verify routines",
		TargetHeaderAlias:      "Same as " + generator.TargetHeader,
		TargetSourceAlias:      "Same as " + generator.TargetSource,
	}
}

// DefaultOptions implements Generator
func (g *IrCpp) DefaultOptions() interface{} {
	return &IrCppOptions{
		HeaderIncludes: append([]string(nil), DefaultHeaderIncludes...),
		SourceIncludes: append([]string(nil), DefaultSourceIncludes...),
		IncludeGuard:   true,
	}
}

// DescriptionMarkdown implements DescriptionMarkdown
func (g *IrCpp) DescriptionMarkdown() string {
	desc := `
# Description

This generator writes the C++ definitions of the dialect operators.

The header contains a class for every operator, and the list of all
the operator classes if ` + "`GET_OP_LIST`" + ` is defined before it is included.
The source contains the attribute name tables and the verify routines
that check the inputs, outputs and attributes of the operations.

# Options

## List of all options

{{ .OptionsTable }}

## Example usage in OpGen config

{{ .OptionsExample }}

# Targets

{{ .TargetsTable }}
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
			"OptionsTable": markdown.OptionsTable(*g.DefaultOptions().(*IrCppOptions)),
			"OptionsExample": "```yaml\n" + string(util.MustMarshalYAML(
				map[string]interface{}{
					"generator": map[string]interface{}{
						"name":    g.Name(),
						"options": g.DefaultOptions(),
					},
				},
			)) + "```\n",
			"TargetsTable": markdown.TargetsTable(g.Targets()),
		},
	)
	if err != nil {
		panic(err)
	}

	util.DisableYAMLMarshalComments = yamlComments

	return buf.String()
}

// Generate implements Generator
func (g *IrCpp) Generate(ctx context.Context, options interface{}, sp *spec.Spec, target string) (string, error) {
	artifacts, err := g.assemble(ctx, options, sp)
	if err != nil {
		return "", err
	}

	switch target {
	case generator.TargetHeader, TargetHeaderAlias:
		return artifacts.Header, nil
	case generator.TargetSource, TargetSourceAlias:
		return artifacts.Source, nil
	default:
		return "", fmt.Errorf("target %v is not supported", target)
	}
}

// Symbols implements SymbolLister
func (g *IrCpp) Symbols(ctx context.Context, options interface{}, sp *spec.Spec) ([]string, error) {
	artifacts, err := g.assemble(ctx, options, sp)
	if err != nil {
		return nil, err
	}

	return artifacts.Symbols, nil
}

func (g *IrCpp) assemble(ctx context.Context, options interface{}, sp *spec.Spec) (*Artifacts, error) {
	opts := g.DefaultOptions().(*IrCppOptions)

	err := util.DecodeOptions(options, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	return Assemble(sp.Operators, g.assembleOptions(ctx, opts)), nil
}

func (g *IrCpp) assembleOptions(ctx context.Context, opts *IrCppOptions) AssembleOptions {
	run := common.OptionsFrom(ctx)

	a := AssembleOptions{
		Namespaces:     run.Namespaces,
		HeaderFile:     filepath.ToSlash(run.HeaderFile),
		HeaderIncludes: opts.HeaderIncludes,
		SourceIncludes: opts.SourceIncludes,
	}

	if opts.IncludeGuard {
		a.Guard = opts.GuardMacro
		if a.Guard == "" && run.HeaderFile != "" {
			a.Guard = naming.Guard(run.HeaderFile)
		}
	}

	if run.Comments {
		a.Banner = g.banner(ctx, run.Timestamp)
	}

	return a
}

func (g *IrCpp) banner(ctx context.Context, timestamp bool) string {
	var b strings.Builder

	b.WriteString("// Code generated by opgen. DO NOT EDIT.\n")

	if state := common.StateFrom(ctx); state != nil && len(state.Sources()) > 0 {
		b.WriteString("// Sources: " + strings.Join(state.SourceNames(), ", ") + "\n")
	}

	if timestamp {
		now := time.Now
		if g.Now != nil {
			now = g.Now
		}
		b.WriteString("// Generated at " + now().UTC().Format(time.RFC3339) + "\n")
	}

	b.WriteString("\n")

	return b.String()
}
