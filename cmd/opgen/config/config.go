package config

import (
	"fmt"
	"regexp"

	"github.com/imdario/mergo"
	"github.com/tamasfe/opgen/pkg/generator"
	"github.com/tamasfe/opgen/pkg/generator/ircpp"
	"github.com/tamasfe/opgen/pkg/parser"
	"github.com/tamasfe/opgen/pkg/transformer"
	"github.com/tamasfe/opgen/pkg/util"
)

// Generators supported by the CLI.
var Generators = []generator.Generator{
	&ircpp.IrCpp{},
}

// Parsers supported by the CLI.
var Parsers = []parser.Parser{
	&parser.OpSchema{},
}

// Transformers supported by the CLI.
var Transformers = []transformer.Transformer{
	&transformer.Default{},
}

// ParserByName returns the parser with the name, or nil.
func ParserByName(name string) parser.Parser {
	for _, p := range Parsers {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// TransformerByName returns the transformer with the name, or nil.
func TransformerByName(name string) transformer.Transformer {
	for _, t := range Transformers {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// GeneratorByName returns the generator with the name, or nil.
func GeneratorByName(name string) generator.Generator {
	for _, g := range Generators {
		if g.Name() == name {
			return g
		}
	}
	return nil
}

// Component groups the name of a parser, transformer
// or generator and its options.
type Component struct {
	Name    string      `yaml:"name" description:"Name of the component"`
	Options interface{} `yaml:"options,omitempty" description:"Options for the component"`
}

// MarshalYAML implements YAML Marshaler
func (c *Component) MarshalYAML() (interface{}, error) {
	return util.MarshalYAMLWithDescriptions(c)
}

// GenerateOptions contains options for the CLI.
type GenerateOptions struct {
	ConfigPath string
	Namespaces string
	Dialect    string
	HeaderFile string
	SourceFile string
}

// GetOptions contains options for the CLI.
type GetOptions struct {
	Force      bool
	NoComments bool
	All        bool
	JSON       bool
	OutPath    string
}

// InitOptions contains options for the CLI.
type InitOptions struct {
	Yes     bool
	Force   bool
	OutPath string
}

// OpGenOptions options for OpGen.
type OpGenOptions struct {
	Sources      []string     `yaml:"sources" description:"Operator schema documents, their operators are generated in this order"`
	DialectName  string       `yaml:"dialectName" description:"Name of the dialect, the prefix of the registered operator names"`
	Namespaces   []string     `yaml:"namespaces" description:"Namespaces of the generated code, outermost first"`
	HeaderFile   string       `yaml:"headerFile" description:"Path of the generated header, the generated source includes it by this path"`
	SourceFile   string       `yaml:"sourceFile" description:"Path of the generated source"`
	Comments     bool         `yaml:"comments" description:"Add a banner comment to the generated files"`
	Timestamp    bool         `yaml:"timestamp" description:"Add the generation time to the banner comment, the output is no longer reproducible"`
	Parser       *Component   `yaml:"parser" description:"Parser of the schema documents and its options"`
	Transformers []*Component `yaml:"transformers,omitempty" description:"Transformers to alter the parsed operators with before generating code, and their options"`
	Generator    *Component   `yaml:"generator" description:"Generator of the code and its options"`
}

// MarshalYAML implements YAML Marshaler
func (o *OpGenOptions) MarshalYAML() (interface{}, error) {
	return util.MarshalYAMLWithDescriptions(o)
}

// DefaultOpGenOptions returns the default config
func DefaultOpGenOptions() *OpGenOptions {
	return &OpGenOptions{
		Sources:     []string{},
		DialectName: "pd",
		Namespaces:  []string{"paddle", "dialect"},
		HeaderFile:  "pd_op.h",
		SourceFile:  "pd_op.cc",
		Comments:    true,
		Timestamp:   false,
		Parser: &Component{
			Name: (&parser.OpSchema{}).Name(),
		},
		Transformers: []*Component{
			{Name: (&transformer.Default{}).Name()},
		},
		Generator: &Component{
			Name: (&ircpp.IrCpp{}).Name(),
		},
	}
}

// FlagOptions converts the command line options to
// OpGen options, leaving unset values empty.
func FlagOptions(cliOpts *GenerateOptions, sources []string) *OpGenOptions {
	return &OpGenOptions{
		Sources:     sources,
		DialectName: cliOpts.Dialect,
		Namespaces:  util.SplitList(cliOpts.Namespaces),
		HeaderFile:  cliOpts.HeaderFile,
		SourceFile:  cliOpts.SourceFile,
	}
}

// MergeFlagOptions overrides the options with the values
// set on the command line. The sources are appended.
func MergeFlagOptions(opts, flags *OpGenOptions) error {
	sources := append(append([]string{}, opts.Sources...), flags.Sources...)

	flagsCopy := *flags
	flagsCopy.Sources = nil

	err := mergo.Merge(opts, &flagsCopy, mergo.WithOverride)
	if err != nil {
		return err
	}

	opts.Sources = sources

	return nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateOpGenOptions validates options
func ValidateOpGenOptions(opts *OpGenOptions) error {
	if opts.DialectName == "" {
		return fmt.Errorf("dialect name is required")
	}

	if len(opts.Sources) == 0 {
		return fmt.Errorf("no schema documents supplied")
	}

	if opts.HeaderFile == "" || opts.SourceFile == "" {
		return fmt.Errorf("both the header and the source file are required")
	}

	if opts.HeaderFile == opts.SourceFile {
		return fmt.Errorf("the header and the source file must differ")
	}

	for _, ns := range opts.Namespaces {
		if !identifier.MatchString(ns) {
			return fmt.Errorf("invalid namespace %q", ns)
		}
	}

	if opts.Parser == nil || ParserByName(opts.Parser.Name) == nil {
		return fmt.Errorf("unknown parser %v", componentName(opts.Parser))
	}

	for _, t := range opts.Transformers {
		if t == nil || TransformerByName(t.Name) == nil {
			return fmt.Errorf("unknown transformer %v", componentName(t))
		}
	}

	if opts.Generator == nil || GeneratorByName(opts.Generator.Name) == nil {
		return fmt.Errorf("unknown generator %v", componentName(opts.Generator))
	}

	return nil
}

func componentName(c *Component) string {
	if c == nil || c.Name == "" {
		return "(none)"
	}
	return fmt.Sprintf("%q", c.Name)
}
