package generate

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tamasfe/opgen/cmd/opgen/config"
	"github.com/tamasfe/opgen/pkg/common"
	"github.com/tamasfe/opgen/pkg/generator"
	"github.com/tamasfe/opgen/pkg/spec"
	"github.com/tamasfe/opgen/pkg/util/cli"
)

// Result describes a finished generation.
type Result struct {
	Spec *spec.Spec

	// Symbols are the namespace qualified symbols of the
	// generated operators in order, if the generator lists them.
	Symbols []string

	HeaderFile string
	SourceFile string
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// LoadOptions loads the options from the config file if there is one,
// and applies the command line options on top of them.
func LoadOptions(cliOpts *config.GenerateOptions, stdin io.Reader, sources []string) (*config.OpGenOptions, error) {
	opts := config.DefaultOpGenOptions()

	if cliOpts.ConfigPath != "" {
		var bt []byte

		if cliOpts.ConfigPath == "-" {
			b, err := ioutil.ReadAll(stdin)
			if err != nil {
				return nil, errors.Wrap(err, "failed to read config")
			}
			bt = b

			cli.Verboseln("Using config from stdin.")
		} else {
			b, err := ioutil.ReadFile(cliOpts.ConfigPath)
			if err != nil {
				return nil, errors.Wrap(err, "failed to read config file")
			}
			bt = b

			cli.Verboseln("Using config from \"" + cliOpts.ConfigPath + "\".")
		}

		err := yaml.Unmarshal(bt, opts)
		if err != nil {
			return nil, fmt.Errorf("invalid config file: %w", err)
		}
	}

	err := config.MergeFlagOptions(opts, config.FlagOptions(cliOpts, sources))
	if err != nil {
		return nil, err
	}

	return opts, nil
}

// Generate generates the header and the source for the options.
//
// Both documents are generated in memory first,
// nothing is written if any of the steps fail.
func Generate(ctx context.Context, options *config.OpGenOptions) (*Result, error) {
	err := config.ValidateOpGenOptions(options)
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	err = removeOutputs(options.HeaderFile, options.SourceFile)
	if err != nil {
		return nil, err
	}

	state := &common.State{}
	ctx = context.WithValue(ctx, common.ContextState, state)
	ctx = context.WithValue(ctx, common.ContextCommonOptions, &common.Options{
		Namespaces: options.Namespaces,
		HeaderFile: options.HeaderFile,
		Comments:   options.Comments,
		Timestamp:  options.Timestamp,
	})

	sp, err := parseSpec(ctx, options)
	if err != nil {
		return nil, err
	}

	cli.Verbosef("Parsed %v operators from %v documents.\n", state.Records(), len(state.Sources()))

	for _, t := range options.Transformers {
		err = config.TransformerByName(t.Name).Transform(ctx, t.Options, sp)
		if err != nil {
			return nil, fmt.Errorf("transform failed: %w", err)
		}
	}

	if cli.Verbose {
		for _, op := range sp.Operators {
			cli.Verbosef("Operator %v:\n%v", op.Name, dumper.Sdump(op))
		}
	}

	g := config.GeneratorByName(options.Generator.Name)

	header, err := g.Generate(ctx, options.Generator.Options, sp, generator.TargetHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %v: %w", generator.TargetHeader, err)
	}

	source, err := g.Generate(ctx, options.Generator.Options, sp, generator.TargetSource)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %v: %w", generator.TargetSource, err)
	}

	var symbols []string
	if lister, ok := g.(generator.SymbolLister); ok {
		symbols, err = lister.Symbols(ctx, options.Generator.Options, sp)
		if err != nil {
			return nil, fmt.Errorf("failed to list symbols: %w", err)
		}
	}

	err = writeOutputs(
		output{path: options.HeaderFile, content: header},
		output{path: options.SourceFile, content: source},
	)
	if err != nil {
		return nil, err
	}

	return &Result{
		Spec:       sp,
		Symbols:    symbols,
		HeaderFile: options.HeaderFile,
		SourceFile: options.SourceFile,
	}, nil
}

func parseSpec(ctx context.Context, options *config.OpGenOptions) (*spec.Spec, error) {
	p := config.ParserByName(options.Parser.Name)

	cli.Verbosef("Parsing %v documents with %v.\n", len(options.Sources), p.Name())

	sp, err := p.ParseResources(ctx, parserOptions(options), options.Sources...)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	return sp, nil
}

// parserOptions returns the parser options of the config
// with the dialect name of the config.
func parserOptions(options *config.OpGenOptions) map[string]interface{} {
	raw := make(map[string]interface{})

	if m, ok := options.Parser.Options.(map[string]interface{}); ok {
		for k, v := range m {
			raw[k] = v
		}
	}

	raw["dialectName"] = options.DialectName

	return raw
}

// removeOutputs removes the outputs of a previous run.
func removeOutputs(paths ...string) error {
	for _, p := range paths {
		err := os.Remove(p)
		if err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to remove %v", p)
		}
	}

	return nil
}

type output struct {
	path    string
	content string
}

// writeOutputs writes every output to a temporary file next to it first,
// the outputs are only moved into place once all of them are written.
func writeOutputs(outputs ...output) error {
	temps := make([]string, 0, len(outputs))

	defer func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}()

	for _, o := range outputs {
		tmp, err := writeTemp(o.path, o.content)
		if err != nil {
			return err
		}
		temps = append(temps, tmp)
	}

	for i, o := range outputs {
		err := os.Rename(temps[i], o.path)
		if err != nil {
			for _, done := range outputs[:i] {
				os.Remove(done.path)
			}
			return errors.Wrapf(err, "failed to write %v", o.path)
		}
	}

	for _, o := range outputs {
		absName, err := filepath.Abs(o.path)
		if err != nil {
			absName = o.path
		}

		cli.Successf("%v written.\n", absName)
	}

	return nil
}

func writeTemp(path, content string) (string, error) {
	dir := filepath.Dir(path)

	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create directory for %v", path)
	}

	f, err := ioutil.TempFile(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", errors.Wrapf(err, "failed to create %v", path)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	if err != nil {
		os.Remove(f.Name())
		return "", errors.Wrapf(err, "failed to write %v", path)
	}

	err = f.Chmod(0o644)
	if err != nil {
		os.Remove(f.Name())
		return "", errors.Wrapf(err, "failed to write %v", path)
	}

	return f.Name(), nil
}
