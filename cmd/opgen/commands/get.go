package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/tamasfe/opgen/cmd/opgen/config"
	"github.com/tamasfe/opgen/pkg/typemap"
	"github.com/tamasfe/opgen/pkg/util"
	"github.com/tamasfe/opgen/pkg/util/cli"
	"gopkg.in/yaml.v3"
)

const configComment = "# Generated config file for OpGen, a dialect operator definition generator.\n\n"

func init() {
	getCmd := &cobra.Command{
		Use:          "get [target]",
		Short:        "Get available values",
		SilenceUsage: false,
	}

	getOpts := &config.GetOptions{}

	getConfigCmd := &cobra.Command{
		Use:          "configuration",
		Short:        "Provides an example configuration",
		Aliases:      []string{"c", "conf", "config"},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if getOpts.NoComments {
				util.DisableYAMLMarshalComments = true
			}

			conf := config.DefaultOpGenOptions()
			if getOpts.All {
				conf = allOptions()
			}

			b, err := marshalYAML(conf)
			if err != nil {
				return err
			}

			return writeOutput(getOpts, configComment+string(b))
		},
	}

	getConfigCmd.Flags().BoolVarP(&getOpts.NoComments, "no-comments", "", false, "Disables all comments")
	getConfigCmd.Flags().StringVarP(&getOpts.OutPath, "out", "o", "", "the output file")
	getConfigCmd.Flags().BoolVarP(&getOpts.All, "all", "a", false, "include the default options of all components")
	getConfigCmd.Flags().BoolVarP(&getOpts.Force, "force", "f", false, "force overwriting files")

	typesOpts := &config.GetOptions{}

	getTypesCmd := &cobra.Command{
		Use:          "types",
		Short:        "List the supported schema type names",
		Aliases:      []string{"ty", "type"},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if typesOpts.JSON {
				return printTypesJSON(os.Stdout)
			}

			printTypes(os.Stdout)
			return nil
		},
	}

	getTypesCmd.Flags().BoolVarP(&typesOpts.JSON, "json", "j", false, "print the types as JSON")

	getParsersCmd := &cobra.Command{
		Use:          "parsers",
		Short:        "List all parsers",
		Aliases:      []string{"p", "parser", "parse"},
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			printParsers()
		},
	}

	getTransformersCmd := &cobra.Command{
		Use:          "transformers",
		Short:        "List all transformers",
		Aliases:      []string{"t", "trans", "transform"},
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			printTransformers()
		},
	}

	getGeneratorsCmd := &cobra.Command{
		Use:          "generators",
		Short:        "List all generators",
		Aliases:      []string{"g", "gen", "generator"},
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			printGenerators()
		},
	}

	getAllCmd := &cobra.Command{
		Use:          "all",
		Short:        "List all components",
		Aliases:      []string{"a"},
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			printParsers()
			fmt.Println()
			printTransformers()
			fmt.Println()
			printGenerators()
		},
	}

	getCmd.AddCommand(getAllCmd)
	getCmd.AddCommand(getGeneratorsCmd)
	getCmd.AddCommand(getTransformersCmd)
	getCmd.AddCommand(getParsersCmd)
	getCmd.AddCommand(getTypesCmd)
	getCmd.AddCommand(getConfigCmd)

	rootCmd.AddCommand(getCmd)
}

// allOptions returns the default config with
// the default options of every component.
func allOptions() *config.OpGenOptions {
	conf := config.DefaultOpGenOptions()

	p := config.ParserByName(conf.Parser.Name)
	conf.Parser.Options = p.DefaultOptions()

	for _, t := range conf.Transformers {
		t.Options = config.TransformerByName(t.Name).DefaultOptions()
	}

	g := config.GeneratorByName(conf.Generator.Name)
	conf.Generator.Options = g.DefaultOptions()

	return conf
}

func writeOutput(getOpts *config.GetOptions, content string) error {
	if getOpts.OutPath == "" || getOpts.OutPath == "-" {
		fmt.Print(content)
		return nil
	}

	if !getOpts.Force {
		_, err := os.Stat(getOpts.OutPath)
		if err == nil {
			return fmt.Errorf("file already exists, use \"-f\" to force overwrite")
		}
	}

	info, err := os.Stat(getOpts.OutPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if info != nil && info.IsDir() {
		return fmt.Errorf("output path should be a file, not a directory")
	}

	err = os.MkdirAll(filepath.Dir(getOpts.OutPath), os.ModePerm)
	if err != nil {
		return err
	}

	f, err := os.Create(getOpts.OutPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	if err != nil {
		return err
	}

	cli.Successf("%v written.\n", getOpts.OutPath)

	return nil
}

type typeEntry struct {
	Token    string `json:"token"`
	Category string `json:"category"`
	Type     string `json:"type"`
}

func typeEntries() []typeEntry {
	entries := make([]typeEntry, 0)

	for _, c := range []typemap.Category{typemap.InOut, typemap.Attribute} {
		table := typemap.Table(c)
		for _, token := range typemap.Tokens(c) {
			entries = append(entries, typeEntry{
				Token:    token,
				Category: c.String(),
				Type:     table[token],
			})
		}
	}

	return entries
}

func printTypes(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 0, 4, ' ', 0)

	cli.Infof("Supported schema types:\n")
	for _, e := range typeEntries() {
		fmt.Fprintf(w, "\t%v\t%v\t%v\n", e.Token, e.Category, e.Type)
	}
	w.Flush()
}

func printTypesJSON(out io.Writer) error {
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(typeEntries(), "", "  ")
	if err != nil {
		return err
	}

	_, err = out.Write(append(b, '\n'))
	return err
}

func printParsers() {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)

	cli.Infof("Available parsers:\n")
	for _, p := range config.Parsers {
		fmt.Fprintf(w, "\t%v\t%v\n", p.Name(), p.Description())
	}
	w.Flush()
}

func printTransformers() {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)

	cli.Infof("Available transformers:\n")
	for _, p := range config.Transformers {
		fmt.Fprintf(w, "\t%v\t%v\n", p.Name(), p.Description())
	}
	w.Flush()
}

func printGenerators() {
	cli.Infof("Available generators:\n")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)

	for _, p := range config.Generators {
		targets := make([]string, 0, len(p.Targets()))

		for t := range p.Targets() {
			targets = append(targets, t)
		}

		sort.Strings(targets)

		fmt.Fprintf(w, "\t%v (%v)\t%v\n", p.Name(), strings.Join(targets, ", "), p.Description())
	}
	w.Flush()
}

// marshalYAML formats the output YAML properly.
func marshalYAML(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}

	e := yaml.NewEncoder(buf)

	e.SetIndent(2)

	err := e.Encode(v)
	if err != nil {
		return nil, err
	}

	return []byte(strings.ReplaceAll(buf.String(), "\n\n\n", "\n\n")), nil
}
