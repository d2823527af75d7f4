package commands

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/tamasfe/opgen/cmd/opgen/config"
	"github.com/tamasfe/opgen/pkg/util"
)

type initAnswers struct {
	Sources     string `survey:"sources"`
	DialectName string `survey:"dialectName"`
	Namespaces  string `survey:"namespaces"`
	HeaderFile  string `survey:"headerFile"`
	SourceFile  string `survey:"sourceFile"`
	Comments    bool   `survey:"comments"`
}

// asker asks the questions, survey.Ask outside of tests.
type asker func(qs []*survey.Question, response interface{}, opts ...survey.AskOpt) error

func init() {
	initOpts := &config.InitOptions{}

	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a configuration file",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := initConfig(initOpts.Yes, survey.Ask)
			if err != nil {
				return err
			}

			b, err := marshalYAML(conf)
			if err != nil {
				return err
			}

			return writeOutput(&config.GetOptions{
				OutPath: initOpts.OutPath,
				Force:   initOpts.Force,
			}, configComment+string(b))
		},
	}

	initCmd.Flags().BoolVarP(&initOpts.Yes, "yes", "y", false, "answer to all prompts with the default answers")
	initCmd.Flags().BoolVarP(&initOpts.Force, "force", "f", false, "force overwriting files")
	initCmd.Flags().StringVarP(&initOpts.OutPath, "out", "o", "opgen.yaml", "the output file or - for stdout")

	rootCmd.AddCommand(initCmd)
}

// initConfig builds a config from the answers to the prompts,
// or from the defaults if yes is set.
func initConfig(yes bool, ask asker) (*config.OpGenOptions, error) {
	conf := config.DefaultOpGenOptions()

	if yes {
		return conf, nil
	}

	qs := []*survey.Question{
		{
			Name: "sources",
			Prompt: &survey.Input{
				Message: "Operator schema documents (comma separated):",
			},
		},
		{
			Name: "dialectName",
			Prompt: &survey.Input{
				Message: "Name of the dialect:",
				Default: conf.DialectName,
			},
			Validate: survey.Required,
		},
		{
			Name: "namespaces",
			Prompt: &survey.Input{
				Message: "Namespaces of the generated code (comma separated):",
				Default: util.JoinList(conf.Namespaces),
			},
		},
		{
			Name: "headerFile",
			Prompt: &survey.Input{
				Message: "Path of the generated header:",
				Default: conf.HeaderFile,
			},
			Validate: survey.Required,
		},
		{
			Name: "sourceFile",
			Prompt: &survey.Input{
				Message: "Path of the generated source:",
				Default: conf.SourceFile,
			},
			Validate: survey.Required,
		},
		{
			Name: "comments",
			Prompt: &survey.Confirm{
				Message: "Add a banner comment to the generated files?",
				Default: conf.Comments,
			},
		},
	}

	answers := initAnswers{}

	err := ask(qs, &answers)
	if err != nil {
		return nil, err
	}

	conf.Sources = util.SplitList(answers.Sources)
	conf.DialectName = answers.DialectName
	conf.Namespaces = util.SplitList(answers.Namespaces)
	conf.HeaderFile = answers.HeaderFile
	conf.SourceFile = answers.SourceFile
	conf.Comments = answers.Comments

	return conf, nil
}
