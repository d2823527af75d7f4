package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/tamasfe/opgen/cmd/opgen/config"
	"github.com/tamasfe/opgen/internal/markdown"
	"github.com/tamasfe/opgen/pkg/common"
	"github.com/tamasfe/opgen/pkg/typemap"
)

type component interface {
	Name() string
}

// describe writes the markdown description of the component,
// with its headings one level deeper.
func describe(b *strings.Builder, c component) {
	md, ok := c.(common.DescriptionMarkdown)
	if !ok {
		return
	}

	desc := bufio.NewScanner(bytes.NewBufferString(md.DescriptionMarkdown()))
	b.WriteString("# " + c.Name() + "\n")

	for desc.Scan() {
		line := desc.Text()
		if len(line) != 0 && line[0] == '#' {
			line = "#" + line
		}

		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func write(path, content string) {
	err := os.MkdirAll(filepath.Dir(path), os.ModePerm)
	if err != nil {
		panic(err)
	}

	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	if err != nil {
		panic(err)
	}
}

func main() {
	var parsersBuilder strings.Builder
	var transformersBuilder strings.Builder
	var generatorsBuilder strings.Builder
	var typesBuilder strings.Builder

	for _, p := range config.Parsers {
		describe(&parsersBuilder, p)
	}

	for _, t := range config.Transformers {
		describe(&transformersBuilder, t)
	}

	for _, g := range config.Generators {
		describe(&generatorsBuilder, g)
	}

	typesBuilder.WriteString("# Inputs and outputs\n\n")
	typesBuilder.WriteString(markdown.TypesTable(typemap.Table(typemap.InOut)))
	typesBuilder.WriteString("\n# Attributes\n\n")
	typesBuilder.WriteString(markdown.TypesTable(typemap.Table(typemap.Attribute)))

	write("./docs/cli/parsers/README.md", markdown.GenTOC("# Parsers\n", parsersBuilder.String()))
	write("./docs/cli/transformers/README.md", markdown.GenTOC("# Operator transformers\n", transformersBuilder.String()))
	write("./docs/cli/generators/README.md", markdown.GenTOC("# Code generators\n", generatorsBuilder.String()))
	write("./docs/cli/types/README.md", markdown.GenTOC("# Schema types\n", typesBuilder.String()))
}
