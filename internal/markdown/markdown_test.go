package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testOptions struct {
	DialectName string   `yaml:"dialectName" description:"Prefix of the registered names"`
	Namespaces  []string `yaml:"namespaces,omitempty" description:"Namespaces of the generated code"`
}

func TestOptionsTable(t *testing.T) {
	table := OptionsTable(testOptions{DialectName: "pd"})

	lines := strings.Split(strings.TrimSpace(table), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "dialectName|Prefix of the registered names.|string|"))
	assert.Contains(t, lines[2], `<pre lang="yaml">pd</pre>`)
	assert.True(t, strings.HasPrefix(lines[3], "namespaces|"))
}

func TestTargetsTableIsSorted(t *testing.T) {
	table := TargetsTable(map[string]string{"source": "b", "header": "a"})

	assert.Less(t, strings.Index(table, "header|a|"), strings.Index(table, "source|b|"))
}

func TestTypesTable(t *testing.T) {
	table := TypesTable(map[string]string{"float": "ir::FloatAttribute"})

	assert.Contains(t, table, "`float`|`ir::FloatAttribute`|\n")
}

func TestGenTOC(t *testing.T) {
	md := "# ir-cpp\n## Description\ntext\n### Deep\n## List of all options\n"

	out := GenTOC("# Generators\n", md)

	assert.True(t, strings.HasPrefix(out,
		"# Generators\n"+
			"* [ir-cpp](#ir-cpp)\n"+
			"  * [Description](#description)\n"+
			"  * [List of all options](#list-of-all-options)\n"+
			"\n",
	))
	assert.NotContains(t, out, "(#deep)")
	assert.True(t, strings.HasSuffix(out, md))
}
