// Package markdown renders the tables of the component documentation.
package markdown

import (
	"bufio"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// OptionsTable lists the fields of an options struct
// along with their default values.
func OptionsTable(opts interface{}) string {
	var entriesBuilder strings.Builder

	optsTp := reflect.TypeOf(opts)
	optsVal := reflect.ValueOf(opts)

	entriesBuilder.WriteString(`
| Option | Description | Type | Default Value |
|:------:|-------------|:----:|:--------------|	
`[1:])

	fieldNames := make(map[string]int, optsTp.NumField())
	fields := make([]string, 0, optsTp.NumField())
	for i := 0; i < optsTp.NumField(); i++ {
		field := optsTp.Field(i)
		fieldNames[field.Name] = i
		fields = append(fields, field.Name)
	}

	sort.Strings(fields)

	for _, f := range fields {
		field := optsTp.Field(fieldNames[f])
		val := optsVal.Field(fieldNames[f]).Interface()

		valB, err := yaml.Marshal(val)
		if err != nil {
			panic(err)
		}

		_, err = entriesBuilder.WriteString(
			strings.Join(
				[]string{
					strings.Split(field.Tag.Get("yaml"), ",")[0],
					field.Tag.Get("description") + ".",
					field.Type.String(),
					strings.Replace("<pre lang=\"yaml\">"+string(valB[:len(valB)-1])+"</pre>", "\n", "<br>", -1),
				},
				"|",
			) + "|\n",
		)

		if err != nil {
			panic(err)
		}
	}

	return entriesBuilder.String()
}

// ValuesTable lists the fields of a template values struct.
func ValuesTable(values interface{}) string {
	var entriesBuilder strings.Builder

	optsTp := reflect.TypeOf(values)

	entriesBuilder.WriteString(`
| Value | Description |
|:-----:|-------------|
`[1:])

	fieldNames := make(map[string]int, optsTp.NumField())
	fields := make([]string, 0, optsTp.NumField())
	for i := 0; i < optsTp.NumField(); i++ {
		field := optsTp.Field(i)
		fieldNames[field.Name] = i
		fields = append(fields, field.Name)
	}

	sort.Strings(fields)

	for _, f := range fields {
		field := optsTp.Field(fieldNames[f])

		_, err := entriesBuilder.WriteString(
			strings.Join(
				[]string{
					field.Name,
					field.Tag.Get("description"),
				},
				"|",
			) + "|\n",
		)
		if err != nil {
			panic(err)
		}
	}

	return entriesBuilder.String()
}

// TargetsTable lists the targets of a generator.
func TargetsTable(targets map[string]string) string {
	var entriesBuilder strings.Builder

	entriesBuilder.WriteString(`
| Target | Description |
|:------:|-------------|
`[1:])

	keys := make([]string, 0, len(targets))
	for k := range targets {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		entriesBuilder.WriteString(
			strings.Join(
				[]string{
					k,
					targets[k],
				},
				"|") + "|\n",
		)
	}

	return entriesBuilder.String()
}

// TypesTable lists the schema type tokens and the types they map to.
func TypesTable(types map[string]string) string {
	var entriesBuilder strings.Builder

	entriesBuilder.WriteString(`
| Token | Type |
|:-----:|------|
`[1:])

	keys := make([]string, 0, len(types))
	for k := range types {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		entriesBuilder.WriteString("`" + k + "`|`" + types[k] + "`|\n")
	}

	return entriesBuilder.String()
}

// GenTOC prepends the header and a table of contents
// of the second level headings to the document.
func GenTOC(header, md string) string {
	var toc strings.Builder

	scanner := bufio.NewScanner(strings.NewReader(md))
	for scanner.Scan() {
		line := scanner.Text()

		level := len(line) - len(strings.TrimLeft(line, "#"))
		if level == 0 || level > 2 || !strings.HasPrefix(line[level:], " ") {
			continue
		}

		title := strings.TrimSpace(line[level:])

		toc.WriteString(strings.Repeat("  ", level-1) + "* [" + title + "](#" + anchor(title) + ")\n")
	}

	return header + toc.String() + "\n" + md
}

// anchor returns the GitHub anchor of a heading.
func anchor(title string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '-'
		case r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return -1
		}
	}, title)
}
