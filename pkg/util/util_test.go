package util

import (
	"strings"
	"testing"

	"gopkg.in/go-playground/assert.v1"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, SplitList("paddle, dialect,,"), []string{"paddle", "dialect"})
	assert.Equal(t, len(SplitList("")), 0)
}

func TestJoinList(t *testing.T) {
	assert.Equal(t, JoinList([]string{"paddle", "dialect"}), "paddle, dialect")
	assert.Equal(t, SplitList(JoinList([]string{"paddle", "dialect"})), []string{"paddle", "dialect"})
}

func TestQuoteJoin(t *testing.T) {
	assert.Equal(t, QuoteJoin([]string{"axis", "keepdim"}, ", "), `"axis", "keepdim"`)
	assert.Equal(t, QuoteJoin([]string{"factor"}, ", "), `"factor"`)
	assert.Equal(t, QuoteJoin(nil, ", "), "")
}

type describedOptions struct {
	DialectName string `yaml:"dialectName" description:"Prefix of the registered names"`
	Comments    bool   `yaml:"comments" description:"Enable comments"`
}

func TestMarshalYAMLWithDescriptions(t *testing.T) {
	node, err := MarshalYAMLWithDescriptions(&describedOptions{DialectName: "pd"})
	assert.Equal(t, err, nil)

	out := string(MustMarshalYAML(node))

	assert.Equal(t, strings.Contains(out, "# Prefix of the registered names."), true)
	assert.Equal(t, strings.Contains(out, "dialectName: pd"), true)
	assert.Equal(t, strings.Contains(out, "# Enable comments."), true)
}

func TestMarshalYAMLWithoutDescriptions(t *testing.T) {
	DisableYAMLMarshalComments = true
	defer func() { DisableYAMLMarshalComments = false }()

	node, err := MarshalYAMLWithDescriptions(&describedOptions{DialectName: "pd"})
	assert.Equal(t, err, nil)

	out := string(MustMarshalYAML(node))
	assert.Equal(t, strings.Contains(out, "#"), false)
}

func TestMarshalYAMLWithDescriptionsRejectsNonStructs(t *testing.T) {
	_, err := MarshalYAMLWithDescriptions([]string{"a"})
	assert.NotEqual(t, err, nil)
}

type decodedOptions struct {
	Includes []string
	Guard    bool
	Name     string
}

func TestDecodeOptions(t *testing.T) {
	opts := &decodedOptions{Includes: []string{"a.h", "b.h"}, Guard: true, Name: "pd"}

	err := DecodeOptions(map[string]interface{}{"includes": []string{"c.h"}}, opts)
	assert.Equal(t, err, nil)
	assert.Equal(t, opts.Includes, []string{"c.h"})
	assert.Equal(t, opts.Guard, true)
	assert.Equal(t, opts.Name, "pd")

	err = DecodeOptions(nil, opts)
	assert.Equal(t, err, nil)
	assert.Equal(t, opts.Name, "pd")
	assert.Equal(t, opts.Guard, true)
	assert.Equal(t, opts.Includes, []string{"c.h"})

	err = DecodeOptions(map[string]interface{}{}, opts)
	assert.Equal(t, err, nil)
	assert.Equal(t, opts.Name, "pd")
	assert.Equal(t, opts.Includes, []string{"c.h"})

	err = DecodeOptions(map[string]interface{}{"guard": "yes"}, opts)
	assert.NotEqual(t, err, nil)
}
