package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tamasfe/opgen/cmd/opgen/config"
)

func TestInitConfigDefaults(t *testing.T) {
	conf, err := initConfig(true, func(qs []*survey.Question, response interface{}, opts ...survey.AskOpt) error {
		t.Fatal("no questions should be asked")
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, config.DefaultOpGenOptions(), conf)
}

func TestInitConfigAnswers(t *testing.T) {
	var asked []string

	conf, err := initConfig(false, func(qs []*survey.Question, response interface{}, opts ...survey.AskOpt) error {
		for _, q := range qs {
			asked = append(asked, q.Name)
		}

		a := response.(*initAnswers)
		a.Sources = "ops.yaml, backward.yaml"
		a.DialectName = "cinn"
		a.Namespaces = "cinn,dialect"
		a.HeaderFile = "cinn_op.h"
		a.SourceFile = "cinn_op.cc"
		a.Comments = false
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"sources", "dialectName", "namespaces", "headerFile", "sourceFile", "comments"}, asked)
	assert.Equal(t, []string{"ops.yaml", "backward.yaml"}, conf.Sources)
	assert.Equal(t, "cinn", conf.DialectName)
	assert.Equal(t, []string{"cinn", "dialect"}, conf.Namespaces)
	assert.Equal(t, "cinn_op.h", conf.HeaderFile)
	assert.False(t, conf.Comments)
	assert.NoError(t, config.ValidateOpGenOptions(conf))
}

func TestInitConfigInterrupted(t *testing.T) {
	_, err := initConfig(false, func(qs []*survey.Question, response interface{}, opts ...survey.AskOpt) error {
		return errors.New("interrupt")
	})
	assert.EqualError(t, err, "interrupt")
}

func TestPrintTypesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, printTypesJSON(buf))

	var entries []typeEntry
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &entries))

	assert.Contains(t, entries, typeEntry{Token: "Tensor[]", Category: "input/output", Type: "ir::VectorType<paddle::dialect::DenseTensorType>"})
	assert.Contains(t, entries, typeEntry{Token: "float", Category: "attribute", Type: "ir::FloatAttribute"})
}

func TestAllOptionsRoundTrip(t *testing.T) {
	b, err := marshalYAML(allOptions())
	require.NoError(t, err)

	out := string(b)
	assert.Contains(t, out, "name: opschema")
	assert.Contains(t, out, "includeGuard: true")

	conf := config.DefaultOpGenOptions()
	require.NoError(t, yaml.Unmarshal(b, conf))
	assert.Equal(t, "ir-cpp", conf.Generator.Name)
}
