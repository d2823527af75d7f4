package ircpp

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/valyala/fasttemplate"
)

// Single line stubs, substituted with fasttemplate.
const (
	inputAccessor = "  ir::OpOperand {{name}}() { return operation()->GetOperandByIndex({{index}}); }\n"

	outputAccessor = "  ir::OpResult {{name}}() { return operation()->GetResultByIndex({{index}}); }\n"

	attributeTableDefinition = "\nconst char *{{symbol}}::attributes_name[{{num}}] = { {{names}} };\n"

	noAttributesDeclaration = "static constexpr const char **attributes_name = nullptr;"

	attributesDeclaration = "static const char *attributes_name[{{num}}];"
)

// Placeholders for empty check blocks.
const (
	noInputsCheck     = "// Inputs num is 0, not need to check inputs type."
	noOutputsCheck    = "// Outputs num is 0, not need to check outputs type."
	noAttributesCheck = "// Attributes num is 0, not need to check attributes type."
)

var opDeclaration = `
class {{ .Symbol }} : public ir::Op<{{ .Symbol }}{{ range .Interfaces }}, {{ . }}{{ end }}{{ range .Traits }}, {{ . }}{{ end }}> {
 public:
  using Op::Op;
  static const char *name() { return "{{ .RegisteredName }}"; }
  {{ .AttributesDeclaration }}
  static constexpr uint32_t attributes_num = {{ .NumAttributes }};
  static void verify(const std::vector<ir::OpResult> &inputs, const std::vector<ir::Type> &outputs, const ir::AttributeMap &attributes);
{{ .Accessors }}};
`

var opVerify = `
void {{ .Symbol }}::verify(const std::vector<ir::OpResult> &inputs, const std::vector<ir::Type> &outputs, const ir::AttributeMap &attributes) {
  VLOG(4) << "Verifying inputs, outputs and attributes for: {{ .Symbol }}.";

  // Verify inputs type:
  PADDLE_ENFORCE_EQ(inputs.size(), {{ .NumInputs }},
                    phi::errors::PreconditionNotMet("The size %d of inputs must be equal to {{ .NumInputs }}.", inputs.size()));
{{ .InputChecks | indent 2 }}

  // Verify outputs type:
  PADDLE_ENFORCE_EQ(outputs.size(), {{ .NumOutputs }},
                    phi::errors::PreconditionNotMet("The size %d of outputs must be equal to {{ .NumOutputs }}.", outputs.size()));
{{ .OutputChecks | indent 2 }}

  // Verify if attributes contain attribute name in attributes_name:
{{ .AttributeChecks | indent 2 }}
}
`

var typeCheck = `
PADDLE_ENFORCE_EQ({{ .TypeExpr }}.isa<{{ .Type }}>(), true,
                  phi::errors::PreconditionNotMet("Type validation failed for the {{ .Index }}th {{ .Role }}."));`[1:]

var vectorCheck = `
if ({{ .TypeExpr }}.isa<ir::VectorType>()) {
  for (size_t i = 0; i < {{ .TypeExpr }}.dyn_cast<ir::VectorType>().size(); i++) {
    PADDLE_ENFORCE_EQ({{ .TypeExpr }}.dyn_cast<ir::VectorType>()[i].isa<{{ .Type }}>(), true,
                      phi::errors::PreconditionNotMet("Type validation failed for the {{ .Index }}th {{ .Role }}."));
  }
} else {
{{ .Inner | indent 2 }}
}`[1:]

var optionalCheck = `
if ({{ .ValueExpr }}) {
{{ .Inner | indent 2 }}
}`[1:]

var attributeCheck = `
PADDLE_ENFORCE_EQ(attributes.at("{{ .Name }}").isa<{{ .Type }}>(), true,
                  phi::errors::PreconditionNotMet("Type of attribute: {{ .Name }} is not right."));`[1:]

var attributeArrayCheck = `
PADDLE_ENFORCE_EQ(attributes.at("{{ .Name }}").isa<ir::ArrayAttribute>(), true,
                  phi::errors::PreconditionNotMet("Type of attribute: {{ .Name }} is not right."));
for (size_t i = 0; i < attributes.at("{{ .Name }}").dyn_cast<ir::ArrayAttribute>().size(); i++) {
  PADDLE_ENFORCE_EQ(attributes.at("{{ .Name }}").dyn_cast<ir::ArrayAttribute>()[i].isa<{{ .Type }}>(), true,
                    phi::errors::PreconditionNotMet("Type of attribute: {{ .Name }} is not right."));
}`[1:]

var namespaceGuard = `
namespace {{ .Namespace }} {
{{ .Inner }}
} // namespace {{ .Namespace }}`[1:]

var headerFile = `
{{ .Banner }}#ifdef GET_OP_LIST
#undef GET_OP_LIST
{{ join ", " .Symbols }}
#else
{{ if .Guard }}
#ifndef {{ .Guard }}
#define {{ .Guard }}
{{ end }}
{{ range .Includes }}#include "{{ . }}"
{{ end }}
{{ .Body }}
{{ if .Guard }}
#endif  // {{ .Guard }}
{{ end }}#endif
`[1:]

var sourceFile = `
{{ .Banner }}#include "{{ .HeaderFile }}"
{{ range .Includes }}#include "{{ . }}"
{{ end }}
{{ .Body }}
`[1:]

var templates = template.Must(parseAll(map[string]string{
	"declaration":    opDeclaration,
	"verify":         opVerify,
	"typeCheck":      typeCheck,
	"vectorCheck":    vectorCheck,
	"optionalCheck":  optionalCheck,
	"attributeCheck": attributeCheck,
	"attributeArray": attributeArrayCheck,
	"namespace":      namespaceGuard,
	"header":         headerFile,
	"source":         sourceFile,
}))

func parseAll(texts map[string]string) (*template.Template, error) {
	root := template.New("ircpp").Funcs(sprig.TxtFuncMap())

	for name, text := range texts {
		_, err := root.New(name).Parse(text)
		if err != nil {
			return nil, err
		}
	}

	return root, nil
}

// render executes a named template, the templates are
// static so a failure is a bug in this package.
func render(name string, data interface{}) string {
	buf := &bytes.Buffer{}

	err := templates.ExecuteTemplate(buf, name, data)
	if err != nil {
		panic(err)
	}

	return buf.String()
}

// stub substitutes the tags of a single line stub.
func stub(text string, values map[string]string) string {
	m := make(map[string]interface{}, len(values))
	for k, v := range values {
		m[k] = v
	}
	return fasttemplate.ExecuteString(text, "{{", "}}", m)
}
