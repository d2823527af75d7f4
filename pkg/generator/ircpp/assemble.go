package ircpp

import (
	"strings"

	"github.com/tamasfe/opgen/pkg/naming"
	"github.com/tamasfe/opgen/pkg/spec"
)

// Includes of the generated documents.
var (
	DefaultHeaderIncludes = []string{
		"paddle/ir/core/op_base.h",
	}

	DefaultSourceIncludes = []string{
		"paddle/fluid/dialect/pd_type.h",
		"paddle/fluid/dialect/pd_attribute.h",
		"paddle/ir/core/builtin_attribute.h",
		"paddle/ir/core/builtin_type.h",
		"paddle/ir/core/ir_context.h",
		"paddle/phi/core/enforce.h",
	}
)

// AssembleOptions controls the layout of the generated documents.
type AssembleOptions struct {
	// Namespaces, outermost first.
	Namespaces []string

	// HeaderFile is included by the source document as is.
	HeaderFile string

	HeaderIncludes []string
	SourceIncludes []string

	// Guard is the include guard macro, no guard is emitted if empty.
	Guard string

	// Banner is prepended to both documents.
	Banner string
}

// Artifacts are the generated documents.
type Artifacts struct {
	Header string
	Source string

	// Symbols are the namespace qualified symbols
	// of the declared operators in order.
	Symbols []string
}

type headerValues struct {
	Banner   string
	Symbols  []string
	Guard    string
	Includes []string
	Body     string
}

type sourceValues struct {
	Banner     string
	HeaderFile string
	Includes   []string
	Body       string
}

type namespaceValues struct {
	Namespace string
	Inner     string
}

// Assemble generates the interface and implementation documents
// of the operators, preserving their order.
func Assemble(ops []*spec.Operator, options AssembleOptions) *Artifacts {
	var (
		symbols      = make([]string, 0, len(ops))
		declarations strings.Builder
		definitions  strings.Builder
	)

	for _, op := range ops {
		symbols = append(symbols, naming.Qualified(options.Namespaces, op.Symbol))

		declarations.WriteString(Declare(op))

		definitions.WriteString(AttributeTable(op))
		definitions.WriteString(Verify(op))
	}

	return &Artifacts{
		Header: render("header", &headerValues{
			Banner:   options.Banner,
			Symbols:  symbols,
			Guard:    options.Guard,
			Includes: options.HeaderIncludes,
			Body:     wrapNamespaces(options.Namespaces, declarations.String()),
		}),
		Source: render("source", &sourceValues{
			Banner:     options.Banner,
			HeaderFile: options.HeaderFile,
			Includes:   options.SourceIncludes,
			Body:       wrapNamespaces(options.Namespaces, definitions.String()),
		}),
		Symbols: symbols,
	}
}

// wrapNamespaces wraps the body in the namespaces, the first one is outermost.
func wrapNamespaces(namespaces []string, body string) string {
	for i := len(namespaces) - 1; i >= 0; i-- {
		body = render("namespace", &namespaceValues{
			Namespace: namespaces[i],
			Inner:     body,
		})
	}

	return body
}
