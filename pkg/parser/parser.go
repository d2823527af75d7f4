package parser

import (
	"context"

	"github.com/tamasfe/opgen/pkg/spec"
)

// Parser parses operator schema documents, and returns
// the normalized spec needed for code generation.
type Parser interface {
	// The name of the parser.
	Name() string

	// A short description of the parser.
	Description() string

	// DefaultOptions Returns the default options of the parser, or nil if it has none.
	DefaultOptions() interface{}

	// Parse parses a single schema document from data.
	Parse(ctx context.Context, options interface{}, data []byte) (*spec.Spec, error)

	// ParseResources parses one or more schema documents,
	// and concatenates their operators in the given order.
	ParseResources(ctx context.Context, options interface{}, paths ...string) (*spec.Spec, error)
}
