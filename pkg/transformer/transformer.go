package transformer

import (
	"context"

	"github.com/tamasfe/opgen/pkg/common"
	"github.com/tamasfe/opgen/pkg/spec"
)

// Transformer transforms a parsed operator set
// before code generation.
type Transformer interface {
	common.DescriptionMarkdown

	// The name of the transformer.
	Name() string

	// A short description of the transformer.
	Description() string

	// DefaultOptions Returns the default options of the transformer, or nil if it has none.
	DefaultOptions() interface{}

	// Transform transforms the operator set based on options.
	//
	// Operators must not be modified in place, changed
	// operators replace the old ones in the operator set.
	Transform(ctx context.Context, options interface{}, sp *spec.Spec) error
}
