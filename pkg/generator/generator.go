package generator

import (
	"context"

	"github.com/tamasfe/opgen/pkg/spec"
)

// Targets every generator must support.
const (
	TargetHeader = "header"
	TargetSource = "source"
)

// Generator generates code (e.g. for an IR)
type Generator interface {
	// The name of the generator.
	Name() string

	// A short description of the generator.
	Description() string

	// Targets returns the targets the generator supports along with their summaries.
	Targets() map[string]string

	// DefaultOptions Returns the default options of the generator, or nil if it has none.
	DefaultOptions() interface{}

	// Generate generates the document of the target based on the options.
	// It must not write anything, the caller decides where the output goes.
	Generate(ctx context.Context, options interface{}, sp *spec.Spec, target string) (string, error)
}

// SymbolLister is implemented by generators that can list
// the symbols they declare, in declaration order.
type SymbolLister interface {
	Symbols(ctx context.Context, options interface{}, sp *spec.Spec) ([]string, error)
}
