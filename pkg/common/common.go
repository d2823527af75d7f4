package common

import (
	"context"
	"path/filepath"
)

// DescriptionMarkdown simply allows for getting markdown text.
type DescriptionMarkdown interface {
	DescriptionMarkdown() string
}

// Options provides information and settings
// for all parsers, transformers and generators.
type Options struct {
	// Namespaces of the generated code, outermost first.
	Namespaces []string

	// HeaderFile is the path of the generated interface document.
	HeaderFile string

	// Comments enables the banner comment of the generated files.
	Comments bool

	// Timestamp adds the generation time to the banner.
	// The output is no longer reproducible if it is set.
	Timestamp bool
}

// DefaultOptions returns the default options
func DefaultOptions() *Options {
	return &Options{
		Comments:  true,
		Timestamp: false,
	}
}

// State is a shared state for an entire code generation process.
// It is only accessed from one goroutine.
type State struct {
	sources []string
	records int
}

// AddSource records a parsed schema document and the number of operators in it.
func (s *State) AddSource(path string, records int) {
	s.sources = append(s.sources, path)
	s.records += records
}

// Sources returns the parsed schema documents in order.
func (s *State) Sources() []string {
	return s.sources
}

// SourceNames returns the base names of the parsed schema documents.
func (s *State) SourceNames() []string {
	names := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		names = append(names, filepath.Base(src))
	}
	return names
}

// Records returns the number of operator records parsed.
func (s *State) Records() int {
	return s.records
}

// ContextKey is a custom key type for contexts
type ContextKey string

// Context key values
const (
	ContextState         ContextKey = "state"
	ContextCommonOptions ContextKey = "options"
)

// StateFrom returns the state of the context, or nil.
func StateFrom(ctx context.Context) *State {
	state, _ := ctx.Value(ContextState).(*State)
	return state
}

// OptionsFrom returns the common options of the context, or the defaults.
func OptionsFrom(ctx context.Context) *Options {
	options, ok := ctx.Value(ContextCommonOptions).(*Options)
	if !ok {
		return DefaultOptions()
	}
	return options
}
