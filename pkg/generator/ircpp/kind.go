package ircpp

import "github.com/tamasfe/opgen/pkg/spec"

// CheckKind is the shape of the runtime type check of an input or output.
type CheckKind int

// The four check shapes, one for every (optional, vector) combination.
const (
	// CheckPlain asserts the type of the value.
	CheckPlain CheckKind = iota

	// CheckVector asserts the type of every element if the value
	// is a vector, and the type of the value itself otherwise.
	CheckVector

	// CheckOptional is CheckPlain, but only if the value is present.
	CheckOptional

	// CheckOptionalVector is CheckVector, but only if the value is present.
	CheckOptionalVector
)

// CheckKinds lists every check kind.
var CheckKinds = []CheckKind{CheckPlain, CheckVector, CheckOptional, CheckOptionalVector}

// KindOf selects the check kind for the flags.
func KindOf(optional, vector bool) CheckKind {
	switch {
	case optional && vector:
		return CheckOptionalVector
	case optional:
		return CheckOptional
	case vector:
		return CheckVector
	default:
		return CheckPlain
	}
}

// SlotKind selects the check kind of a slot.
func SlotKind(s *spec.Slot) CheckKind {
	return KindOf(s.Optional, s.Vector)
}

// Optional reports whether the check is gated on presence.
func (k CheckKind) Optional() bool {
	return k == CheckOptional || k == CheckOptionalVector
}

// Vector reports whether the check tolerates vectors.
func (k CheckKind) Vector() bool {
	return k == CheckVector || k == CheckOptionalVector
}

func (k CheckKind) String() string {
	switch k {
	case CheckPlain:
		return "plain"
	case CheckVector:
		return "vector"
	case CheckOptional:
		return "optional"
	case CheckOptionalVector:
		return "optional-vector"
	default:
		return "unknown"
	}
}
