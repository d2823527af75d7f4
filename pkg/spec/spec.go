package spec

// Spec is the normalized form of all the operator
// schemas of one generation run.
//
// The order of the operators is the order they
// appeared in the schema documents, and it is kept
// in the generated code as well.
type Spec struct {
	// Dialect is the prefix of the registered operator names.
	Dialect string `json:"dialect"`

	// Operators in source order.
	Operators []*Operator `json:"operators"`
}

// Operator is the normalized definition of one operator.
//
// It is built once from a raw schema record and
// it is not modified after that.
type Operator struct {
	// Name is the short name declared in the schema.
	Name string `json:"name"`

	// Symbol is the name of the generated class.
	Symbol string `json:"symbol"`

	// RegisteredName is the runtime lookup key, "<dialect>.<name>".
	RegisteredName string `json:"registeredName"`

	// Inputs of the operator. The accessor for
	// the input at index i fetches the operand i.
	Inputs []*Slot `json:"inputs"`

	// Outputs of the operator, positional like the inputs.
	Outputs []*Slot `json:"outputs"`

	// Attributes of the operator. They are
	// looked up by name at runtime.
	Attributes []*AttrSlot `json:"attributes"`

	// Interfaces the generated class implements, if any.
	Interfaces []string `json:"interfaces,omitempty"`

	// Traits of the generated class, if any.
	Traits []string `json:"traits,omitempty"`
}

// Slot is an input or an output of an operator.
type Slot struct {
	Name string `json:"name"`

	// Type is the resolved element type.
	Type string `json:"type"`

	// Vector means the slot is a homogeneous list of Type.
	Vector bool `json:"vector"`

	// Optional means the slot might not be present.
	Optional bool `json:"optional"`
}

// AttrSlot is an attribute of an operator.
type AttrSlot struct {
	Name string `json:"name"`

	// Type is the resolved element type.
	Type string `json:"type"`

	// Array means the attribute is an array attribute of Type.
	Array bool `json:"array"`
}

// Symbols returns the generated class names in order.
func (s *Spec) Symbols() []string {
	if s == nil {
		return nil
	}

	symbols := make([]string, 0, len(s.Operators))
	for _, op := range s.Operators {
		symbols = append(symbols, op.Symbol)
	}
	return symbols
}

// AttributeNames returns the attribute names of the operator in order.
func (o *Operator) AttributeNames() []string {
	names := make([]string, 0, len(o.Attributes))
	for _, a := range o.Attributes {
		names = append(names, a.Name)
	}
	return names
}
