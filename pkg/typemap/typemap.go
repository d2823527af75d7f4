// Package typemap maps schema type tokens to the
// type identifiers used in the generated IR code.
//
// The tables are plain immutable lookup tables,
// one for operands/results and one for attributes.
package typemap

import (
	"sort"

	"github.com/tamasfe/opgen/pkg/errs"
)

// Category selects the table a token is resolved in.
type Category int

const (
	// InOut is the category of operator inputs and outputs.
	InOut Category = iota

	// Attribute is the category of operator attributes.
	Attribute
)

func (c Category) String() string {
	switch c {
	case InOut:
		return "input/output"
	case Attribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// Container types wrapping list tokens.
const (
	VectorType     = "ir::VectorType"
	ArrayAttribute = "ir::ArrayAttribute"
)

// Mapping is a resolved type token.
type Mapping struct {
	// Type is the element type identifier,
	// it is never empty for a resolved token.
	Type string

	// List is true if the token denotes
	// a homogeneous list of Type.
	List bool

	category Category
}

// Full returns the type with its container if it is a list.
func (m Mapping) Full() string {
	if !m.List {
		return m.Type
	}

	if m.category == Attribute {
		return ArrayAttribute + "<" + m.Type + ">"
	}

	return VectorType + "<" + m.Type + ">"
}

const (
	denseTensor    = "paddle::dialect::DenseTensorType"
	intArrayAttr   = "paddle::dialect::IntArrayAttribute"
	scalarAttr     = "paddle::dialect::ScalarAttribute"
	placeAttr      = "paddle::dialect::PlaceAttribute"
	dataLayoutAttr = "paddle::dialect::DataLayoutAttribute"
	dataTypeAttr   = "paddle::dialect::DataTypeAttribute"
)

var inOutTypes = map[string]Mapping{
	"Tensor":   {Type: denseTensor},
	"Tensor[]": {Type: denseTensor, List: true},
}

var attributeTypes = map[string]Mapping{
	"int":             {Type: "ir::Int32_tAttribute"},
	"int32_t":         {Type: "ir::Int32_tAttribute"},
	"int64_t":         {Type: "ir::Int64_tAttribute"},
	"long":            {Type: "ir::LongAttribute"},
	"size_t":          {Type: "ir::Size_tAttribute"},
	"uint8_t":         {Type: "ir::UInt8_tAttribute"},
	"uint32_t":        {Type: "ir::UInt32_tAttribute"},
	"uint64_t":        {Type: "ir::UInt64_tAttribute"},
	"float":           {Type: "ir::FloatAttribute"},
	"double":          {Type: "ir::DoubleAttribute"},
	"bool":            {Type: "ir::BoolAttribute"},
	"str":             {Type: "ir::StrAttribute"},
	"Place":           {Type: placeAttr},
	"DataLayout":      {Type: dataLayoutAttr},
	"DataType":        {Type: dataTypeAttr},
	"IntArray":        {Type: intArrayAttr},
	"Scalar":          {Type: scalarAttr},
	"Scalar(int)":     {Type: scalarAttr},
	"Scalar(int64_t)": {Type: scalarAttr},
	"Scalar(float)":   {Type: scalarAttr},
	"Scalar(double)":  {Type: scalarAttr},
	"int[]":           {Type: "ir::Int32_tAttribute", List: true},
	"int64_t[]":       {Type: "ir::Int64_tAttribute", List: true},
	"float[]":         {Type: "ir::FloatAttribute", List: true},
	"double[]":        {Type: "ir::DoubleAttribute", List: true},
	"bool[]":          {Type: "ir::BoolAttribute", List: true},
	"str[]":           {Type: "ir::StrAttribute", List: true},
	"Scalar[]":        {Type: scalarAttr, List: true},
}

func table(c Category) map[string]Mapping {
	if c == Attribute {
		return attributeTypes
	}
	return inOutTypes
}

// Resolve looks up the token in the table of the category.
//
// The operator name is only used for the error,
// so it can be located in a batch of operators.
func Resolve(c Category, op, token string) (Mapping, error) {
	m, ok := table(c)[token]
	if !ok {
		return Mapping{}, errs.ErrUnsupportedType(op, c.String(), token)
	}

	m.category = c
	return m, nil
}

// Tokens returns all the supported tokens of a category in sorted order.
func Tokens(c Category) []string {
	t := table(c)

	tokens := make([]string, 0, len(t))
	for k := range t {
		tokens = append(tokens, k)
	}

	sort.Strings(tokens)

	return tokens
}

// Table returns the tokens of a category with the full types they map to.
func Table(c Category) map[string]string {
	t := table(c)

	out := make(map[string]string, len(t))
	for k, m := range t {
		m.category = c
		out[k] = m.Full()
	}

	return out
}
