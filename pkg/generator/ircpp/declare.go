package ircpp

import (
	"strconv"
	"strings"

	"github.com/tamasfe/opgen/pkg/spec"
	"github.com/tamasfe/opgen/pkg/util"
)

type declarationValues struct {
	Symbol                string
	RegisteredName        string
	Interfaces            []string
	Traits                []string
	AttributesDeclaration string
	NumAttributes         int
	Accessors             string
}

// Declare returns the class declaration of the operator.
func Declare(op *spec.Operator) string {
	return render("declaration", &declarationValues{
		Symbol:                op.Symbol,
		RegisteredName:        op.RegisteredName,
		Interfaces:            op.Interfaces,
		Traits:                op.Traits,
		AttributesDeclaration: AttributesDeclaration(op),
		NumAttributes:         len(op.Attributes),
		Accessors:             Accessors(op),
	})
}

// Accessors returns the operand accessors followed by the result accessors.
// The accessor of the slot at index i fetches the operand or result i.
func Accessors(op *spec.Operator) string {
	var b strings.Builder

	for i, in := range op.Inputs {
		b.WriteString(stub(inputAccessor, map[string]string{
			"name":  in.Name,
			"index": strconv.Itoa(i),
		}))
	}

	for i, out := range op.Outputs {
		b.WriteString(stub(outputAccessor, map[string]string{
			"name":  out.Name,
			"index": strconv.Itoa(i),
		}))
	}

	return b.String()
}

// AttributesDeclaration declares the attribute name table,
// which is a null table if the operator has no attributes.
func AttributesDeclaration(op *spec.Operator) string {
	if len(op.Attributes) == 0 {
		return noAttributesDeclaration
	}

	return stub(attributesDeclaration, map[string]string{
		"num": strconv.Itoa(len(op.Attributes)),
	})
}

// AttributeTable defines the attribute name table declared by Declare.
// It is empty if the operator has no attributes.
func AttributeTable(op *spec.Operator) string {
	if len(op.Attributes) == 0 {
		return ""
	}

	return stub(attributeTableDefinition, map[string]string{
		"symbol": op.Symbol,
		"num":    strconv.Itoa(len(op.Attributes)),
		"names":  util.QuoteJoin(op.AttributeNames(), ", "),
	})
}
