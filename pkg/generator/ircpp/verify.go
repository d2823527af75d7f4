package ircpp

import (
	"fmt"
	"strings"

	"github.com/tamasfe/opgen/pkg/spec"
)

// Roles of the checked slots.
const (
	RoleInput  = "input"
	RoleOutput = "output"
)

type verifyValues struct {
	Symbol          string
	NumInputs       int
	NumOutputs      int
	InputChecks     string
	OutputChecks    string
	AttributeChecks string
}

type slotCheckValues struct {
	Role      string
	Index     int
	Type      string
	ValueExpr string
	TypeExpr  string
	Inner     string
}

type attributeCheckValues struct {
	Name string
	Type string
}

// Verify returns the definition of the verify routine of the operator.
//
// It asserts the number of inputs and outputs, then the type of every
// input and output by position, then the type of every attribute by name.
func Verify(op *spec.Operator) string {
	return render("verify", &verifyValues{
		Symbol:          op.Symbol,
		NumInputs:       len(op.Inputs),
		NumOutputs:      len(op.Outputs),
		InputChecks:     slotChecks(RoleInput, op.Inputs, noInputsCheck),
		OutputChecks:    slotChecks(RoleOutput, op.Outputs, noOutputsCheck),
		AttributeChecks: attributeChecks(op.Attributes),
	})
}

func slotChecks(role string, slots []*spec.Slot, placeholder string) string {
	if len(slots) == 0 {
		return placeholder
	}

	checks := make([]string, 0, len(slots))
	for i, s := range slots {
		checks = append(checks, SlotCheck(role, i, s))
	}

	return strings.Join(checks, "\n")
}

// SlotCheck returns the type check of the input or output at the index.
func SlotCheck(role string, index int, s *spec.Slot) string {
	v := &slotCheckValues{
		Role:  role,
		Index: index,
		Type:  s.Type,
	}

	// Inputs are operation results, outputs are already types.
	if role == RoleInput {
		v.ValueExpr = fmt.Sprintf("inputs[%v]", index)
		v.TypeExpr = v.ValueExpr + ".type()"
	} else {
		v.ValueExpr = fmt.Sprintf("outputs[%v]", index)
		v.TypeExpr = v.ValueExpr
	}

	return check(SlotKind(s), v)
}

func check(kind CheckKind, v *slotCheckValues) string {
	plain := render("typeCheck", v)

	switch kind {
	case CheckPlain:
		return plain
	case CheckVector:
		return vector(v, plain)
	case CheckOptional:
		return optional(v, plain)
	case CheckOptionalVector:
		return optional(v, vector(v, plain))
	default:
		panic(fmt.Sprintf("unknown check kind %v", int(kind)))
	}
}

func vector(v *slotCheckValues, inner string) string {
	w := *v
	w.Inner = inner
	return render("vectorCheck", &w)
}

func optional(v *slotCheckValues, inner string) string {
	w := *v
	w.Inner = inner
	return render("optionalCheck", &w)
}

func attributeChecks(attrs []*spec.AttrSlot) string {
	if len(attrs) == 0 {
		return noAttributesCheck
	}

	checks := make([]string, 0, len(attrs))
	for _, a := range attrs {
		checks = append(checks, AttributeCheck(a))
	}

	return strings.Join(checks, "\n")
}

// AttributeCheck returns the type check of the attribute,
// which is looked up by its name.
func AttributeCheck(a *spec.AttrSlot) string {
	v := &attributeCheckValues{
		Name: a.Name,
		Type: a.Type,
	}

	if a.Array {
		return render("attributeArray", v)
	}

	return render("attributeCheck", v)
}
