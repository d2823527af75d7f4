package ircpp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamasfe/opgen/pkg/common"
	"github.com/tamasfe/opgen/pkg/generator"
	"github.com/tamasfe/opgen/pkg/spec"
)

func scaleOp() *spec.Operator {
	return &spec.Operator{
		Name:           "scale",
		Symbol:         "ScaleOp",
		RegisteredName: "pd.scale",
		Inputs: []*spec.Slot{
			{Name: "x", Type: "paddle::dialect::DenseTensorType"},
		},
		Outputs: []*spec.Slot{
			{Name: "out", Type: "paddle::dialect::DenseTensorType"},
		},
		Attributes: []*spec.AttrSlot{
			{Name: "factor", Type: "ir::FloatAttribute"},
		},
	}
}

func emptyOp() *spec.Operator {
	return &spec.Operator{
		Name:           "barrier",
		Symbol:         "BarrierOp",
		RegisteredName: "pd.barrier",
	}
}

func TestKindOfIsExhaustive(t *testing.T) {
	seen := map[CheckKind]bool{}

	for _, optional := range []bool{false, true} {
		for _, vector := range []bool{false, true} {
			k := KindOf(optional, vector)
			assert.Equal(t, optional, k.Optional(), k.String())
			assert.Equal(t, vector, k.Vector(), k.String())
			seen[k] = true
		}
	}

	assert.Len(t, seen, len(CheckKinds))
	for _, k := range CheckKinds {
		assert.True(t, seen[k], k.String())
		assert.NotEqual(t, "unknown", k.String())
	}
}

func TestSlotCheckShapes(t *testing.T) {
	const tensor = "paddle::dialect::DenseTensorType"

	tests := []struct {
		name     string
		slot     *spec.Slot
		contains []string
		excludes []string
	}{
		{
			name:     "plain",
			slot:     &spec.Slot{Name: "x", Type: tensor},
			contains: []string{"PADDLE_ENFORCE_EQ(inputs[0].type().isa<" + tensor + ">(), true,"},
			excludes: []string{"ir::VectorType", "if (inputs[0])"},
		},
		{
			name: "vector",
			slot: &spec.Slot{Name: "x", Type: tensor, Vector: true},
			contains: []string{
				"if (inputs[0].type().isa<ir::VectorType>()) {",
				"inputs[0].type().dyn_cast<ir::VectorType>()[i].isa<" + tensor + ">()",
				"} else {\n  PADDLE_ENFORCE_EQ(inputs[0].type().isa<" + tensor + ">(), true,",
			},
			excludes: []string{"if (inputs[0]) {"},
		},
		{
			name:     "optional",
			slot:     &spec.Slot{Name: "x", Type: tensor, Optional: true},
			contains: []string{"if (inputs[0]) {\n  PADDLE_ENFORCE_EQ(inputs[0].type().isa<" + tensor + ">(), true,"},
			excludes: []string{"ir::VectorType"},
		},
		{
			name: "optional vector",
			slot: &spec.Slot{Name: "x", Type: tensor, Optional: true, Vector: true},
			contains: []string{
				"if (inputs[0]) {\n  if (inputs[0].type().isa<ir::VectorType>()) {",
				"  } else {\n    PADDLE_ENFORCE_EQ(inputs[0].type().isa<" + tensor + ">(), true,",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := SlotCheck(RoleInput, 0, tt.slot)

			for _, c := range tt.contains {
				assert.Contains(t, check, c)
			}
			for _, e := range tt.excludes {
				assert.NotContains(t, check, e)
			}
			assert.Contains(t, check, "Type validation failed for the 0th input.")
		})
	}
}

func TestOutputCheckUsesTypes(t *testing.T) {
	check := SlotCheck(RoleOutput, 2, &spec.Slot{Name: "out", Type: "paddle::dialect::DenseTensorType"})

	assert.Contains(t, check, "outputs[2].isa<paddle::dialect::DenseTensorType>()")
	assert.NotContains(t, check, ".type()")
	assert.Contains(t, check, "the 2th output.")
}

func TestAttributeCheck(t *testing.T) {
	direct := AttributeCheck(&spec.AttrSlot{Name: "factor", Type: "ir::FloatAttribute"})
	assert.Contains(t, direct, `attributes.at("factor").isa<ir::FloatAttribute>()`)
	assert.NotContains(t, direct, "ir::ArrayAttribute")

	array := AttributeCheck(&spec.AttrSlot{Name: "axes", Type: "ir::Int64_tAttribute", Array: true})
	assert.Contains(t, array, `attributes.at("axes").isa<ir::ArrayAttribute>()`)
	assert.Contains(t, array, `attributes.at("axes").dyn_cast<ir::ArrayAttribute>()[i].isa<ir::Int64_tAttribute>()`)
}

func TestDeclareScale(t *testing.T) {
	decl := Declare(scaleOp())

	assert.Contains(t, decl, "class ScaleOp : public ir::Op<ScaleOp> {")
	assert.Contains(t, decl, `static const char *name() { return "pd.scale"; }`)
	assert.Contains(t, decl, "static const char *attributes_name[1];")
	assert.Contains(t, decl, "static constexpr uint32_t attributes_num = 1;")
	assert.Contains(t, decl, "ir::OpOperand x() { return operation()->GetOperandByIndex(0); }")
	assert.Contains(t, decl, "ir::OpResult out() { return operation()->GetResultByIndex(0); }")
	assert.True(t, strings.HasSuffix(decl, "};\n"))
}

func TestDeclareInterfacesAndTraits(t *testing.T) {
	op := scaleOp()
	op.Interfaces = []string{"paddle::dialect::InferShapeInterface"}
	op.Traits = []string{"ir::SideEffectFree"}

	assert.Contains(t, Declare(op),
		"class ScaleOp : public ir::Op<ScaleOp, paddle::dialect::InferShapeInterface, ir::SideEffectFree> {")
}

func TestAccessorIndicesFollowOrder(t *testing.T) {
	op := &spec.Operator{
		Symbol: "ConcatOp",
		Inputs: []*spec.Slot{
			{Name: "x"}, {Name: "axis"},
		},
		Outputs: []*spec.Slot{
			{Name: "out"}, {Name: "mask"},
		},
	}

	acc := Accessors(op)

	assert.Contains(t, acc, "x() { return operation()->GetOperandByIndex(0); }")
	assert.Contains(t, acc, "axis() { return operation()->GetOperandByIndex(1); }")
	assert.Contains(t, acc, "out() { return operation()->GetResultByIndex(0); }")
	assert.Contains(t, acc, "mask() { return operation()->GetResultByIndex(1); }")
	assert.Less(t, strings.Index(acc, "x()"), strings.Index(acc, "axis()"))
	assert.Less(t, strings.Index(acc, "axis()"), strings.Index(acc, "out()"))
}

func TestAttributeTable(t *testing.T) {
	op := scaleOp()
	op.Attributes = append(op.Attributes, &spec.AttrSlot{Name: "bias", Type: "ir::FloatAttribute"})

	assert.Equal(t,
		"\nconst char *ScaleOp::attributes_name[2] = { \"factor\", \"bias\" };\n",
		AttributeTable(op),
	)
	assert.Equal(t, "", AttributeTable(emptyOp()))
}

func TestZeroCountPlaceholders(t *testing.T) {
	op := emptyOp()

	decl := Declare(op)
	assert.Contains(t, decl, "static constexpr const char **attributes_name = nullptr;")
	assert.Contains(t, decl, "static constexpr uint32_t attributes_num = 0;")

	verify := Verify(op)
	assert.Contains(t, verify, "PADDLE_ENFORCE_EQ(inputs.size(), 0,")
	assert.Contains(t, verify, "PADDLE_ENFORCE_EQ(outputs.size(), 0,")
	assert.Contains(t, verify, "  "+noInputsCheck)
	assert.Contains(t, verify, "  "+noOutputsCheck)
	assert.Contains(t, verify, "  "+noAttributesCheck)
}

func TestVerifyScale(t *testing.T) {
	verify := Verify(scaleOp())

	assert.Contains(t, verify, "void ScaleOp::verify(const std::vector<ir::OpResult> &inputs,")
	assert.Contains(t, verify, "PADDLE_ENFORCE_EQ(inputs.size(), 1,")
	assert.Contains(t, verify, "PADDLE_ENFORCE_EQ(outputs.size(), 1,")
	assert.Contains(t, verify, `attributes.at("factor").isa<ir::FloatAttribute>()`)
	assert.NotContains(t, verify, "ir::ArrayAttribute")

	inputs := strings.Index(verify, "inputs.size()")
	outputs := strings.Index(verify, "outputs.size()")
	attrs := strings.Index(verify, `attributes.at("factor")`)
	assert.Less(t, inputs, outputs)
	assert.Less(t, outputs, attrs)
}

func TestAssembleScale(t *testing.T) {
	a := Assemble([]*spec.Operator{scaleOp()}, AssembleOptions{
		Namespaces:     []string{"paddle", "dialect"},
		HeaderFile:     "paddle/fluid/dialect/pd_op.h",
		HeaderIncludes: DefaultHeaderIncludes,
		SourceIncludes: DefaultSourceIncludes,
	})

	require.Equal(t, []string{"paddle::dialect::ScaleOp"}, a.Symbols)

	assert.True(t, strings.HasPrefix(a.Header, "#ifdef GET_OP_LIST\n#undef GET_OP_LIST\npaddle::dialect::ScaleOp\n#else\n"))
	assert.Contains(t, a.Header, "#include \"paddle/ir/core/op_base.h\"\n")
	assert.Contains(t, a.Header, "namespace paddle {\nnamespace dialect {\n")
	assert.Contains(t, a.Header, "} // namespace dialect\n} // namespace paddle")
	assert.NotContains(t, a.Header, "#ifndef")
	assert.True(t, strings.HasSuffix(a.Header, "#endif\n"))

	assert.True(t, strings.HasPrefix(a.Source, "#include \"paddle/fluid/dialect/pd_op.h\"\n#include \"paddle/fluid/dialect/pd_type.h\"\n"))
	assert.Contains(t, a.Source, "#include \"paddle/phi/core/enforce.h\"\n")
	assert.Contains(t, a.Source, "const char *ScaleOp::attributes_name[1] = { \"factor\" };")
	assert.Contains(t, a.Source, "void ScaleOp::verify(")
	assert.Less(t, strings.Index(a.Source, "namespace paddle {"), strings.Index(a.Source, "attributes_name[1]"))
}

func TestAssembleGuardAndBanner(t *testing.T) {
	a := Assemble([]*spec.Operator{scaleOp()}, AssembleOptions{
		HeaderFile: "pd_op.h",
		Guard:      "PD_OP_H_",
		Banner:     "// banner\n\n",
	})

	assert.True(t, strings.HasPrefix(a.Header, "// banner\n\n#ifdef GET_OP_LIST\n"))
	assert.True(t, strings.HasPrefix(a.Source, "// banner\n\n#include \"pd_op.h\"\n"))
	assert.Contains(t, a.Header, "#else\n\n#ifndef PD_OP_H_\n#define PD_OP_H_\n")
	assert.Contains(t, a.Header, "#endif  // PD_OP_H_\n#endif\n")
	assert.Less(t, strings.Index(a.Header, "#define PD_OP_H_"), strings.Index(a.Header, "class ScaleOp"))
}

func TestAssemblePreservesOrder(t *testing.T) {
	relu := &spec.Operator{Name: "relu", Symbol: "ReluOp", RegisteredName: "pd.relu"}
	add := &spec.Operator{Name: "add_", Symbol: "Add_Op", RegisteredName: "pd.add_"}

	a := Assemble([]*spec.Operator{scaleOp(), relu, add}, AssembleOptions{Namespaces: []string{"pd"}})

	assert.Equal(t, []string{"pd::ScaleOp", "pd::ReluOp", "pd::Add_Op"}, a.Symbols)
	assert.Contains(t, a.Header, "pd::ScaleOp, pd::ReluOp, pd::Add_Op\n")

	for _, doc := range []string{a.Header, a.Source} {
		scale := strings.Index(doc, "ScaleOp::")
		if scale < 0 {
			scale = strings.Index(doc, "class ScaleOp")
		}
		relu := strings.LastIndex(doc, "ReluOp")
		add := strings.LastIndex(doc, "Add_Op")
		assert.Less(t, scale, relu)
		assert.Less(t, relu, add)
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	ops := func() []*spec.Operator {
		return []*spec.Operator{scaleOp(), emptyOp()}
	}
	opts := AssembleOptions{Namespaces: []string{"paddle", "dialect"}, HeaderFile: "pd_op.h"}

	first := Assemble(ops(), opts)
	second := Assemble(ops(), opts)

	assert.Equal(t, first, second)
}

func TestAssembleNoOperators(t *testing.T) {
	a := Assemble(nil, AssembleOptions{HeaderFile: "pd_op.h"})

	assert.Empty(t, a.Symbols)
	assert.True(t, strings.HasPrefix(a.Header, "#ifdef GET_OP_LIST\n#undef GET_OP_LIST\n\n#else\n"))
	assert.NotContains(t, a.Source, "verify")
}

func TestGenerateTargets(t *testing.T) {
	g := &IrCpp{}
	sp := &spec.Spec{Dialect: "pd", Operators: []*spec.Operator{scaleOp()}}

	ctx := context.WithValue(context.Background(), common.ContextCommonOptions, &common.Options{
		Namespaces: []string{"paddle", "dialect"},
		HeaderFile: "gen/pd_op.h",
	})

	header, err := g.Generate(ctx, nil, sp, generator.TargetHeader)
	require.NoError(t, err)
	assert.Contains(t, header, "#ifndef PD_OP_H_\n")
	assert.Contains(t, header, "paddle::dialect::ScaleOp")

	source, err := g.Generate(ctx, nil, sp, generator.TargetSource)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(source, "#include \"gen/pd_op.h\"\n"))

	_, err = g.Generate(ctx, nil, sp, "python")
	assert.EqualError(t, err, "target python is not supported")
}

func TestGenerateDefaultIncludes(t *testing.T) {
	g := &IrCpp{}
	sp := &spec.Spec{Dialect: "pd", Operators: []*spec.Operator{scaleOp()}}

	ctx := context.WithValue(context.Background(), common.ContextCommonOptions, &common.Options{
		HeaderFile: "pd_op.h",
	})

	for _, options := range []interface{}{nil, map[string]interface{}{}} {
		header, err := g.Generate(ctx, options, sp, generator.TargetHeader)
		require.NoError(t, err)
		assert.Contains(t, header, "#ifndef PD_OP_H_\n#define PD_OP_H_\n")
		assert.Contains(t, header, "#include \"paddle/ir/core/op_base.h\"\n")

		source, err := g.Generate(ctx, options, sp, generator.TargetSource)
		require.NoError(t, err)
		for _, include := range DefaultSourceIncludes {
			assert.Contains(t, source, "#include \""+include+"\"\n")
		}
		assert.Less(t, strings.Index(source, "pd_op.h"), strings.Index(source, "enforce.h"))
	}
}

func TestGenerateAliasesAndSymbols(t *testing.T) {
	g := &IrCpp{}
	sp := &spec.Spec{Dialect: "pd", Operators: []*spec.Operator{scaleOp(), emptyOp()}}

	ctx := context.WithValue(context.Background(), common.ContextCommonOptions, &common.Options{
		Namespaces: []string{"paddle", "dialect"},
		HeaderFile: "pd_op.h",
	})

	header, err := g.Generate(ctx, nil, sp, generator.TargetHeader)
	require.NoError(t, err)
	alias, err := g.Generate(ctx, nil, sp, TargetHeaderAlias)
	require.NoError(t, err)
	assert.Equal(t, header, alias)

	source, err := g.Generate(ctx, nil, sp, generator.TargetSource)
	require.NoError(t, err)
	alias, err = g.Generate(ctx, nil, sp, TargetSourceAlias)
	require.NoError(t, err)
	assert.Equal(t, source, alias)

	assert.Contains(t, g.Targets(), TargetHeaderAlias)
	assert.Contains(t, g.Targets(), TargetSourceAlias)

	symbols, err := g.Symbols(ctx, nil, sp)
	require.NoError(t, err)
	assert.Equal(t, []string{"paddle::dialect::ScaleOp", "paddle::dialect::BarrierOp"}, symbols)

	_, err = g.Symbols(ctx, map[string]interface{}{"includeGuard": "maybe"}, sp)
	assert.Error(t, err)
}

func TestGenerateOptions(t *testing.T) {
	g := &IrCpp{}
	sp := &spec.Spec{Dialect: "pd", Operators: []*spec.Operator{scaleOp()}}

	ctx := context.WithValue(context.Background(), common.ContextCommonOptions, &common.Options{
		HeaderFile: "pd_op.h",
	})

	header, err := g.Generate(ctx, map[string]interface{}{
		"headerIncludes": []string{"custom/op_base.h"},
		"guardMacro":     "CUSTOM_GUARD",
	}, sp, generator.TargetHeader)
	require.NoError(t, err)

	assert.Contains(t, header, "#include \"custom/op_base.h\"\n")
	assert.NotContains(t, header, "paddle/ir/core/op_base.h")
	assert.Contains(t, header, "#ifndef CUSTOM_GUARD\n")

	header, err = g.Generate(ctx, map[string]interface{}{"includeGuard": false}, sp, generator.TargetHeader)
	require.NoError(t, err)
	assert.NotContains(t, header, "#ifndef")

	_, err = g.Generate(ctx, map[string]interface{}{"includeGuard": "maybe"}, sp, generator.TargetHeader)
	assert.Error(t, err)
}

func TestGenerateBanner(t *testing.T) {
	g := &IrCpp{
		Now: func() time.Time { return time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC) },
	}
	sp := &spec.Spec{Dialect: "pd", Operators: []*spec.Operator{scaleOp()}}

	state := &common.State{}
	state.AddSource("ops/ops.yaml", 1)

	ctx := context.WithValue(context.Background(), common.ContextState, state)
	ctx = context.WithValue(ctx, common.ContextCommonOptions, &common.Options{
		HeaderFile: "pd_op.h",
		Comments:   true,
		Timestamp:  true,
	})

	source, err := g.Generate(ctx, nil, sp, generator.TargetSource)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(source,
		"// Code generated by opgen. DO NOT EDIT.\n"+
			"// Sources: ops.yaml\n"+
			"// Generated at 2023-04-01T12:00:00Z\n\n"+
			"#include \"pd_op.h\"\n",
	))
}

func TestDescriptionMarkdown(t *testing.T) {
	desc := (&IrCpp{}).DescriptionMarkdown()

	assert.Contains(t, desc, "includeGuard")
	assert.Contains(t, desc, "ir-cpp")
	assert.Contains(t, desc, "header|")
}
