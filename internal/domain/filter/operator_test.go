package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatorsFor(t *testing.T) {
	assert.Empty(t, OperatorsFor(FieldType("geo_point")), "unknown type returns empty list")

	strOps := OperatorsFor(TypeString)
	assert.Contains(t, strOps, Contains)
	assert.Contains(t, strOps, IsEmpty)
	assert.NotContains(t, strOps, IsTrue)

	boolOps := OperatorsFor(TypeBoolean)
	assert.Contains(t, boolOps, IsTrue)
	assert.NotContains(t, boolOps, Contains)

	arrayOps := OperatorsFor(TypeArray)
	assert.Contains(t, arrayOps, ContainsAny)
	assert.Contains(t, arrayOps, ContainsAll)
	assert.Contains(t, arrayOps, NotContainsAny)
}

func TestValidOperator(t *testing.T) {
	assert.True(t, ValidOperator(TypeString, Contains))
	assert.False(t, ValidOperator(TypeBoolean, Contains))
	assert.False(t, ValidOperator(TypeInteger, ContainsAny))
	assert.False(t, ValidOperator(FieldType("geo_point"), Equals), "unknown type validates nothing")

	// Equality and presence families are legal for every built-in type.
	for _, ft := range []FieldType{
		TypeString, TypeInteger, TypeFloat, TypeBoolean,
		TypeDate, TypeDateTime, TypeEnum, TypeArray, TypeText,
	} {
		assert.True(t, ValidOperator(ft, Equals), "equals on %s", ft)
		assert.True(t, ValidOperator(ft, IsEmpty), "is_empty on %s", ft)
	}
}

func TestDefaultOperator(t *testing.T) {
	assert.Equal(t, Contains, DefaultOperator(TypeString))
	assert.Equal(t, IsTrue, DefaultOperator(TypeBoolean))
	assert.Equal(t, In, DefaultOperator(TypeEnum))
	assert.Equal(t, ContainsAny, DefaultOperator(TypeArray))
	assert.Equal(t, Equals, DefaultOperator(FieldType("geo_point")))
}

func TestRequiresValue(t *testing.T) {
	assert.False(t, IsEmpty.RequiresValue())
	assert.False(t, IsNotEmpty.RequiresValue())
	assert.False(t, IsTrue.RequiresValue())
	assert.False(t, IsFalse.RequiresValue())
	assert.True(t, Equals.RequiresValue())
	assert.True(t, Between.RequiresValue())
}

func TestParseOperator(t *testing.T) {
	op, ok := ParseOperator("contains_any")
	assert.True(t, ok)
	assert.Equal(t, ContainsAny, op)

	_, ok = ParseOperator("sounds_like")
	assert.False(t, ok, "unknown operators are rejected, not invented")
}

func TestOperatorLabel(t *testing.T) {
	assert.Equal(t, "is between", Between.Label())
	assert.Equal(t, "mystery", Operator("mystery").Label(), "unknown operator labels as itself")
}
