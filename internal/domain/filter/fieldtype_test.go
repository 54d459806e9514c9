package filter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	assert.Equal(t, int64(42), Coerce(TypeInteger, "42"))
	assert.Equal(t, "4x2", Coerce(TypeInteger, "4x2"), "unparseable input passes through")

	d, ok := Coerce(TypeFloat, "1.5").(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.NewFromFloat(1.5)))

	assert.Equal(t, true, Coerce(TypeBoolean, "true"))
	assert.Equal(t, false, Coerce(TypeBoolean, "false"))
	assert.Equal(t, "yes", Coerce(TypeBoolean, "yes"))

	assert.Equal(t,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Coerce(TypeDate, "2025-06-01"))
	assert.Equal(t,
		time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
		Coerce(TypeDateTime, "2025-06-01T08:30:00Z"))

	assert.Equal(t, "anything", Coerce(TypeString, "anything"))
	assert.Equal(t, "x", Coerce(FieldType("geo_point"), "x"), "unknown type passes through")
}

func TestDefinition(t *testing.T) {
	def, ok := Definition(TypeArray)
	require.True(t, ok)
	assert.Equal(t, ContainsAny, def.DefaultOperator())
	assert.Equal(t, "multi_select", def.UIComponentHint())
	assert.True(t, def.Validate(ContainsAll))
	assert.False(t, def.Validate(StartsWith))

	_, ok = Definition(FieldType("geo_point"))
	assert.False(t, ok)
}

func TestDefinitionOperatorsCopy(t *testing.T) {
	def, _ := Definition(TypeString)
	ops := def.Operators()
	ops[0] = Operator("mutated")
	assert.NotEqual(t, Operator("mutated"), def.Operators()[0],
		"callers get a copy, not the registry slice")
}
