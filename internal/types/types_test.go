package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Aliases(t *testing.T) {
	tests := []struct {
		name string
		want T
	}{
		{"boolean", Bool},
		{"bool", Bool},
		{"int", Int32},
		{"integer", Int32},
		{"bigint", Int64},
		{"float", Float64},
		{"double precision", Float64},
		{"real", Float32},
		{"string", Text},
		{"text", Text},
		{"blob", Binary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("decimal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decimal")
}

func TestTypeFamilies(t *testing.T) {
	assert.True(t, Int32.IsInteger())
	assert.True(t, Int64.IsNumeric())
	assert.True(t, Float32.IsFloat())
	assert.False(t, Text.IsNumeric())

	assert.True(t, Text.IsPathKey())
	assert.True(t, Int64.IsPathKey())
	assert.False(t, Float64.IsPathKey())
	assert.False(t, Null.IsPathKey())

	assert.True(t, Union.IsJSONInput())
	assert.True(t, Binary.IsJSONInput())
	assert.False(t, Int64.IsJSONInput())
}

func TestDatum_Types(t *testing.T) {
	assert.Equal(t, Null, DNull{}.Type())
	assert.Equal(t, Bool, DBool(true).Type())
	assert.Equal(t, Int64, DInt(1).Type())
	assert.Equal(t, Float64, DFloat(1.5).Type())
	assert.Equal(t, Text, DString("a").Type())
}

func TestFormatDatum(t *testing.T) {
	assert.Equal(t, "NULL", FormatDatum(DNull{}))
	assert.Equal(t, "TRUE", FormatDatum(DBool(true)))
	assert.Equal(t, "-7", FormatDatum(DInt(-7)))
	assert.Equal(t, "1.5", FormatDatum(DFloat(1.5)))
	assert.Equal(t, "'it''s'", FormatDatum(DString("it's")))
}
