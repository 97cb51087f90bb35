package schema

import (
	"encoding/json"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringReader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestCoerce_Primitives(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		raw  any
		want any
		ok   bool
	}{
		{"int from json number", Int(), json.Number("42"), int64(42), true},
		{"int from integral float", Int(), 3.0, int64(3), true},
		{"int from fractional float", Int(), 3.5, nil, false},
		{"int from float beyond int64", Int(), 1e20, nil, false},
		{"int from json number beyond int64", Int(), json.Number("1e20"), nil, false},
		{"int from negative float beyond int64", Int(), -1e19, nil, false},
		{"int from infinity", Int(), math.Inf(1), nil, false},
		{"int from NaN", Int(), math.NaN(), nil, false},
		{"int from float at int64 minimum", Int(), float64(math.MinInt64), int64(math.MinInt64), true},
		{"int from numeric string", Int(), "7", int64(7), true},
		{"int from word", Int(), "seven", nil, false},
		{"float from json number", Float(), json.Number("42"), float64(42), true},
		{"float from string", Float(), "1.5", 1.5, true},
		{"float from bool", Float(), true, nil, false},
		{"bool from bool", Bool(), true, true, true},
		{"bool from 1", Bool(), json.Number("1"), true, true},
		{"bool from 2", Bool(), json.Number("2"), nil, false},
		{"bool from token", Bool(), "off", false, true},
		{"bool from unknown token", Bool(), "maybe", nil, false},
		{"string from number", String(), json.Number("12"), "12", true},
		{"string from list", String(), []any{}, nil, false},
		{"any passes through", Any(), []any{1}, []any{1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fieldErrors := tt.typ.Coerce(tt.raw, []any{"body", "x"})
			if !tt.ok {
				require.Len(t, fieldErrors, 1)
				assert.Equal(t, []any{"body", "x"}, fieldErrors[0].Loc)
				return
			}
			require.Empty(t, fieldErrors)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Enum(t *testing.T) {
	e := NewEnum("ModelName", "alexnet", "resnet", "lenet")

	v, fieldErrors := EnumOf(e).Coerce("lenet", nil)
	require.Empty(t, fieldErrors)
	assert.Equal(t, "lenet", v)

	_, fieldErrors = EnumOf(e).Coerce("bogus", []any{"query", "m"})
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "type_error.enum", fieldErrors[0].Type)
}

func TestCoerce_ListReportsEachIndex(t *testing.T) {
	_, fieldErrors := ListOf(Int()).Coerce([]any{"1", "x", "3", "y"}, []any{"body"})
	require.Len(t, fieldErrors, 2)
	assert.Equal(t, []any{"body", 1}, fieldErrors[0].Loc)
	assert.Equal(t, []any{"body", 3}, fieldErrors[1].Loc)

	v, fieldErrors := ListOf(String()).Coerce([]string{"a", "b"}, nil)
	require.Empty(t, fieldErrors)
	assert.Equal(t, []any{"a", "b"}, v)

	_, fieldErrors = ListOf(Int()).Coerce([]byte("12"), nil)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "type_error.list", fieldErrors[0].Type)
}

func TestCoerce_MapWithIntKeys(t *testing.T) {
	weights := MapOf(Int(), Float())

	v, fieldErrors := weights.Coerce(map[string]any{"1": json.Number("0.5"), "2": json.Number("2")}, []any{"body"})
	require.Empty(t, fieldErrors)
	assert.Equal(t, map[int64]any{1: 0.5, 2: 2.0}, v)

	out, err := json.Marshal(Render(v))
	require.NoError(t, err)
	assert.Equal(t, `{"1":0.5,"2":2}`, string(out))

	_, fieldErrors = weights.Coerce(map[string]any{"b": 1.0, "a": "x"}, []any{"body"})
	require.Len(t, fieldErrors, 2)
	assert.Equal(t, []any{"body", "a", "__key__"}, fieldErrors[0].Loc)
	assert.Equal(t, []any{"body", "b", "__key__"}, fieldErrors[1].Loc)

	_, fieldErrors = weights.Coerce("nope", []any{"body"})
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "type_error.dict", fieldErrors[0].Type)
}

func TestCoerce_UnionFirstMatchWins(t *testing.T) {
	base := New("Base", Required("description", String()), Required("type", String()))
	car := base.Extend("Car", Optional("type", String(), "car"))
	plane := base.Extend("Plane", Optional("type", String(), "plane"), Required("size", Int()))
	vehicle := OneOf(plane, car)

	v, fieldErrors := vehicle.Coerce(map[string]any{"description": "low rider", "type": "car"}, nil)
	require.Empty(t, fieldErrors)
	assert.Equal(t, car, v.(*Record).Schema())

	v, fieldErrors = vehicle.Coerce(map[string]any{"description": "aeroplane", "type": "plane", "size": 5}, nil)
	require.Empty(t, fieldErrors)
	assert.Equal(t, plane, v.(*Record).Schema())
	assert.Equal(t, int64(5), v.(*Record).Int("size"))

	_, fieldErrors = vehicle.Coerce(map[string]any{}, []any{"response"})
	assert.NotEmpty(t, fieldErrors)
}

func TestCoerce_NilOnlyForAny(t *testing.T) {
	v, fieldErrors := Any().Coerce(nil, nil)
	assert.Nil(t, v)
	assert.Empty(t, fieldErrors)

	_, fieldErrors = Int().Coerce(nil, []any{"body"})
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "type_error.none.not_allowed", fieldErrors[0].Type)
}

func TestCoerceText(t *testing.T) {
	v, fe := Int().CoerceText("08", []any{"path", "item_id"})
	require.Nil(t, fe)
	assert.Equal(t, int64(8), v)

	_, fe = Int().CoerceText("abc", []any{"path", "item_id"})
	require.NotNil(t, fe)
	assert.Equal(t, "value is not a valid integer", fe.Msg)
	assert.Equal(t, "abc", fe.Input)

	v, fe = Bool().CoerceText("whatever", nil)
	require.Nil(t, fe)
	assert.Equal(t, false, v)

	_, fe = Float().CoerceText("1,5", []any{"query", "f"})
	require.NotNil(t, fe)
	assert.Equal(t, "type_error.float", fe.Type)
}

func TestTypeClassification(t *testing.T) {
	assert.True(t, Int().IsPrimitive())
	assert.True(t, ListOf(String()).IsPrimitiveList())
	assert.False(t, ListOf(String()).IsStructured())
	assert.True(t, ListOf(Object(New("X"))).IsStructured())
	assert.True(t, MapOf(Int(), Float()).IsStructured())
	assert.Equal(t, "array[integer]", ListOf(Int()).String())
	assert.Equal(t, "object[integer]number", MapOf(Int(), Float()).String())
}
