package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Amount
		wantErr bool
	}{
		{in: "12.34", want: 1234},
		{in: "12,34", want: 1234},
		{in: "  7 ", want: 700},
		{in: "0.5", want: 50},
		{in: "12.345", want: 1235},
		{in: "12.344", want: 1234},
		{in: "-3.10", want: -310},
		{in: "0", want: 0},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromDecimal_OutOfRange(t *testing.T) {
	huge := decimal.RequireFromString("100000000000000000000")
	_, err := FromDecimal(huge)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestAmount_String(t *testing.T) {
	assert.Equal(t, "150.00", FromMajor(150).String())
	assert.Equal(t, "0.05", Amount(5).String())
	assert.Equal(t, "-1.20", Amount(-120).String())
	assert.InDelta(t, 12.5, Amount(1250).Float64(), 1e-9)
}

func TestAmount_JSON(t *testing.T) {
	t.Run("marshals as major units", func(t *testing.T) {
		out, err := json.Marshal(map[string]Amount{"monto": 1999})
		require.NoError(t, err)
		assert.JSONEq(t, `{"monto": 19.99}`, string(out))
	})

	t.Run("accepts numbers and strings", func(t *testing.T) {
		var body struct {
			A Amount `json:"a"`
			B Amount `json:"b"`
			C Amount `json:"c"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"a": 100, "b": "45.50", "c": null}`), &body))
		assert.Equal(t, Amount(10000), body.A)
		assert.Equal(t, Amount(4550), body.B)
		assert.Equal(t, Amount(0), body.C)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var a Amount
		assert.Error(t, json.Unmarshal([]byte(`"ten"`), &a))
		assert.Error(t, json.Unmarshal([]byte(`true`), &a))
	})

	t.Run("binary floats do not drift", func(t *testing.T) {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte(`0.1`), &a))
		var b Amount
		require.NoError(t, json.Unmarshal([]byte(`0.2`), &b))
		assert.Equal(t, Amount(30), a+b)
	})
}

func TestAmount_Positive(t *testing.T) {
	assert.True(t, Amount(1).Positive())
	assert.False(t, Amount(0).Positive())
	assert.False(t, Amount(-1).Positive())
	assert.True(t, MaxAmount.Positive())
}
