package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid inputs", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), PKR)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, PKR, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyPKRFromString(t *testing.T) {
	t.Run("parses decimal string", func(t *testing.T) {
		m, err := NewMoneyPKRFromString("1234.56")
		require.NoError(t, err)
		assert.Equal(t, "1234.56", m.StringFixed(2))
	})

	t.Run("rejects malformed string", func(t *testing.T) {
		_, err := NewMoneyPKRFromString("not-a-number")
		assert.Error(t, err)
	})
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroPKR().IsZero())
	assert.True(t, NewMoneyPKRFromFloat(5).IsPositive())
	assert.True(t, NewMoneyPKR(decimal.NewFromInt(-5)).IsNegative())
	assert.False(t, NewMoneyPKRFromFloat(5).IsNegative())
}

func TestMoney_Add(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyPKRFromFloat(50)
		b := NewMoneyPKRFromFloat(30)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "80.00", sum.StringFixed(2))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyPKRFromFloat(50)
		b, _ := NewMoney(decimal.NewFromInt(30), USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoney_Subtract(t *testing.T) {
	a := NewMoneyPKRFromFloat(1000)
	b := NewMoneyPKRFromFloat(250)
	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "750.00", diff.StringFixed(2))
}

func TestMoney_ClampFloor(t *testing.T) {
	t.Run("negative is clamped to zero", func(t *testing.T) {
		target := NewMoneyPKRFromFloat(100)
		collected := NewMoneyPKRFromFloat(150)
		remaining, err := target.Subtract(collected)
		require.NoError(t, err)
		assert.True(t, remaining.ClampFloor().IsZero())
	})

	t.Run("positive is unchanged", func(t *testing.T) {
		m := NewMoneyPKRFromFloat(40)
		assert.True(t, m.ClampFloor().Equals(m))
	})
}

func TestMoney_JSON(t *testing.T) {
	t.Run("marshals amount and currency", func(t *testing.T) {
		m := NewMoneyPKRFromFloat(99.5)
		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":"99.5","currency":"PKR"}`, string(data))
	})

	t.Run("round trips", func(t *testing.T) {
		var m Money
		err := json.Unmarshal([]byte(`{"amount":"42.00","currency":"PKR"}`), &m)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(42)))
		assert.Equal(t, PKR, m.Currency())
	})
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans string value", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("12.34"))
		assert.Equal(t, "12.34", m.StringFixed(2))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})
}
