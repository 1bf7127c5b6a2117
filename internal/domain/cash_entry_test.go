package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCashKind(t *testing.T) {
	kind, err := ParseCashKind("entrada")
	require.NoError(t, err)
	assert.Equal(t, CashInflow, kind)

	kind, err = ParseCashKind("saida")
	require.NoError(t, err)
	assert.Equal(t, CashOutflow, kind)

	_, err = ParseCashKind("transferencia")
	assert.Error(t, err)
}

func TestParseOrigin(t *testing.T) {
	id := int64(7)

	origin, err := ParseOrigin("", nil)
	require.NoError(t, err)
	assert.True(t, origin.IsNone())

	origin, err = ParseOrigin("sale", &id)
	require.NoError(t, err)
	assert.Equal(t, SaleOrigin(7), origin)

	origin, err = ParseOrigin("service", &id)
	require.NoError(t, err)
	assert.Equal(t, ServiceOrigin(7), origin)

	_, err = ParseOrigin("invoice", &id)
	assert.Error(t, err)

	_, err = ParseOrigin("sale", nil)
	assert.Error(t, err)
}

func TestCashEntry_IsSystemManaged(t *testing.T) {
	assert.False(t, CashEntry{Origin: NoOrigin()}.IsSystemManaged())
	assert.True(t, CashEntry{Origin: SaleOrigin(1)}.IsSystemManaged())
	assert.True(t, CashEntry{Origin: ServiceOrigin(1)}.IsSystemManaged())
}

func TestCashEntry_Signed(t *testing.T) {
	in := CashEntry{Kind: CashInflow, Amount: decimal.NewFromInt(40)}
	out := CashEntry{Kind: CashOutflow, Amount: decimal.NewFromInt(15)}

	assert.True(t, decimal.NewFromInt(40).Equal(in.Signed()))
	assert.True(t, decimal.NewFromInt(-15).Equal(out.Signed()))
}

func TestOrigin_String(t *testing.T) {
	assert.Equal(t, "manual", NoOrigin().String())
	assert.Equal(t, "sale:3", SaleOrigin(3).String())
}
