package forms

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesafile-dev/pesafile/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func traderTaxpayer() model.TaxpayerProfile {
	return model.TaxpayerProfile{
		Name:   "Jane Wanjiku",
		PIN:    "A012345678Z",
		Regime: model.RegimeTrader,
	}
}

func januaryFiling() model.Filing {
	return model.Filing{
		ID:            "2024-01-001",
		Month:         1,
		Year:          2024,
		GrossIncome:   dec("100000"),
		TotalExpenses: dec("40000"),
		Status:        model.StatusComputed,
	}
}

func mixedTransactions() []model.Transaction {
	return []model.Transaction{
		{OccurredOn: date(2024, 1, 5), Description: "Stock sale", Amount: dec("100000"), Category: model.CategoryIncome},
		{OccurredOn: date(2024, 1, 8), Description: "Sugar supplier", Amount: dec("25000"), Category: model.CategoryExpense},
		{OccurredOn: date(2024, 1, 20), Description: "Shop rent", Amount: dec("15000"), Category: model.CategoryExpense},
	}
}

func TestBuild_TraderInstructionOrder(t *testing.T) {
	b := NewBuilder(DefaultLayouts())

	ins, err := b.Build(januaryFiling(), mixedTransactions(), traderTaxpayer())
	require.NoError(t, err)

	// 4 header + 6 cells x 2 expense rows + 1 totals.
	require.Len(t, ins, 17)

	header := ins[:4]
	assert.Equal(t, "A012345678Z", header[0].Value)
	assert.Equal(t, "Original", header[1].Value)
	assert.Equal(t, "01/01/2024", header[2].Value)
	assert.Equal(t, "31/01/2024", header[3].Value)
	for _, in := range header {
		assert.Equal(t, "A_Basic_Info", in.SheetKeyword)
	}

	detail := ins[4:16]
	for _, in := range detail {
		assert.Equal(t, "B_Purchases", in.SheetKeyword)
	}
	// First expense row at the fixed offset, second directly below.
	assert.Equal(t, "A5", detail[0].Cell)
	assert.Equal(t, "F5", detail[5].Cell)
	assert.Equal(t, "A6", detail[6].Cell)
	assert.Equal(t, "F6", detail[11].Cell)

	assert.Equal(t, "Sugar supplier", detail[1].Value)
	assert.Equal(t, "08/01/2024", detail[2].Value)
	assert.True(t, strings.HasPrefix(detail[3].Value, "INV-"))
	assert.Equal(t, "25000.00", detail[5].Value)
	assert.Equal(t, "15000.00", detail[11].Value)

	totals := ins[16]
	assert.Equal(t, "D_Tax_Due", totals.SheetKeyword)
	assert.Equal(t, "C6", totals.Cell)
	assert.Equal(t, "100000.00", totals.Value)
}

func TestBuild_TraderSkipsIncomeInDetail(t *testing.T) {
	b := NewBuilder(DefaultLayouts())

	onlyIncome := []model.Transaction{
		{OccurredOn: date(2024, 1, 5), Description: "Sale", Amount: dec("5000"), Category: model.CategoryIncome},
	}
	ins, err := b.Build(januaryFiling(), onlyIncome, traderTaxpayer())
	require.NoError(t, err)

	// Header + totals only.
	assert.Len(t, ins, 5)
}

func TestBuild_ProfessionalTotals(t *testing.T) {
	b := NewBuilder(DefaultLayouts())

	taxpayer := traderTaxpayer()
	taxpayer.Regime = model.RegimeProfessional

	ins, err := b.Build(januaryFiling(), mixedTransactions(), taxpayer)
	require.NoError(t, err)

	// No detail section on the professional form.
	require.Len(t, ins, 6)

	assert.Equal(t, "C_Profit_Loss", ins[4].SheetKeyword)
	assert.Equal(t, "100000.00", ins[4].Value)
	assert.Equal(t, "40000.00", ins[5].Value)
}

func TestBuild_ShortPINRejectsWholeBuild(t *testing.T) {
	b := NewBuilder(DefaultLayouts())

	taxpayer := traderTaxpayer()
	taxpayer.PIN = "A123"

	ins, err := b.Build(januaryFiling(), mixedTransactions(), taxpayer)
	require.Error(t, err)
	assert.Empty(t, ins)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "pin", verr.Field)
}

func TestBuild_LeapYearPeriodEnd(t *testing.T) {
	b := NewBuilder(DefaultLayouts())

	filing := januaryFiling()
	filing.Month = 2

	ins, err := b.Build(filing, nil, traderTaxpayer())
	require.NoError(t, err)
	assert.Equal(t, "29/02/2024", ins[3].Value)
}

func TestBuild_UnknownRegime(t *testing.T) {
	b := NewBuilder(map[model.Regime]Layout{})

	_, err := b.Build(januaryFiling(), nil, traderTaxpayer())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "regime", verr.Field)
}
