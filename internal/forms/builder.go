// Package forms maps a computed filing onto the rigid cell layout of a
// government return template, producing the ordered write instructions
// consumed by the external form filler.
package forms

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pesafile-dev/pesafile/internal/id"
	"github.com/pesafile-dev/pesafile/internal/model"
)

// cellDateFormat is the date format government form cells expect,
// distinct from any internal representation.
const cellDateFormat = "02/01/2006"

// returnTypeOriginal is the literal written to the return-type cell.
// Amended returns are out of scope.
const returnTypeOriginal = "Original"

// supplierPINPlaceholder fills the counterparty-PIN detail column when
// the upload carries no supplier identifier.
const supplierPINPlaceholder = "N/A"

// ValidationError rejects an instruction build before any instruction
// is emitted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Builder produces form instructions from a computed filing. Pure
// transform, no I/O.
type Builder struct {
	layouts map[model.Regime]Layout
}

// NewBuilder creates a Builder over the given per-regime layouts.
func NewBuilder(layouts map[model.Regime]Layout) *Builder {
	return &Builder{layouts: layouts}
}

// Build returns the ordered instruction list for a filing: header block
// first, then detail rows (regimes that have them), then totals.
// All-or-nothing: a validation failure emits no instructions.
func (b *Builder) Build(filing model.Filing, txns []model.Transaction, taxpayer model.TaxpayerProfile) ([]model.FormInstruction, error) {
	if len(taxpayer.PIN) < model.MinPINLength {
		return nil, &ValidationError{
			Field:  "pin",
			Reason: fmt.Sprintf("must be at least %d characters", model.MinPINLength),
		}
	}

	layout, ok := b.layouts[taxpayer.Regime]
	if !ok {
		return nil, &ValidationError{
			Field:  "regime",
			Reason: fmt.Sprintf("no form layout for %q", taxpayer.Regime),
		}
	}

	var ins []model.FormInstruction
	ins = append(ins, headerBlock(layout, filing, taxpayer)...)
	ins = append(ins, detailRows(layout, txns)...)
	ins = append(ins, totalsBlock(layout, filing)...)
	return ins, nil
}

func headerBlock(layout Layout, filing model.Filing, taxpayer model.TaxpayerProfile) []model.FormInstruction {
	return []model.FormInstruction{
		{SheetKeyword: layout.HeaderSheet, Cell: layout.PINCell, Value: taxpayer.PIN},
		{SheetKeyword: layout.HeaderSheet, Cell: layout.ReturnTypeCell, Value: returnTypeOriginal},
		{SheetKeyword: layout.HeaderSheet, Cell: layout.PeriodFromCell, Value: cellDate(filing.PeriodStart())},
		{SheetKeyword: layout.HeaderSheet, Cell: layout.PeriodToCell, Value: cellDate(filing.PeriodEnd())},
	}
}

// detailRows emits one 6-cell row per expense transaction, rows
// ascending from the layout's first detail row. Income transactions do
// not appear in the detail section.
func detailRows(layout Layout, txns []model.Transaction) []model.FormInstruction {
	if layout.DetailSheet == "" {
		return nil
	}

	var ins []model.FormInstruction
	row := layout.DetailFirstRow
	for _, txn := range txns {
		if txn.Category != model.CategoryExpense {
			continue
		}

		cells := [6]string{
			supplierPINPlaceholder,
			txn.Description, // no separate counterparty field in uploads
			cellDate(txn.OccurredOn),
			id.InvoiceRef(),
			txn.Description,
			txn.Amount.StringFixed(2),
		}
		for i, value := range cells {
			ins = append(ins, model.FormInstruction{
				SheetKeyword: layout.DetailSheet,
				Cell:         layout.DetailColumns[i] + strconv.Itoa(row),
				Value:        value,
			})
		}
		row++
	}
	return ins
}

func totalsBlock(layout Layout, filing model.Filing) []model.FormInstruction {
	if layout.TurnoverCell != "" {
		return []model.FormInstruction{
			{SheetKeyword: layout.TotalsSheet, Cell: layout.TurnoverCell, Value: filing.GrossIncome.StringFixed(2)},
		}
	}
	return []model.FormInstruction{
		{SheetKeyword: layout.TotalsSheet, Cell: layout.GrossIncomeCell, Value: filing.GrossIncome.StringFixed(2)},
		{SheetKeyword: layout.TotalsSheet, Cell: layout.ExpensesCell, Value: filing.TotalExpenses.StringFixed(2)},
	}
}

func cellDate(t time.Time) string {
	return t.Format(cellDateFormat)
}
