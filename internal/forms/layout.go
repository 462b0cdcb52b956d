package forms

import "github.com/pesafile-dev/pesafile/internal/model"

// Layout is the fixed cell map for one regime's return template.
// Layouts are injected into the Builder so a form revision ships as
// data, not code.
type Layout struct {
	// Header block, written first for every regime.
	HeaderSheet    string
	PINCell        string
	ReturnTypeCell string
	PeriodFromCell string
	PeriodToCell   string

	// Detail rows, one per expense transaction. Empty DetailSheet
	// means the regime's form has no detail section.
	DetailSheet    string
	DetailFirstRow int
	DetailColumns  [6]string // column letters, supplier PIN .. amount

	// Totals block, written last.
	TotalsSheet     string
	TurnoverCell    string // trader: gross turnover
	GrossIncomeCell string // professional: gross income
	ExpensesCell    string // professional: total expenses
}

// TraderLayout returns the cell map for the turnover tax (TOT) return
// template.
func TraderLayout() Layout {
	return Layout{
		HeaderSheet:    "A_Basic_Info",
		PINCell:        "C3",
		ReturnTypeCell: "C4",
		PeriodFromCell: "C5",
		PeriodToCell:   "C6",

		DetailSheet:    "B_Purchases",
		DetailFirstRow: 5,
		DetailColumns:  [6]string{"A", "B", "C", "D", "E", "F"},

		TotalsSheet:  "D_Tax_Due",
		TurnoverCell: "C6",
	}
}

// ProfessionalLayout returns the cell map for the income tax return
// template.
func ProfessionalLayout() Layout {
	return Layout{
		HeaderSheet:    "A_Basic_Info",
		PINCell:        "C3",
		ReturnTypeCell: "C4",
		PeriodFromCell: "C5",
		PeriodToCell:   "C6",

		TotalsSheet:     "C_Profit_Loss",
		GrossIncomeCell: "C5",
		ExpensesCell:    "C6",
	}
}

// DefaultLayouts maps each regime to its current template layout.
func DefaultLayouts() map[model.Regime]Layout {
	return map[model.Regime]Layout{
		model.RegimeTrader:       TraderLayout(),
		model.RegimeProfessional: ProfessionalLayout(),
	}
}
