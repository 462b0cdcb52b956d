package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilingStatus is the lifecycle state of a filing. Transitions move
// forward only, with one exception: a failed form fill rolls
// FORM_FILLING back to COMPUTED so the fill can be retried without
// redoing normalization and computation.
type FilingStatus string

const (
	StatusDraft       FilingStatus = "DRAFT"
	StatusProcessing  FilingStatus = "PROCESSING"
	StatusComputed    FilingStatus = "COMPUTED"
	StatusFormFilling FilingStatus = "FORM_FILLING"
	StatusReady       FilingStatus = "READY"
	StatusSubmitted   FilingStatus = "SUBMITTED"
)

var statusRank = map[FilingStatus]int{
	StatusDraft:       0,
	StatusProcessing:  1,
	StatusComputed:    2,
	StatusFormFilling: 3,
	StatusReady:       4,
	StatusSubmitted:   5,
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s FilingStatus) CanTransitionTo(next FilingStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	if s == StatusFormFilling && next == StatusComputed {
		return true // fill retry
	}
	return to > from
}

// Filing aggregates one normalization + computation run for a single
// taxable month.
type Filing struct {
	ID            string // "YYYY-MM-NNN"
	TaxpayerPIN   string
	Month         int
	Year          int
	GrossIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	TaxDue        decimal.Decimal
	Status        FilingStatus
	SourceFile    string // uploaded sheet
	OutputFile    string // filled return, set once READY
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PeriodStart returns the first day of the filing's month.
func (f Filing) PeriodStart() time.Time {
	return time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, time.UTC)
}

// PeriodEnd returns the last calendar day of the filing's month.
func (f Filing) PeriodEnd() time.Time {
	return f.PeriodStart().AddDate(0, 1, -1)
}
