// Package normalize turns loosely-typed tabular uploads into uniform
// transaction records. It is deliberately lenient: a malformed cell
// defaults rather than failing, so a single bad row never rejects an
// upload.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pesafile-dev/pesafile/internal/model"
)

// Row is one record from an uploaded sheet: column name -> raw value.
// Column names may use any casing or padding.
type Row map[string]string

// Accepted column synonyms per logical field, checked in order.
var (
	amountColumns      = []string{"amount", "cost", "price", "value"}
	descriptionColumns = []string{"description", "item", "details"}
	dateColumns        = []string{"date", "day"}
	typeColumns        = []string{"type"}
)

const defaultDescription = "Unknown"

// InputError marks an upload that could not be read at all (as opposed
// to individual bad rows, which are tolerated).
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("failed to read upload, ensure it has Date, Description and Amount columns: %v", e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Normalizer converts rows to transactions. refDate is the substitute
// for a missing or unparseable date; callers pass the filing's period
// end so defaulted rows land inside the taxable month.
type Normalizer struct {
	refDate time.Time
}

// New creates a Normalizer that defaults bad dates to refDate.
func New(refDate time.Time) *Normalizer {
	return &Normalizer{refDate: refDate}
}

// Normalize converts rows to transactions, order-preserving and
// length-preserving: every input row yields exactly one transaction.
func (n *Normalizer) Normalize(rows []Row) []model.Transaction {
	txns := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		txns = append(txns, n.normalizeRow(row))
	}
	return txns
}

func (n *Normalizer) normalizeRow(row Row) model.Transaction {
	fields := canonicalize(row)

	return model.Transaction{
		OccurredOn:  n.coerceDate(lookup(fields, dateColumns)),
		Description: coerceDescription(lookup(fields, descriptionColumns)),
		Amount:      coerceAmount(lookup(fields, amountColumns)),
		Category:    inferCategory(lookup(fields, typeColumns)),
	}
}

// canonicalize lowercases and trims every column name once per row.
func canonicalize(row Row) map[string]string {
	fields := make(map[string]string, len(row))
	for col, val := range row {
		key := strings.ToLower(strings.TrimSpace(col))
		if _, taken := fields[key]; taken {
			continue // first occurrence wins
		}
		fields[key] = strings.TrimSpace(val)
	}
	return fields
}

// lookup returns the value of the first synonym present with a
// non-empty value.
func lookup(fields map[string]string, synonyms []string) string {
	for _, name := range synonyms {
		if v := fields[name]; v != "" {
			return v
		}
	}
	return ""
}

func coerceDescription(raw string) string {
	if raw == "" {
		return defaultDescription
	}
	return raw
}

// coerceAmount parses a decimal amount. Thousands separators are
// tolerated; anything non-numeric coerces to zero. Sign is dropped
// because uploads mix signed bank-export conventions with unsigned
// ledgers, and the category column is authoritative for direction.
func coerceAmount(raw string) decimal.Decimal {
	cleaned := strings.ReplaceAll(raw, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d.Abs()
}

// inferCategory maps the free-text type field to a category. A token
// containing INCOME or SALE means income; everything else, including a
// missing type, is an expense. Defaulting to expense is the
// conservative choice: it never inflates taxable income.
func inferCategory(raw string) model.Category {
	upper := strings.ToUpper(raw)
	if strings.Contains(upper, "INCOME") || strings.Contains(upper, "SALE") {
		return model.CategoryIncome
	}
	return model.CategoryExpense
}
