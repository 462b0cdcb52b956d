package rules

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pesafile-dev/pesafile/internal/model"
)

const (
	numFields    = 8
	dateFormat   = "2006-01-02"
	colCode      = 0
	colName      = 1
	colRate      = 2
	colDeduct    = 3
	colValidFrom = 4
	colValidTo   = 5
	colDesc      = 6
	colLegalRef  = 7
)

// ReadRules reads tax-rules.csv.
func ReadRules(r io.Reader) ([]model.TaxRule, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rules CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var rr []model.TaxRule
	for i, rec := range records[1:] {
		rule, err := UnmarshalRule(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rr = append(rr, rule)
	}
	return rr, nil
}

// WriteRules writes tax-rules.csv.
func WriteRules(w io.Writer, rr []model.TaxRule) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"code", "name", "rate", "is_deductible", "valid_from", "valid_to", "description", "legal_reference"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rule := range rr {
		if err := cw.Write(MarshalRule(rule)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRule converts a TaxRule to a CSV row.
func MarshalRule(rule model.TaxRule) []string {
	row := make([]string, numFields)
	row[colCode] = rule.Code
	row[colName] = rule.Name
	row[colRate] = rule.Rate.String()
	row[colDeduct] = strconv.FormatBool(rule.Deductible)
	row[colValidFrom] = rule.ValidFrom.Format(dateFormat)
	row[colValidTo] = rule.ValidTo.Format(dateFormat)
	row[colDesc] = rule.Description
	row[colLegalRef] = rule.LegalReference
	return row
}

// UnmarshalRule converts a CSV row to a TaxRule.
func UnmarshalRule(record []string) (model.TaxRule, error) {
	if len(record) != numFields {
		return model.TaxRule{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	rate, err := decimal.NewFromString(record[colRate])
	if err != nil {
		return model.TaxRule{}, fmt.Errorf("parsing rate %q: %w", record[colRate], err)
	}

	deductible, err := strconv.ParseBool(record[colDeduct])
	if err != nil {
		return model.TaxRule{}, fmt.Errorf("parsing is_deductible %q: %w", record[colDeduct], err)
	}

	validFrom, err := time.Parse(dateFormat, record[colValidFrom])
	if err != nil {
		return model.TaxRule{}, fmt.Errorf("parsing valid_from %q: %w", record[colValidFrom], err)
	}

	validTo, err := time.Parse(dateFormat, record[colValidTo])
	if err != nil {
		return model.TaxRule{}, fmt.Errorf("parsing valid_to %q: %w", record[colValidTo], err)
	}

	return model.TaxRule{
		Code:           record[colCode],
		Name:           record[colName],
		Rate:           rate,
		Deductible:     deductible,
		ValidFrom:      validFrom,
		ValidTo:        validTo,
		Description:    record[colDesc],
		LegalReference: record[colLegalRef],
	}, nil
}
