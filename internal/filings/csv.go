package filings

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pesafile-dev/pesafile/internal/compute"
	"github.com/pesafile-dev/pesafile/internal/model"
)

// Header is the CSV header for filings.csv.
const Header = "id,taxpayer_pin,year,month,gross_income,total_expenses,tax_due,status,source_file,output_file,last_error,created_at,updated_at"

// TxnHeader is the CSV header for a filing's transactions file.
const TxnHeader = "occurred_on,description,amount,category"

// ReturnHeader is the CSV header for a filing's return-lines file.
const ReturnHeader = "occurred_on,description,amount,category,tax"

const (
	filingsDir  = "filings"
	filingsFile = "filings/filings.csv"
)

const (
	numFields     = 13
	colID         = 0
	colPIN        = 1
	colYear       = 2
	colMonth      = 3
	colGross      = 4
	colExpenses   = 5
	colTaxDue     = 6
	colStatus     = 7
	colSourceFile = 8
	colOutputFile = 9
	colLastError  = 10
	colCreatedAt  = 11
	colUpdatedAt  = 12
)

const (
	numTxnFields  = 4
	colOccurredOn = 0
	colDesc       = 1
	colAmount     = 2
	colCategory   = 3
)

// Marshal converts a Filing to a CSV row.
func Marshal(f model.Filing) []string {
	row := make([]string, numFields)
	row[colID] = f.ID
	row[colPIN] = f.TaxpayerPIN
	row[colYear] = strconv.Itoa(f.Year)
	row[colMonth] = strconv.Itoa(f.Month)
	row[colGross] = f.GrossIncome.String()
	row[colExpenses] = f.TotalExpenses.String()
	row[colTaxDue] = f.TaxDue.String()
	row[colStatus] = string(f.Status)
	row[colSourceFile] = f.SourceFile
	row[colOutputFile] = f.OutputFile
	row[colLastError] = f.LastError
	row[colCreatedAt] = f.CreatedAt.Format(time.RFC3339)
	row[colUpdatedAt] = f.UpdatedAt.Format(time.RFC3339)
	return row
}

// Unmarshal converts a CSV row to a Filing.
func Unmarshal(record []string) (model.Filing, error) {
	if len(record) != numFields {
		return model.Filing{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	year, err := strconv.Atoi(record[colYear])
	if err != nil {
		return model.Filing{}, fmt.Errorf("parsing year %q: %w", record[colYear], err)
	}
	month, err := strconv.Atoi(record[colMonth])
	if err != nil {
		return model.Filing{}, fmt.Errorf("parsing month %q: %w", record[colMonth], err)
	}
	gross, err := decimal.NewFromString(record[colGross])
	if err != nil {
		return model.Filing{}, fmt.Errorf("parsing gross income %q: %w", record[colGross], err)
	}
	expenses, err := decimal.NewFromString(record[colExpenses])
	if err != nil {
		return model.Filing{}, fmt.Errorf("parsing total expenses %q: %w", record[colExpenses], err)
	}
	taxDue, err := decimal.NewFromString(record[colTaxDue])
	if err != nil {
		return model.Filing{}, fmt.Errorf("parsing tax due %q: %w", record[colTaxDue], err)
	}
	createdAt, err := time.Parse(time.RFC3339, record[colCreatedAt])
	if err != nil {
		return model.Filing{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
	}
	updatedAt, err := time.Parse(time.RFC3339, record[colUpdatedAt])
	if err != nil {
		return model.Filing{}, fmt.Errorf("parsing updated_at %q: %w", record[colUpdatedAt], err)
	}

	return model.Filing{
		ID:            record[colID],
		TaxpayerPIN:   record[colPIN],
		Year:          year,
		Month:         month,
		GrossIncome:   gross,
		TotalExpenses: expenses,
		TaxDue:        taxDue,
		Status:        model.FilingStatus(record[colStatus]),
		SourceFile:    record[colSourceFile],
		OutputFile:    record[colOutputFile],
		LastError:     record[colLastError],
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// ReadAll loads every filing from <root>/filings/filings.csv. Returns
// an empty slice if the file does not exist.
func ReadAll(root string) ([]model.Filing, error) {
	f, err := os.Open(filepath.Join(root, filingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening filings file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading filings CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var out []model.Filing
	for i, rec := range records[1:] {
		filing, err := Unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, filing)
	}
	return out, nil
}

// WriteAll rewrites <root>/filings/filings.csv with the given filings.
func WriteAll(root string, all []model.Filing) error {
	if err := os.MkdirAll(filepath.Join(root, filingsDir), 0o755); err != nil {
		return fmt.Errorf("creating filings dir: %w", err)
	}

	f, err := os.Create(filepath.Join(root, filingsFile))
	if err != nil {
		return fmt.Errorf("creating filings file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, filing := range all {
		if err := cw.Write(Marshal(filing)); err != nil {
			return fmt.Errorf("writing filing %s: %w", filing.ID, err)
		}
	}
	return cw.Error()
}

// WriteTransactions stores the normalized transactions for a filing at
// <root>/filings/<id>-transactions.csv.
func WriteTransactions(root, filingID string, txns []model.Transaction) error {
	if err := os.MkdirAll(filepath.Join(root, filingsDir), 0o755); err != nil {
		return fmt.Errorf("creating filings dir: %w", err)
	}

	f, err := os.Create(txnPath(root, filingID))
	if err != nil {
		return fmt.Errorf("creating transactions file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TxnHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, txn := range txns {
		row := []string{
			txn.OccurredOn.Format("2006-01-02"),
			txn.Description,
			txn.Amount.String(),
			string(txn.Category),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing transaction: %w", err)
		}
	}
	return cw.Error()
}

// ReadTransactions loads a filing's normalized transactions.
func ReadTransactions(root, filingID string) ([]model.Transaction, error) {
	f, err := os.Open(txnPath(root, filingID))
	if err != nil {
		return nil, fmt.Errorf("opening transactions file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = numTxnFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		occurred, err := time.Parse("2006-01-02", rec[colOccurredOn])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[colOccurredOn], err)
		}
		amount, err := decimal.NewFromString(rec[colAmount])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[colAmount], err)
		}
		txns = append(txns, model.Transaction{
			OccurredOn:  occurred,
			Description: rec[colDesc],
			Amount:      amount,
			Category:    model.Category(rec[colCategory]),
		})
	}
	return txns, nil
}

func txnPath(root, filingID string) string {
	return filepath.Join(root, filingsDir, filingID+"-transactions.csv")
}

// ReturnLinesPath is where a filing's per-transaction return file
// lives once the form has been generated.
func ReturnLinesPath(root, filingID string) string {
	return filepath.Join(root, filingsDir, filingID+"-return-lines.csv")
}

// WriteReturnLines stores the per-transaction return artifact: every
// normalized transaction with the tax attributed to it at the resolved
// rate. Income lines carry tax, expense lines carry zero.
func WriteReturnLines(root, filingID string, txns []model.Transaction, rate decimal.Decimal) error {
	if err := os.MkdirAll(filepath.Join(root, filingsDir), 0o755); err != nil {
		return fmt.Errorf("creating filings dir: %w", err)
	}

	f, err := os.Create(ReturnLinesPath(root, filingID))
	if err != nil {
		return fmt.Errorf("creating return lines file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ReturnHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, txn := range txns {
		row := []string{
			txn.OccurredOn.Format("2006-01-02"),
			txn.Description,
			txn.Amount.String(),
			string(txn.Category),
			compute.AttributeTax(txn, rate).StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing return line: %w", err)
		}
	}
	return cw.Error()
}
