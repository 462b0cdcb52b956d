package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FormatFilingID returns a filing ID like "2024-01-001": one sequence
// per taxable month.
func FormatFilingID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseFilingID parses "2024-01-001" into year, month, seq.
func ParseFilingID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid filing ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in filing ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in filing ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in filing ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// InvoiceRef returns a generated invoice reference like "INV-3F2A9C01"
// for detail rows whose upload carries no invoice number.
func InvoiceRef() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}
