package normalize

import (
	"math"
	"strconv"
	"time"
)

// serialEpochOffset is the day count between the spreadsheet serial
// epoch (1899-12-30) and 1970-01-01.
const serialEpochOffset = 25569

// dateFormats are tried in order for free-text dates. Slashed and
// dashed forms are day-first, matching the returns this tool files.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"02-01-2006",
	"2 Jan 2006",
	time.RFC3339,
}

// coerceDate parses a raw date cell. Numeric values are spreadsheet
// date serials; strings go through the format list. Anything else
// falls back to the normalizer's reference date.
func (n *Normalizer) coerceDate(raw string) time.Time {
	if raw == "" {
		return n.refDate
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return fromSerial(serial)
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return n.refDate
}

// fromSerial converts a spreadsheet date serial to a UTC calendar date.
func fromSerial(serial float64) time.Time {
	seconds := math.Round((serial - serialEpochOffset) * 86400)
	return time.Unix(int64(seconds), 0).UTC()
}
