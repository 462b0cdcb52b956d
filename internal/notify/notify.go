// Package notify emits fire-and-forget signals at filing lifecycle
// transitions. Delivery (in-app inbox, email) is owned by the caller's
// environment; the core only raises the events.
package notify

import (
	"github.com/rs/zerolog"

	"github.com/pesafile-dev/pesafile/internal/model"
)

// Notifier receives filing lifecycle events. Implementations must not
// block and must not fail the triggering operation.
type Notifier interface {
	FilingReady(f model.Filing)
	FilingSubmitted(f model.Filing)
	FilingArchived(f model.Filing, location string)
}

// LogNotifier writes events to the log. The default sink when no
// delivery channel is wired.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) FilingReady(f model.Filing) {
	n.log.Info().
		Str("filing_id", f.ID).
		Str("tax_due", f.TaxDue.StringFixed(2)).
		Msg("filing ready for download")
}

func (n *LogNotifier) FilingSubmitted(f model.Filing) {
	n.log.Info().
		Str("filing_id", f.ID).
		Msg("filing submitted")
}

func (n *LogNotifier) FilingArchived(f model.Filing, location string) {
	n.log.Info().
		Str("filing_id", f.ID).
		Str("location", location).
		Msg("filing archived to vault")
}
