// Package filings owns the filing lifecycle: creation from an upload,
// normalization and tax computation, form generation through the
// external filler, and submission. All state lives in CSV files under
// the workspace root.
package filings

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pesafile-dev/pesafile/internal/auditlog"
	"github.com/pesafile-dev/pesafile/internal/compute"
	"github.com/pesafile-dev/pesafile/internal/formfill"
	"github.com/pesafile-dev/pesafile/internal/forms"
	"github.com/pesafile-dev/pesafile/internal/id"
	"github.com/pesafile-dev/pesafile/internal/model"
	"github.com/pesafile-dev/pesafile/internal/normalize"
	"github.com/pesafile-dev/pesafile/internal/notify"
	"github.com/pesafile-dev/pesafile/internal/vault"
)

// NotFoundError is returned when a filing ID does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("filing %s not found", e.ID)
}

// TransitionError is returned when an operation would move a filing
// through an illegal status transition.
type TransitionError struct {
	ID   string
	From model.FilingStatus
	To   model.FilingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("filing %s: cannot transition %s -> %s", e.ID, e.From, e.To)
}

// Archiver copies a filled form into long-term storage. *vault.Service
// satisfies this.
type Archiver interface {
	Store(srcPath, pin, filingID string) (vault.Archive, error)
}

// Service orchestrates the filing lifecycle over a workspace root.
// The mutex serializes store mutations, which also makes the
// COMPUTED -> FORM_FILLING gate atomic: two concurrent Generate calls
// on the same filing cannot both enter the fill.
type Service struct {
	mu       sync.Mutex
	root     string
	engine   *compute.Engine
	builder  *forms.Builder
	filler   formfill.Filler
	notifier notify.Notifier
	archiver Archiver
	log      zerolog.Logger
}

// NewService creates a filing service. archiver may be nil to disable
// vault copies.
func NewService(root string, engine *compute.Engine, builder *forms.Builder, filler formfill.Filler, notifier notify.Notifier, archiver Archiver, log zerolog.Logger) *Service {
	return &Service{
		root:     root,
		engine:   engine,
		builder:  builder,
		filler:   filler,
		notifier: notifier,
		archiver: archiver,
		log:      log,
	}
}

// Create registers a new DRAFT filing for the given month, pointing at
// an uploaded transaction sheet. The filing ID embeds year, month and a
// per-month sequence number.
func (s *Service) Create(taxpayer model.TaxpayerProfile, year, month int, sourceFile string) (model.Filing, error) {
	if month < 1 || month > 12 {
		return model.Filing{}, fmt.Errorf("invalid month %d", month)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := ReadAll(s.root)
	if err != nil {
		return model.Filing{}, err
	}

	seq := 1
	for _, f := range all {
		if f.Year == year && f.Month == month {
			seq++
		}
	}

	now := time.Now().UTC()
	filing := model.Filing{
		ID:          id.FormatFilingID(year, month, seq),
		TaxpayerPIN: taxpayer.PIN,
		Year:        year,
		Month:       month,
		Status:      model.StatusDraft,
		SourceFile:  sourceFile,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	all = append(all, filing)
	if err := WriteAll(s.root, all); err != nil {
		return model.Filing{}, err
	}

	s.log.Info().Str("filing_id", filing.ID).Str("source", sourceFile).Msg("filing created")
	return filing, nil
}

// Process reads the filing's upload, normalizes every row, computes the
// tax position for the filing period, and moves the filing to COMPUTED.
// A filing stuck in PROCESSING after a failed run can be processed
// again.
func (s *Service) Process(filingID string, taxpayer model.TaxpayerProfile) (model.Filing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, idx, err := s.find(filingID)
	if err != nil {
		return model.Filing{}, err
	}
	filing := all[idx]

	if filing.Status != model.StatusProcessing {
		if !filing.Status.CanTransitionTo(model.StatusProcessing) {
			return model.Filing{}, &TransitionError{ID: filingID, From: filing.Status, To: model.StatusProcessing}
		}
		filing.Status = model.StatusProcessing
		filing.UpdatedAt = time.Now().UTC()
		all[idx] = filing
		if err := WriteAll(s.root, all); err != nil {
			return model.Filing{}, err
		}
	}

	rows, err := normalize.ReadCSVFile(filing.SourceFile)
	if err != nil {
		return s.failInPlace(all, idx, err)
	}

	// Rows with no usable date land on the last day of the filing
	// period, keeping them inside the period being filed.
	txns := normalize.New(filing.PeriodEnd()).Normalize(rows)

	summary, err := s.engine.Compute(txns, taxpayer.Regime, filing.PeriodEnd())
	if err != nil {
		return s.failInPlace(all, idx, err)
	}

	if err := WriteTransactions(s.root, filingID, txns); err != nil {
		return s.failInPlace(all, idx, err)
	}

	filing.GrossIncome = summary.GrossIncome
	filing.TotalExpenses = summary.TotalExpenses
	filing.TaxDue = summary.TaxDue
	filing.Status = model.StatusComputed
	filing.LastError = ""
	filing.UpdatedAt = time.Now().UTC()
	all[idx] = filing
	if err := WriteAll(s.root, all); err != nil {
		return model.Filing{}, err
	}

	s.log.Info().
		Str("filing_id", filingID).
		Str("rule", summary.RuleCode).
		Str("tax_due", summary.TaxDue.StringFixed(2)).
		Int("transactions", len(txns)).
		Msg("filing computed")
	return filing, nil
}

// Generate builds the form instructions for a COMPUTED filing and runs
// the external filler against the template. On success the filing moves
// to READY and the filled form is archived; on failure it rolls back to
// COMPUTED with the error recorded, so the fill can be retried.
func (s *Service) Generate(ctx context.Context, filingID string, taxpayer model.TaxpayerProfile, templatePath string) (model.Filing, error) {
	filing, err := s.beginFill(filingID)
	if err != nil {
		return model.Filing{}, err
	}

	txns, err := ReadTransactions(s.root, filingID)
	if err != nil {
		return s.rollbackFill(filingID, err)
	}

	ins, err := s.builder.Build(filing, txns, taxpayer)
	if err != nil {
		return s.rollbackFill(filingID, err)
	}

	summary, err := s.engine.Compute(txns, taxpayer.Regime, filing.PeriodEnd())
	if err != nil {
		return s.rollbackFill(filingID, err)
	}

	outputPath := filepath.Join(s.root, filingsDir, filingID+"-return"+filepath.Ext(templatePath))
	result, err := s.filler.Fill(ctx, templatePath, ins, outputPath)
	if err != nil {
		s.log.Error().Err(err).Str("filing_id", filingID).Str("status", string(result.Status)).Msg("form fill failed")
		return s.rollbackFill(filingID, err)
	}

	// The return-lines file accompanies the filled form: the same
	// transactions with tax attributed per line at the resolved rate.
	if err := WriteReturnLines(s.root, filingID, txns, summary.Rate); err != nil {
		return s.rollbackFill(filingID, err)
	}

	filing, err = s.completeFill(filingID, result.OutputPath)
	if err != nil {
		return model.Filing{}, err
	}

	s.notifier.FilingReady(filing)

	// The form is READY either way; a failed vault copy is retried
	// on submit.
	s.archive(filing)

	return filing, nil
}

// Submit marks a READY filing as SUBMITTED. Submission itself happens
// out of band on the revenue authority portal; this records that it was
// done.
func (s *Service) Submit(filingID string) (model.Filing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, idx, err := s.find(filingID)
	if err != nil {
		return model.Filing{}, err
	}
	filing := all[idx]

	if filing.Status != model.StatusReady {
		return model.Filing{}, &TransitionError{ID: filingID, From: filing.Status, To: model.StatusSubmitted}
	}

	filing.Status = model.StatusSubmitted
	filing.UpdatedAt = time.Now().UTC()
	all[idx] = filing
	if err := WriteAll(s.root, all); err != nil {
		return model.Filing{}, err
	}

	// Catch up a vault copy that failed during generation.
	if filing.OutputFile != "" && !s.archived(filing.ID) {
		s.archive(filing)
	}

	s.audit(auditlog.Entry{
		Actor:      filing.TaxpayerPIN,
		Action:     auditlog.ActionFilingSubmitted,
		EntityType: "filing",
		EntityID:   filing.ID,
	})
	s.notifier.FilingSubmitted(filing)
	s.log.Info().Str("filing_id", filingID).Msg("filing submitted")
	return filing, nil
}

// Get returns one filing by ID.
func (s *Service) Get(filingID string) (model.Filing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, idx, err := s.find(filingID)
	if err != nil {
		return model.Filing{}, err
	}
	return all[idx], nil
}

// History returns every filing, oldest first.
func (s *Service) History() ([]model.Filing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ReadAll(s.root)
}

// Transactions returns the normalized transactions stored for a filing.
func (s *Service) Transactions(filingID string) ([]model.Transaction, error) {
	return ReadTransactions(s.root, filingID)
}

// beginFill atomically moves a filing COMPUTED -> FORM_FILLING. A
// filing already in FORM_FILLING is rejected, which is what stops a
// second concurrent fill.
func (s *Service) beginFill(filingID string) (model.Filing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, idx, err := s.find(filingID)
	if err != nil {
		return model.Filing{}, err
	}
	filing := all[idx]

	if filing.Status != model.StatusComputed {
		return model.Filing{}, &TransitionError{ID: filingID, From: filing.Status, To: model.StatusFormFilling}
	}

	filing.Status = model.StatusFormFilling
	filing.UpdatedAt = time.Now().UTC()
	all[idx] = filing
	if err := WriteAll(s.root, all); err != nil {
		return model.Filing{}, err
	}
	return filing, nil
}

// rollbackFill returns a FORM_FILLING filing to COMPUTED with the
// failure recorded. The original error is passed through to the caller.
func (s *Service) rollbackFill(filingID string, cause error) (model.Filing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, idx, err := s.find(filingID)
	if err != nil {
		return model.Filing{}, cause
	}
	filing := all[idx]

	filing.Status = model.StatusComputed
	filing.LastError = cause.Error()
	filing.UpdatedAt = time.Now().UTC()
	all[idx] = filing
	if err := WriteAll(s.root, all); err != nil {
		s.log.Error().Err(err).Str("filing_id", filingID).Msg("fill rollback write failed")
	}
	return filing, cause
}

func (s *Service) completeFill(filingID, outputPath string) (model.Filing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, idx, err := s.find(filingID)
	if err != nil {
		return model.Filing{}, err
	}
	filing := all[idx]

	filing.Status = model.StatusReady
	filing.OutputFile = outputPath
	filing.LastError = ""
	filing.UpdatedAt = time.Now().UTC()
	all[idx] = filing
	if err := WriteAll(s.root, all); err != nil {
		return model.Filing{}, err
	}
	return filing, nil
}

// failInPlace records an error on a filing without changing its status.
// Caller holds the mutex.
func (s *Service) failInPlace(all []model.Filing, idx int, cause error) (model.Filing, error) {
	filing := all[idx]
	filing.LastError = cause.Error()
	filing.UpdatedAt = time.Now().UTC()
	all[idx] = filing
	if err := WriteAll(s.root, all); err != nil {
		s.log.Error().Err(err).Str("filing_id", filing.ID).Msg("error write failed")
	}
	return filing, cause
}

func (s *Service) find(filingID string) ([]model.Filing, int, error) {
	all, err := ReadAll(s.root)
	if err != nil {
		return nil, 0, err
	}
	for i, f := range all {
		if f.ID == filingID {
			return all, i, nil
		}
	}
	return nil, 0, &NotFoundError{ID: filingID}
}

// archive copies the filled form into the vault, recording the copy in
// the audit log. Failures are logged, not fatal: the filing's status is
// already correct and the copy is retried on submit.
func (s *Service) archive(filing model.Filing) {
	if s.archiver == nil {
		return
	}
	arc, err := s.archiver.Store(filing.OutputFile, filing.TaxpayerPIN, filing.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("filing_id", filing.ID).Msg("vault archive failed")
		return
	}
	s.audit(auditlog.Entry{
		Actor:      filing.TaxpayerPIN,
		Action:     auditlog.ActionArchiveGenerated,
		EntityType: "archive",
		EntityID:   filing.ID,
		Details:    arc.Name,
	})
	s.notifier.FilingArchived(filing, arc.Path)
}

// archived reports whether a vault copy was already recorded for the
// filing.
func (s *Service) archived(filingID string) bool {
	entries, err := auditlog.Read(s.root)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.Action == auditlog.ActionArchiveGenerated && e.EntityID == filingID {
			return true
		}
	}
	return false
}

func (s *Service) audit(e auditlog.Entry) {
	e.Timestamp = time.Now().UTC()
	if err := auditlog.Append(s.root, []auditlog.Entry{e}); err != nil {
		s.log.Error().Err(err).Str("action", e.Action).Msg("audit append failed")
	}
}
