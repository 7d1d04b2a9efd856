package worker

// shift_report_worker.go
// Processes shift report jobs from QueueShiftReport: renders the end-of-shift
// PDF summary and hands it to the email queue for the back office.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dukaledger/internal/infra"
	"dukaledger/internal/model"
	"dukaledger/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ShiftReportWorker struct {
	shifts      repository.ShiftRepository
	company     repository.CompanyRepository
	dispatcher  *Dispatcher
	storagePath string
	reportEmail string
}

func NewShiftReportWorker(shifts repository.ShiftRepository, company repository.CompanyRepository, dispatcher *Dispatcher, storagePath, reportEmail string) *ShiftReportWorker {
	return &ShiftReportWorker{
		shifts:      shifts,
		company:     company,
		dispatcher:  dispatcher,
		storagePath: storagePath,
		reportEmail: reportEmail,
	}
}

// Process renders the PDF and enqueues the email. A missing report address is
// a silent skip, not a failure — small sites run without one.
func (w *ShiftReportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ShiftReportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("shift_report_worker: invalid payload: %w", err)
	}
	shiftID, err := uuid.Parse(payload.ShiftID)
	if err != nil {
		return fmt.Errorf("shift_report_worker: invalid shift_id: %w", err)
	}

	shift, err := w.shifts.FindByID(ctx, shiftID)
	if err != nil {
		return fmt.Errorf("shift_report_worker: load shift: %w", err)
	}
	if shift.Status != model.ShiftClosed {
		return fmt.Errorf("shift_report_worker: shift %s not closed", shiftID)
	}

	company, err := w.company.Get(ctx)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("shift_report_worker: load company profile: %w", err)
	}

	pdfPath, err := infra.GenerateShiftReportPDF(shift, company, w.storagePath)
	if err != nil {
		return fmt.Errorf("shift_report_worker: render pdf: %w", err)
	}
	log.Info().Str("shift_id", shiftID.String()).Str("pdf", pdfPath).Msg("shift report rendered")

	if w.reportEmail == "" {
		log.Warn().Msg("shift_report_worker: no report email configured — skipping send")
		return nil
	}

	subject := fmt.Sprintf("Shift report %s %s", shift.ShiftDate.Format("2006-01-02"), shift.ShiftType)
	body := fmt.Sprintf("Cash reconciliation for the %s shift of %s is attached.",
		shift.ShiftType, shift.ShiftDate.Format("2006-01-02"))
	return w.dispatcher.EnqueueEmail(ctx, EmailPayload{
		ToEmail:    w.reportEmail,
		Subject:    subject,
		Body:       body,
		AttachPath: pdfPath,
	})
}
