package publish

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ReportFileName is where a run report is persisted under .publish.
const ReportFileName = "run-report.json"

// RunOutcome is the final result state of a publishing run.
type RunOutcome string

const (
	OutcomeSuccess  RunOutcome = "success"
	OutcomeFailed   RunOutcome = "failed"
	OutcomeCanceled RunOutcome = "canceled"
)

// StepTiming records one executed step's duration and result.
type StepTiming struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration_ns"`
	Result   StepResult    `json:"result"`
}

// RunReport captures high-level facts about one publishing run for
// observers and for the best-effort report file.
type RunReport struct {
	ID      string       `json:"id"`
	Site    string       `json:"site"`
	Kind    RunKind      `json:"kind"`
	Start   time.Time    `json:"start"`
	End     time.Time    `json:"end"`
	Steps   []StepTiming `json:"steps"`
	Outcome RunOutcome   `json:"outcome"`
	Error   string       `json:"error,omitempty"`
}

func newRunReport(site string, kind RunKind, start time.Time) *RunReport {
	return &RunReport{
		ID:    uuid.NewString(),
		Site:  site,
		Kind:  kind,
		Start: start,
	}
}

func (r *RunReport) recordStep(name string, d time.Duration, result StepResult) {
	r.Steps = append(r.Steps, StepTiming{Name: name, Duration: d, Result: result})
}

func (r *RunReport) finish(end time.Time, outcome RunOutcome, err error) {
	r.End = end
	r.Outcome = outcome
	if err != nil {
		r.Error = err.Error()
	}
}

// Persist writes the report as JSON into dir, atomically via a temp file
// and rename.
func (r *RunReport) Persist(dir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}
	path := filepath.Join(dir, ReportFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp run report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename run report: %w", err)
	}
	return nil
}
