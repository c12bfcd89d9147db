package publish

import (
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
)

// StepResult captures the high-level outcome of a step.
type StepResult string

const (
	StepResultSuccess  StepResult = "success"
	StepResultFailed   StepResult = "failed"
	StepResultCanceled StepResult = "canceled"
)

// Observer receives callbacks around step execution and run lifecycle. It
// is an optional observability channel: the pipeline's correctness never
// depends on an observer seeing anything, and the default is a no-op.
type Observer interface {
	OnRunStart(site string, kind RunKind, steps int)
	OnStepStart(name string)
	OnStepComplete(name string, duration time.Duration, result StepResult)
	OnRunComplete(report *RunReport)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnRunStart(string, RunKind, int)                  {}
func (NoopObserver) OnStepStart(string)                               {}
func (NoopObserver) OnStepComplete(string, time.Duration, StepResult) {}
func (NoopObserver) OnRunComplete(*RunReport)                         {}

// RecorderObserver adapts a metrics.Recorder into an Observer.
type RecorderObserver struct{ Recorder metrics.Recorder }

func (r RecorderObserver) OnRunStart(string, RunKind, int) {}
func (r RecorderObserver) OnStepStart(string)              {}

func (r RecorderObserver) OnStepComplete(name string, d time.Duration, result StepResult) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.ObserveStepDuration(name, d)
	r.Recorder.IncStepResult(name, resultLabel(result))
}

func (r RecorderObserver) OnRunComplete(report *RunReport) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.ObserveRunDuration(report.End.Sub(report.Start))
	r.Recorder.IncRunOutcome(string(report.Outcome))
}

func resultLabel(result StepResult) metrics.ResultLabel {
	switch result {
	case StepResultCanceled:
		return metrics.ResultCanceled
	case StepResultFailed:
		return metrics.ResultFailed
	default:
		return metrics.ResultSuccess
	}
}

// MultiObserver fans callbacks out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnRunStart(site string, kind RunKind, steps int) {
	for _, o := range m {
		o.OnRunStart(site, kind, steps)
	}
}

func (m MultiObserver) OnStepStart(name string) {
	for _, o := range m {
		o.OnStepStart(name)
	}
}

func (m MultiObserver) OnStepComplete(name string, d time.Duration, result StepResult) {
	for _, o := range m {
		o.OnStepComplete(name, d, result)
	}
}

func (m MultiObserver) OnRunComplete(report *RunReport) {
	for _, o := range m {
		o.OnRunComplete(report)
	}
}
