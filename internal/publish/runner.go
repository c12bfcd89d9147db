package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/folders"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// Publisher drives one publishing run: it resolves the step tree for the
// detected run kind, prepares the folder group, constructs the context and
// executes the resolved steps strictly in order, stopping at the first
// failure.
type Publisher struct {
	site      *site.Config
	steps     []Step
	args      []string
	rootDir   string
	outputDir string
	observer  Observer
	now       func() time.Time
}

// New returns a Publisher for the given site and step tree. Run kind is
// detected from os.Args-style arguments supplied via SetArgs.
func New(cfg *site.Config, steps ...Step) *Publisher {
	return &Publisher{
		site:     cfg,
		steps:    steps,
		observer: NoopObserver{},
		now:      time.Now,
	}
}

// SetArgs supplies the process arguments run-kind detection inspects.
func (p *Publisher) SetArgs(args []string) *Publisher { p.args = args; return p }

// SetRootDir overrides site-root discovery with an explicit path.
func (p *Publisher) SetRootDir(path string) *Publisher { p.rootDir = path; return p }

// SetOutputDir overrides the output folder location.
func (p *Publisher) SetOutputDir(path string) *Publisher { p.outputDir = path; return p }

// SetObserver replaces the run observer. The default is a no-op.
func (p *Publisher) SetObserver(o Observer) *Publisher {
	if o == nil {
		o = NoopObserver{}
	}
	p.observer = o
	return p
}

// SetRecorder attaches a metrics recorder alongside the current observer.
func (p *Publisher) SetRecorder(r metrics.Recorder) *Publisher {
	return p.SetObserver(MultiObserver{p.observer, RecorderObserver{Recorder: r}})
}

// SetNow injects the clock, for tests.
func (p *Publisher) SetNow(now func() time.Time) *Publisher { p.now = now; return p }

// Run executes the pipeline and returns the final content snapshot on
// success. On failure the run stops at the failing step; filesystem side
// effects of already-completed steps are not rolled back.
func (p *Publisher) Run(ctx context.Context) (*PublishedSite, error) {
	kind := DetectRunKind(p.args)

	resolved := resolveSteps(p.steps, kind)
	if len(resolved) == 0 {
		return nil, &Error{
			Kind:    KindNoSteps,
			Message: fmt.Sprintf("no runnable steps for site %q in a %s run", p.site.Name, kind),
		}
	}

	group, err := folders.Resolve(folders.Options{
		RootPath:    p.rootDir,
		OutputPath:  p.outputDir,
		EmptyOutput: kind == KindGeneration,
	})
	if err != nil {
		return nil, &Error{Kind: KindFolderSetup, Path: p.rootDir, Err: err}
	}

	c := newContext(p.site, group, p.now)
	c.GenerationWillBegin()

	report := newRunReport(p.site.Name, kind, p.now())

	slog.Info("Publishing site",
		logfields.Site(p.site.Name),
		logfields.RunKind(string(kind)),
		logfields.Count(len(resolved)))
	p.observer.OnRunStart(p.site.Name, kind, len(resolved))

	for i, step := range resolved {
		if err := ctx.Err(); err != nil {
			canceled := &Error{Kind: KindCanceled, Step: step.name, Err: err}
			report.recordStep(step.name, 0, StepResultCanceled)
			p.finish(group, report, OutcomeCanceled, canceled)
			return nil, canceled
		}

		slog.Info(fmt.Sprintf("[%d/%d] %s", i+1, len(resolved), step.name))
		p.observer.OnStepStart(step.name)
		c.PrepareForStep(step.name)

		t0 := p.now()
		stepErr := step.fn(ctx, c)
		dur := p.now().Sub(t0)

		if stepErr != nil {
			classified := classifyStepError(step.name, stepErr)
			result := StepResultFailed
			outcome := OutcomeFailed
			if classified.Kind == KindCanceled {
				result = StepResultCanceled
				outcome = OutcomeCanceled
			}
			report.recordStep(step.name, dur, result)
			p.observer.OnStepComplete(step.name, dur, result)
			p.finish(group, report, outcome, classified)
			return nil, classified
		}

		report.recordStep(step.name, dur, StepResultSuccess)
		p.observer.OnStepComplete(step.name, dur, StepResultSuccess)
	}

	slog.Info("Successfully published site", logfields.Site(p.site.Name))
	p.finish(group, report, OutcomeSuccess, nil)
	return c.snapshot(), nil
}

// finish closes out the report, notifies the observer and persists the
// report best-effort.
func (p *Publisher) finish(group *folders.Group, report *RunReport, outcome RunOutcome, err error) {
	report.finish(p.now(), outcome, err)
	p.observer.OnRunComplete(report)
	if persistErr := report.Persist(group.Internal.Path()); persistErr != nil {
		slog.Warn("Failed to persist run report", logfields.Error(persistErr))
	}
}

// classifyStepError turns a step callback's error into the structured form
// the caller sees. A publishing Error passes through, annotated with the
// step name if it lacks one; context cancellation maps to KindCanceled;
// anything else is wrapped generically with the step name and cause.
func classifyStepError(step string, err error) *Error {
	if pe, ok := AsError(err); ok {
		if pe.Step == "" {
			pe.Step = step
		}
		return pe
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindCanceled, Step: step, Err: err}
	}
	return &Error{Kind: KindStepFailed, Step: step, Message: "step failed", Err: err}
}
