// Package publish is the orchestration core of the site builder: it resolves
// a tree of named build steps for a run kind, drives them sequentially
// against a shared mutable publishing context, and returns the final content
// snapshot.
package publish

import "context"

// RunKind selects which steps of a tree take part in a run.
type RunKind string

const (
	// KindSystem steps run in every kind of run.
	KindSystem RunKind = "system"
	// KindGeneration steps run when the site is (re)generated.
	KindGeneration RunKind = "generation"
	// KindDeployment steps run when the generated site is deployed.
	KindDeployment RunKind = "deployment"
)

// Deployment flag forms recognized among process arguments.
const (
	DeployFlagLong  = "--deploy"
	DeployFlagShort = "-d"
)

// DetectRunKind inspects process arguments and returns Deployment when the
// deployment flag is present, Generation otherwise.
func DetectRunKind(args []string) RunKind {
	for _, arg := range args {
		if arg == DeployFlagLong || arg == DeployFlagShort {
			return KindDeployment
		}
	}
	return KindGeneration
}

// StepFn is the work a single operation step performs against the context.
type StepFn func(ctx context.Context, c *Context) error

type stepBody int

const (
	bodyEmpty stepBody = iota
	bodyGroup
	bodyOperation
)

// Step is one node of a build-step tree: a kind plus either nothing, an
// ordered group of child steps, or a single named operation. Steps are
// immutable once constructed.
type Step struct {
	kind     RunKind
	body     stepBody
	name     string
	fn       StepFn
	children []Step
}

// Kind returns the step's run kind.
func (s Step) Kind() RunKind { return s.kind }

// Empty returns a step of the given kind contributing nothing to any run.
func Empty(kind RunKind) Step {
	return Step{kind: kind, body: bodyEmpty}
}

// Group returns a step holding an ordered list of child steps.
func Group(kind RunKind, children ...Step) Step {
	return Step{kind: kind, body: bodyGroup, children: children}
}

// Operation returns a step performing a single named unit of work.
func Operation(kind RunKind, name string, fn StepFn) Step {
	return Step{kind: kind, body: bodyOperation, name: name, fn: fn}
}

// SystemStep returns an operation that takes part in every run.
func SystemStep(name string, fn StepFn) Step { return Operation(KindSystem, name, fn) }

// GenerationStep returns an operation that takes part in generation runs.
func GenerationStep(name string, fn StepFn) Step { return Operation(KindGeneration, name, fn) }

// DeploymentStep returns an operation that takes part in deployment runs.
func DeploymentStep(name string, fn StepFn) Step { return Operation(KindDeployment, name, fn) }

// runnableStep is one resolved unit of work, ready for sequential execution.
type runnableStep struct {
	name string
	fn   StepFn
}

// resolveSteps flattens a step tree into the ordered list of operations that
// take part in a run of the given kind. It is a pure recursive filter:
// nodes whose kind is neither System nor the requested kind contribute
// nothing, groups concatenate their children's contributions in order, and
// operations contribute exactly one runnable step, preserving tree
// pre-order.
func resolveSteps(steps []Step, kind RunKind) []runnableStep {
	var out []runnableStep
	for _, s := range steps {
		if s.kind != KindSystem && s.kind != kind {
			continue
		}
		switch s.body {
		case bodyEmpty:
			// contributes nothing
		case bodyGroup:
			out = append(out, resolveSteps(s.children, kind)...)
		case bodyOperation:
			out = append(out, runnableStep{name: s.name, fn: s.fn})
		}
	}
	return out
}
