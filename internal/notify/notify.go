// Package notify surfaces run lifecycle events as desktop notifications.
// It is a best-effort observability channel: notification failures are
// logged at debug level and never affect the run.
package notify

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gen2brain/beeep"

	"git.home.luguber.info/inful/sitebuilder/internal/publish"
)

// DesktopObserver implements publish.Observer using OS notifications.
type DesktopObserver struct {
	enabled bool
}

// NewDesktopObserver returns an enabled desktop observer.
func NewDesktopObserver() *DesktopObserver { return &DesktopObserver{enabled: true} }

func (o *DesktopObserver) OnRunStart(site string, kind publish.RunKind, steps int) {
	if !o.enabled {
		return
	}
	o.send("Sitebuilder", fmt.Sprintf("Publishing %s (%s, %d steps)...", site, kind, steps))
}

func (o *DesktopObserver) OnStepStart(string) {}

func (o *DesktopObserver) OnStepComplete(string, time.Duration, publish.StepResult) {}

func (o *DesktopObserver) OnRunComplete(report *publish.RunReport) {
	if !o.enabled {
		return
	}
	elapsed := report.End.Sub(report.Start).Round(time.Millisecond)
	switch report.Outcome {
	case publish.OutcomeSuccess:
		o.send("Site published", fmt.Sprintf("%s published in %s", report.Site, elapsed))
	case publish.OutcomeCanceled:
		o.send("Publishing canceled", report.Site)
	default:
		o.send("Publishing failed", fmt.Sprintf("%s: %s", report.Site, report.Error))
	}
}

func (o *DesktopObserver) send(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		slog.Debug("Desktop notification failed", slog.String("error", err.Error()))
	}
}
