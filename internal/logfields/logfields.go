package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySite       = "site"
	KeyStep       = "step"
	KeyRunKind    = "run_kind"
	KeyPath       = "path"
	KeySection    = "section"
	KeyURL        = "url"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyOutcome    = "outcome"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Site(name string) slog.Attr      { return slog.String(KeySite, name) }
func Step(name string) slog.Attr      { return slog.String(KeyStep, name) }
func RunKind(kind string) slog.Attr   { return slog.String(KeyRunKind, kind) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Section(id string) slog.Attr     { return slog.String(KeySection, id) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
