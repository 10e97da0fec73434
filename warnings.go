package sfplugins

// WarningSink receives non-fatal warnings emitted while a flag value is
// resolved. Warnings never block resolution, and emitting the same warning
// twice (for example when help text re-runs a resolution) is harmless.
type WarningSink interface {
	Warn(message string)
}

// Warnings is a WarningSink that collects messages in emission order.
type Warnings struct {
	messages []string
}

// Warn records one warning message.
func (w *Warnings) Warn(message string) {
	w.messages = append(w.messages, message)
}

// Messages returns the collected warnings.
func (w *Warnings) Messages() []string {
	out := make([]string, len(w.messages))
	copy(out, w.messages)
	return out
}

// DiscardWarnings drops every warning. Useful when a validation is re-run
// purely for its error result.
var DiscardWarnings WarningSink = discardSink{}

type discardSink struct{}

func (discardSink) Warn(string) {}
