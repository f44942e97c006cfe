// Package alert defines the user-visible notice contract shared by the
// storefront components. Every failure a component handles ends either
// here or in a log line; nothing propagates to a global error handler.
package alert

// Kind classifies a notice.
type Kind string

const (
	// Error marks a failure notice.
	Error Kind = "error"

	// Success marks a confirmation notice.
	Success Kind = "success"
)

// Alerter surfaces a notice on the host surface.
type Alerter interface {
	Alert(kind Kind, message string)
}

// Func adapts a plain function to the Alerter interface.
type Func func(kind Kind, message string)

// Alert implements Alerter.
func (f Func) Alert(kind Kind, message string) {
	f(kind, message)
}

// Discard drops every notice. Useful for headless hosts and tests.
var Discard Alerter = Func(func(Kind, string) {})
