package batch

import "context"

// Status reports whether an operation handled its item.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Outcome is the result of one operation invocation. Category tags the
// failure kind in the journal; Detail carries optional diagnostic text.
type Outcome struct {
	Item     string
	Status   Status
	Category string
	Detail   string
}

// Succeeded reports whether the outcome is a success.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}

// Operation is the caller-supplied per-item work function. It must produce
// exactly one outcome per item and should honour ctx for long-running work.
type Operation func(ctx context.Context, item string) Outcome
