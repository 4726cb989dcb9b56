package tasks

import "context"

// Submitter accepts fire-and-forget work. Submit never blocks the
// caller; it reports false when the task could not be queued. Task
// errors are logged by the runner, not returned to the submitter.
type Submitter interface {
	Submit(name string, fn func(ctx context.Context) error) bool
}
