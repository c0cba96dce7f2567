package junction

import "time"

// directoryStatus classifies a directory whose removal failed with
// "directory not empty": either it truly holds live children, or its
// children are merely marked for deletion and the OS has not yet removed
// them from the parent's listing, or the listing already cleared.
type directoryStatus int

const (
	statusDoesNotExist directoryStatus = iota
	statusEmpty
	statusNotEmpty
	statusOnlyPendingDeletes
)

// removeAttempt is the result of one RemoveDirectory call, reduced to what
// the retry loop needs to decide the next step.
type removeAttempt int

const (
	removeOK removeAttempt = iota
	removeNotEmpty
	removeAccessDenied
	removeDoesNotExist
	removeError
)

// RetryPolicy bounds the directory-deletion retry loop. Directory-entry
// deletion on Windows is asynchronous: closing the deleting handle does not
// guarantee the parent listing is updated before a subsequent remove
// attempt sees it. The loop absorbs that lag within a hard attempt cap so
// callers can rely on bounded termination (about 100-120ms with the
// defaults).
type RetryPolicy struct {
	// MaxAttempts caps the number of remove attempts.
	MaxAttempts int
	// Delay is slept between attempts that found only children still
	// pending deletion.
	Delay time.Duration
	// Sleep is the wait function, replaceable in tests. Nil means
	// time.Sleep.
	Sleep func(time.Duration)
}

// DefaultRetryPolicy returns the policy used by Delete: 20 attempts with a
// 5ms pause when children are mid-deletion.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 20, Delay: 5 * time.Millisecond, Sleep: time.Sleep}
}

// run drives remove until it succeeds, fails for a non-retryable reason or
// the attempt budget runs out. When remove reports "not empty", classify
// decides whether the state is genuine (stop with DirectoryNotEmpty),
// transient (sleep, then retry) or already cleared (retry immediately).
// Exhausting the budget reports DirectoryNotEmpty.
func (p RetryPolicy) run(remove func() removeAttempt, classify func() directoryStatus) DeleteOutcome {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		switch remove() {
		case removeOK:
			return DeleteSuccess
		case removeAccessDenied:
			return DeleteAccessDenied
		case removeDoesNotExist:
			return DeleteDoesNotExist
		case removeError:
			return DeleteError
		case removeNotEmpty:
			switch classify() {
			case statusNotEmpty:
				return DeleteDirectoryNotEmpty
			case statusEmpty:
				// The pending children are gone already; retry at once.
			case statusOnlyPendingDeletes:
				sleep(p.Delay)
			case statusDoesNotExist:
				// Removal just failed with "not empty", so the directory
				// existed a moment ago. Treat the contradiction as an error.
				return DeleteError
			}
		}
	}
	return DeleteDirectoryNotEmpty
}
