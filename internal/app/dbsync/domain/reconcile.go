package domain

// Decision classifies an incoming write request against the stored aggregate.
type Decision int

const (
	// Apply means declared == current+1; the only version that may be committed.
	Apply Decision = iota + 1
	// Stale means the declared version was already superseded.
	Stale
	// Premature means earlier versions have not been applied yet.
	Premature
)

func (d Decision) String() string {
	switch d {
	case Apply:
		return "apply"
	case Stale:
		return "stale"
	case Premature:
		return "premature"
	}
	return "undefined"
}

// Reconcile compares the declared target version with the stored one.
// An aggregate that does not exist yet is the caller's concern and is treated
// as Premature.
func Reconcile(current, declared int64) Decision {
	// declared > current rules out underflow in declared-1; current+1 could
	// overflow at math.MaxInt64.
	switch {
	case declared <= current:
		return Stale
	case declared-1 > current:
		return Premature
	default:
		return Apply
	}
}

// Outcome is what happened to one dispatched event.
type Outcome int

const (
	// Applied means the write was committed to the read store.
	Applied Outcome = iota + 1
	// Skipped means the event was stale and dropped.
	Skipped
	// Delayed means the event must go through the delay path and be retried.
	Delayed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Skipped:
		return "skipped"
	case Delayed:
		return "delayed"
	}
	return "undefined"
}

// OutcomeOf maps a reconciliation decision to the dispatch outcome it leads to
// when the write is not attempted.
func OutcomeOf(d Decision) Outcome {
	switch d {
	case Stale:
		return Skipped
	case Premature:
		return Delayed
	default:
		return Applied
	}
}
