package internal

// Priority orders pending work. A numerically lower token is more urgent
// and must be visible no later than any higher one. The queue treats the
// value as opaque: only the total order matters.
type Priority uint32

// NoPriority marks the absence of pending work. It compares weaker than
// every real priority.
const NoPriority Priority = 1<<32 - 1

// eligibleAt reports whether work tagged p may run during a pass rendering
// at the given priority.
func (p Priority) eligibleAt(pass Priority) bool {
	return p <= pass
}

// tighten returns the more urgent of the two priorities.
func (p Priority) tighten(q Priority) Priority {
	if q < p {
		return q
	}
	return p
}
