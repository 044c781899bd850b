package internal

import "github.com/petermattis/goid"

// Diagnostics receives non-fatal usage warnings. A nil sink (or a nil Warn)
// disables them without changing functional behavior; release builds simply
// pass nothing.
type Diagnostics struct {
	Warn func(msg string)
}

func (d *Diagnostics) warn(msg string) {
	if d == nil || d.Warn == nil {
		return
	}
	d.Warn(msg)
}

// warnIfProcessing reports an enqueue that arrives while this queue is
// mid-process. Same goroutine means a state transform produced a side
// effect that re-entered the queue; another goroutine means the caller
// broke the single-logical-thread model. Either way the append proceeds.
func (q *UpdateQueue) warnIfProcessing() {
	if !q.processing {
		return
	}
	if goid.Get() == q.processingGID {
		q.diag.warn("loom: update enqueued from inside a state transform; transforms must be pure")
		return
	}
	q.diag.warn("loom: update enqueued from another goroutine while its queue is processing")
}
