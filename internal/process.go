package internal

import "github.com/petermattis/goid"

// ProcessUpdateQueue applies every pending update of n's work-in-progress
// queue that is eligible at the pass priority, in enqueue order, and
// stores the result as the node's memoized state.
//
// Updates below the pass priority are skipped in place: the first skip of
// the pass freezes baseState at the state computed so far, and every
// update from the first skipped one onward stays in its list to be rebased
// on a later, weaker pass. Priority decides whether an update runs this
// pass, never its relative position, so the converged state is the same no
// matter which priorities get to run first.
//
// Panics from process callbacks are not caught; the enclosing engine turns
// them into captured updates on an ancestor and re-renders.
func ProcessUpdateQueue(n *Node, pass Priority, diag *Diagnostics) {
	q := ensureWorkInProgressQueue(n)
	q.assertConsistent()

	if !q.priority.eligibleAt(pass) {
		// nothing eligible at this priority, including the empty case
		return
	}

	q.processing = true
	q.processingGID = goid.Get()
	q.diag = diag
	defer func() {
		q.processing = false
		q.diag = nil
	}()

	result := q.baseState
	newBase := result
	skipped := false
	remaining := NoPriority

	// tail of each list as the walk finalized it; anything linked past it
	// afterwards was enqueued by a transform and never walked
	var finalTail [numListKinds]handle

	for _, kind := range processOrder {
		newFirst := none
		for h := q.lists[kind].first; h != none; {
			u := q.arena.at(h)

			if !u.priority.eligibleAt(pass) {
				if newFirst == none {
					newFirst = h
				}
				// the first skip anywhere, across all three lists,
				// freezes the base state so a weaker pass can resume
				// from here without re-deriving history
				if !skipped {
					skipped = true
					newBase = result
				}
				remaining = remaining.tighten(u.priority)
				h = u.next
				continue
			}

			if u.commit != nil {
				n.flags |= FlagCommitWork
				q.appendEffect(h)
			}
			if process := u.process; process != nil {
				if state, ok := process(n, result); ok {
					result = state
				}
			}

			// re-read the link through the arena: the transform may have
			// enqueued onto this list's tail, which both grows the arena
			// and links a new record after h
			h = q.arena.at(h).next
		}

		q.lists[kind].first = newFirst
		if newFirst == none {
			q.lists[kind].last = none
		}
		finalTail[kind] = q.lists[kind].last
	}

	if !skipped {
		// everything applied; base state and result coincide for next time
		newBase = result
	}
	q.baseState = newBase

	// a transform may have enqueued onto a list this pass had already
	// finalized; those records were never walked, so fold them into the
	// aggregate alongside the skips and leave them for a later pass
	for _, kind := range processOrder {
		start := q.lists[kind].first
		if t := finalTail[kind]; t != none {
			start = q.arena.at(t).next
		}
		for h := start; h != none; h = q.arena.at(h).next {
			remaining = remaining.tighten(q.arena.at(h).priority)
		}
	}
	q.priority = remaining
	n.memoized = result
}
