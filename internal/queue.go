package internal

// UpdateQueue is one view's pending work for one node. At most two queues
// exist per node pair: one on the committed view and one on the
// work-in-progress view. They share update records through the pair's
// arena; everything else is private to the view.
type UpdateQueue struct {
	arena *updateArena

	// baseState is the state immediately before the first unprocessed
	// update in the persistent list.
	baseState any

	// priority aggregates the most urgent pending update, or NoPriority
	// when nothing is pending.
	priority Priority

	// gen is the queue's generation. Committing bumps it; a
	// work-in-progress queue whose generation lags the committed queue's
	// is stale and gets re-cloned before processing.
	gen uint64

	lists  [numListKinds]updateList
	effect updateList

	// processing is set for the duration of processUpdateQueue, together
	// with the goroutine running it and the diagnostics sink of the
	// pass. Enqueues landing in that window are reported, not blocked.
	processing    bool
	processingGID int64
	diag          *Diagnostics
}

func newUpdateQueue(arena *updateArena, baseState any) *UpdateQueue {
	return &UpdateQueue{
		arena:     arena,
		baseState: baseState,
		priority:  NoPriority,
	}
}

// clone makes a private copy for the other view. The persistent list is
// carried over by handle so record identity is preserved; the render-phase,
// captured and effect lists are view-local and start empty.
func (q *UpdateQueue) clone() *UpdateQueue {
	c := newUpdateQueue(q.arena, q.baseState)
	c.priority = q.priority
	c.gen = q.gen
	c.lists[listPersistent] = q.lists[listPersistent]
	return c
}

// append links h onto the tail of the given list and tightens the
// aggregate priority.
func (q *UpdateQueue) append(kind listKind, h handle) {
	l := &q.lists[kind]
	if l.last == none {
		l.first, l.last = h, h
	} else {
		q.arena.at(l.last).next = h
		l.last = h
	}
	q.priority = q.priority.tighten(q.arena.at(h).priority)
}

// appendEffect links h onto the transient effect list, resetting the
// record's nextEffect first: an aborted earlier pass may have left it
// dangling.
func (q *UpdateQueue) appendEffect(h handle) {
	q.arena.at(h).nextEffect = none
	if q.effect.last == none {
		q.effect.first, q.effect.last = h, h
	} else {
		q.arena.at(q.effect.last).nextEffect = h
		q.effect.last = h
	}
}

// fold splices the given view-local list onto the end of the persistent
// list, so residue a pass had no priority for is retried later.
func (q *UpdateQueue) fold(kind listKind) {
	src := q.lists[kind]
	if src.first == none {
		return
	}
	dst := &q.lists[listPersistent]
	if dst.last == none {
		*dst = src
	} else {
		q.arena.at(dst.last).next = src.first
		dst.last = src.last
	}
	q.lists[kind] = updateList{}
}

func (q *UpdateQueue) empty() bool {
	for kind := range q.lists {
		if q.lists[kind].first != none {
			return false
		}
	}
	return true
}

// assertConsistent panics when the aggregate priority disagrees with the
// pending lists. Both directions indicate a bug in this package; silently
// continuing would process against a corrupted base state.
func (q *UpdateQueue) assertConsistent() {
	if q.empty() != (q.priority == NoPriority) {
		panic("loom: update queue aggregate priority is out of sync with its pending lists")
	}
}

// EnqueueUpdate appends u to the persistent list of every queue view that
// exists for n's pair. When both views already share a tail record the
// update is linked once and the sibling's tail handle is repointed; no
// traversal or duplication happens.
func EnqueueUpdate(n *Node, u Update) {
	alt := n.alternate
	if alt == nil {
		q := n.ensureQueue()
		q.warnIfProcessing()
		q.append(listPersistent, q.arena.alloc(u))
		return
	}

	q1, q2 := n.queue, alt.queue
	switch {
	case q1 == nil && q2 == nil:
		q1 = n.ensureQueue()
		q2 = alt.ensureQueue()
	case q1 == nil:
		q1 = q2.clone()
		n.queue = q1
	case q2 == nil:
		q2 = q1.clone()
		alt.queue = q2
	}

	// a view left behind by an earlier commit still points at a
	// pre-commit tail; appending through it would rewrite a link the
	// fresh view's list depends on. Re-syncing the stale clone first
	// keeps the two persistent lists suffix-shared.
	switch {
	case q1.gen < q2.gen:
		q1 = q2.clone()
		n.queue = q1
	case q2.gen < q1.gen:
		q2 = q1.clone()
		alt.queue = q2
	}
	q1.warnIfProcessing()

	h := q1.arena.alloc(u)
	if q1.lists[listPersistent].last == none || q2.lists[listPersistent].last == none {
		// one of the lists is empty; append to both individually
		q1.append(listPersistent, h)
		q2.append(listPersistent, h)
		return
	}

	// both lists are non-empty and end in the shared suffix: linking the
	// record after q1's tail makes it reachable from q2's tail as well,
	// so only the tail handle needs repointing there
	q1.append(listPersistent, h)
	q2.lists[listPersistent].last = h
	q2.priority = q2.priority.tighten(u.priority)
}

// EnqueueRenderPhaseUpdate records an update produced while a render pass
// was already running on this exact work-in-progress. It goes on the
// view-local render-phase list only: if the pass is discarded the update
// must vanish with it, and duplicating it into the persistent list would
// replay it on restart.
func EnqueueRenderPhaseUpdate(n *Node, u Update) {
	q := ensureWorkInProgressQueue(n)
	q.append(listRenderPhase, q.arena.alloc(u))
}

// EnqueueCapturedUpdate records an update introduced by failure recovery
// below this node. Mechanically a render-phase enqueue, but captured
// updates are processed last.
func EnqueueCapturedUpdate(n *Node, u Update) {
	q := ensureWorkInProgressQueue(n)
	q.append(listCaptured, q.arena.alloc(u))
}
