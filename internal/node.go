package internal

type Flags uint32

const (
	// FlagCommitWork marks a node whose last process call recorded commit
	// actions, so the commit phase must visit it.
	FlagCommitWork Flags = 1 << iota
)

// Node is one view of a logical tree node: either the committed view or
// the work-in-progress view being recomputed. The two views reference each
// other through alternate and share update records through a common arena;
// each keeps its own queue and memoized state.
type Node struct {
	memoized  any
	queue     *UpdateQueue
	alternate *Node
	arena     *updateArena
	flags     Flags
}

// NewNode creates the committed view of a node with its initial state.
func NewNode(initial any) *Node {
	return &Node{memoized: initial, arena: &updateArena{}}
}

// MemoizedState returns the node's last computed state. After a process
// call this is the only observable output of the queue.
func (n *Node) MemoizedState() any { return n.memoized }

// Alternate returns the other view of the pair, if it exists.
func (n *Node) Alternate() *Node { return n.alternate }

// Flags returns the node's effect flags.
func (n *Node) Flags() Flags { return n.flags }

// HasFlag reports whether f is set.
func (n *Node) HasFlag(f Flags) bool { return n.flags&f != 0 }

// WorkInProgress returns the pair's other view, refreshed to start a new
// render pass on top of n's committed state. Any queue left over from an
// abandoned pass is dropped; processing re-clones from the committed view.
func (n *Node) WorkInProgress() *Node {
	alt := n.alternate
	if alt == nil {
		alt = &Node{alternate: n, arena: n.arena}
		n.alternate = alt
	}
	alt.memoized = n.memoized
	alt.flags = 0
	alt.queue = nil
	return alt
}

// Abandon discards the view's work: its queue clone and effect flags. The
// committed view is untouched, so the pass can be restarted safely.
func (n *Node) Abandon() {
	n.queue = nil
	n.flags = 0
}

// ensureQueue lazily creates the view's queue from its last known state.
func (n *Node) ensureQueue() *UpdateQueue {
	if n.queue == nil {
		n.queue = newUpdateQueue(n.arena, n.memoized)
	}
	return n.queue
}

// ensureWorkInProgressQueue makes sure n has a queue that is safe to
// mutate: missing queues are cloned from the committed sibling, and a
// leftover queue whose generation lags the sibling's was cloned before an
// earlier commit and is re-cloned. Copy-on-write for the pair reduces to
// this generation comparison.
func ensureWorkInProgressQueue(n *Node) *UpdateQueue {
	var committed *UpdateQueue
	if n.alternate != nil {
		committed = n.alternate.queue
	}

	q := n.queue
	switch {
	case q == nil && committed == nil:
		q = n.ensureQueue()
	case q == nil:
		q = committed.clone()
		n.queue = q
	case committed != nil && q.gen < committed.gen:
		q = committed.clone()
		n.queue = q
	}
	return q
}
