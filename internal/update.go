package internal

// ProcessFunc computes the next state from the previous one. It must be
// pure. Returning ok=false leaves the state untouched, for updates that
// only carry a commit action.
type ProcessFunc func(n *Node, prev any) (next any, ok bool)

// CommitFunc is a side-effecting action fired once by CommitUpdateQueue
// after a render pass is accepted.
type CommitFunc func(n *Node)

// Update is one requested transition on a node's state. Once appended to a
// persistent list it is immutable except for the two link fields and the
// commit action, which the committer clears after firing.
type Update struct {
	priority Priority
	process  ProcessFunc
	commit   CommitFunc

	// next links the update into a pending list. The same record can be
	// the tail of both views' persistent lists at once; the lists converge
	// at the shared suffix.
	next handle

	// nextEffect links the update into the transient effect list built
	// while processing. An aborted pass can leave it dangling, so it is
	// reset every time the update is re-added to an effect list.
	nextEffect handle
}

// NewUpdate builds an update record. Either function may be nil.
func NewUpdate(p Priority, process ProcessFunc, commit CommitFunc) Update {
	return Update{priority: p, process: process, commit: commit}
}

// listKind names one of the three pending lists of a queue. They are
// processed in declaration order: later-introduced updates logically
// happen after earlier ones.
type listKind uint8

const (
	// listPersistent is the dual-view list shared by both queues of a
	// node pair.
	listPersistent listKind = iota
	// listRenderPhase holds updates produced while a render pass was
	// already running on this work-in-progress. Never shared.
	listRenderPhase
	// listCaptured holds updates injected by failure recovery below this
	// node. Never shared.
	listCaptured

	numListKinds
)

var processOrder = [numListKinds]listKind{listPersistent, listRenderPhase, listCaptured}

// updateList is a singly-linked list of arena records. The zero value is
// the empty list.
type updateList struct {
	first handle
	last  handle
}
