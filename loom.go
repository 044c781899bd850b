package loom

import "github.com/loomui/loom/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Priority orders pending work; a numerically lower token is more urgent.
// The queue only relies on the total order, so callers running their own
// scheduler can mint arbitrary tokens.
type Priority = internal.Priority

// NoPriority marks the absence of pending work and compares weaker than
// every real priority.
const NoPriority = internal.NoPriority

// Conventional priority levels for callers without their own token source.
const (
	ImmediatePriority Priority = iota + 1
	UserBlockingPriority
	NormalPriority
	LowPriority
	IdlePriority
)

// Diagnostics receives non-fatal usage warnings, such as an update being
// enqueued from inside a state transform. A nil sink disables them.
type Diagnostics = internal.Diagnostics

// Update describes one requested transition on a node's state.
type Update[S any] struct {
	// Priority is the urgency token supplied by the scheduler.
	Priority Priority

	// Process computes the next state from the previous one. It must be
	// pure. Returning changed=false leaves the state untouched. May be nil
	// for commit-only updates.
	Process func(prev S) (next S, changed bool)

	// Commit is a side-effecting action fired exactly once, after the
	// render pass that applied the update is accepted. May be nil.
	Commit func(n *Node[S])
}

func (u Update[S]) lower() internal.Update {
	var process internal.ProcessFunc
	if fn := u.Process; fn != nil {
		process = func(_ *internal.Node, prev any) (any, bool) {
			next, changed := fn(as[S](prev))
			if !changed {
				return nil, false
			}
			return next, true
		}
	}

	var commit internal.CommitFunc
	if fn := u.Commit; fn != nil {
		commit = func(node *internal.Node) {
			fn(&Node[S]{node})
		}
	}

	return internal.NewUpdate(u.Priority, process, commit)
}

// Node is one view of a logical tree node. The committed view and the
// work-in-progress view being recomputed share their pending update
// records and independently converge to the same state.
type Node[S any] struct {
	node *internal.Node
}

// NewNode creates the committed view of a node with its initial state.
func NewNode[S any](initial S) *Node[S] {
	return &Node[S]{internal.NewNode(initial)}
}

// State returns the node's memoized state: the result of the last render
// pass processed on this view. This is what a tree-diff engine reads to
// decide what to re-render.
func (n *Node[S]) State() S {
	return as[S](n.node.MemoizedState())
}

// Alternate returns the other view of the pair, or nil before the first
// work-in-progress view is created.
func (n *Node[S]) Alternate() *Node[S] {
	alt := n.node.Alternate()
	if alt == nil {
		return nil
	}
	return &Node[S]{alt}
}

// WorkInProgress returns the pair's other view, reset to start a new
// render pass on top of this view's committed state.
func (n *Node[S]) WorkInProgress() *Node[S] {
	return &Node[S]{n.node.WorkInProgress()}
}

// Abandon discards this view's in-flight work. The committed view is
// untouched; a later pass re-clones from it.
func (n *Node[S]) Abandon() {
	n.node.Abandon()
}

// NeedsCommit reports whether the last process call recorded commit
// actions that the commit phase must fire.
func (n *Node[S]) NeedsCommit() bool {
	return n.node.HasFlag(internal.FlagCommitWork)
}

// Enqueue appends u to the pending work of both views of this node, so the
// change is applied no matter which view renders next.
func (n *Node[S]) Enqueue(u Update[S]) {
	internal.EnqueueUpdate(n.node, u.lower())
}

// EnqueueRenderPhase appends u to this view only. Use it for updates
// produced while a render pass is already running on this exact
// work-in-progress: they must not survive if that pass is discarded.
func (n *Node[S]) EnqueueRenderPhase(u Update[S]) {
	internal.EnqueueRenderPhaseUpdate(n.node, u.lower())
}

// EnqueueCaptured appends a failure-recovery update to this view. Captured
// updates are processed after every other pending update of the pass.
func (n *Node[S]) EnqueueCaptured(u Update[S]) {
	internal.EnqueueCapturedUpdate(n.node, u.lower())
}

// Process applies the pending updates eligible at the pass priority and
// stores the result as this view's state. Skipped updates stay queued and
// are rebased by a later, weaker pass.
func (n *Node[S]) Process(pass Priority) {
	internal.ProcessUpdateQueue(n.node, pass, nil)
}

// ProcessWith is Process with a diagnostics sink for instrumented callers.
func (n *Node[S]) ProcessWith(pass Priority, diag *Diagnostics) {
	internal.ProcessUpdateQueue(n.node, pass, diag)
}

// Commit accepts the pass rendered on this view: leftover render-phase and
// captured updates are folded back into the pending list, and every commit
// action recorded by Process fires once, in enqueue order. The caller
// should treat this view as the committed one from now on.
func (n *Node[S]) Commit() {
	internal.CommitUpdateQueue(n.node)
}

// Scheduler drives cooperative render passes over a set of nodes.
type Scheduler[S any] struct {
	scheduler *internal.Scheduler
}

// NewScheduler creates a scheduler. diag may be nil.
func NewScheduler[S any](diag *Diagnostics) *Scheduler[S] {
	return &Scheduler[S]{internal.NewScheduler(diag)}
}

// Clock returns the number of passes committed so far.
func (s *Scheduler[S]) Clock() uint64 {
	return s.scheduler.Clock()
}

// RenderPass processes every node at the given priority and commits the
// result. shouldYield, if non-nil, is consulted between nodes; once it
// returns true the pass is abandoned without touching committed state and
// ok is false. On success the returned views are the new committed views,
// in the order the nodes were given.
func (s *Scheduler[S]) RenderPass(pass Priority, nodes []*Node[S], shouldYield func() bool) (finished []*Node[S], ok bool) {
	inner := make([]*internal.Node, len(nodes))
	for i, n := range nodes {
		inner[i] = n.node
	}

	done, ok := s.scheduler.RenderPass(pass, inner, shouldYield)
	if !ok {
		return nil, false
	}

	finished = make([]*Node[S], len(done))
	for i, n := range done {
		finished[i] = &Node[S]{n}
	}
	return finished, true
}
