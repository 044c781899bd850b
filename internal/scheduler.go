package internal

// Scheduler drives render passes over a set of nodes at a single priority
// and commits the ones that finish. Scheduling is cooperative and
// non-preemptive within a pass: a pass can only be interrupted between
// nodes, and an interrupted pass just drops its work-in-progress clones.
type Scheduler struct {
	// incremented each time a pass is accepted and committed;
	// used for staleness checks by callers
	clock uint64

	running bool

	diag *Diagnostics
}

func NewScheduler(diag *Diagnostics) *Scheduler {
	return &Scheduler{diag: diag}
}

// Clock returns the number of passes committed so far.
func (s *Scheduler) Clock() uint64 {
	return s.clock
}

// RenderPass processes every node's pending work at the given priority.
// shouldYield, if non-nil, is consulted between nodes; once it returns
// true the pass is abandoned: every work-in-progress view built so far is
// dropped and ok is false. The committed views stay untouched, so the pass
// can be re-run later at any priority.
//
// An accepted pass commits each queue, fires commit actions in enqueue
// order, and returns the finished views, which the caller should treat as
// the committed views from now on.
func (s *Scheduler) RenderPass(pass Priority, nodes []*Node, shouldYield func() bool) (finished []*Node, ok bool) {
	if s.running {
		return nil, false
	}
	s.running = true
	defer func() { s.running = false }()

	finished = make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if shouldYield != nil && shouldYield() {
			for _, w := range finished {
				w.Abandon()
			}
			return nil, false
		}

		wip := n.WorkInProgress()
		ProcessUpdateQueue(wip, pass, s.diag)
		finished = append(finished, wip)
	}

	for _, w := range finished {
		CommitUpdateQueue(w)
	}
	s.clock++
	return finished, true
}
