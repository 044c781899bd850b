package internal

// CommitUpdateQueue finalizes an accepted render pass on n's queue. Any
// residue on the render-phase and captured lists is folded back onto the
// persistent list so the next, weaker pass retries it; then the recorded
// commit actions fire once each, in the order their updates were
// originally enqueued. Committing advances the queue's generation, which
// is what makes the other view's queue a stale clone.
func CommitUpdateQueue(n *Node) {
	n.flags &^= FlagCommitWork

	q := n.queue
	if q == nil {
		return
	}
	q.assertConsistent()

	q.fold(listRenderPhase)
	q.fold(listCaptured)

	for h := q.effect.first; h != none; {
		u := q.arena.at(h)
		next := u.nextEffect
		if action := u.commit; action != nil {
			// a skipped-then-rebased update can be reprocessed by a later
			// pass; clearing the action keeps it from firing twice
			u.commit = nil
			action(n)
		}
		h = next
	}
	q.effect = updateList{}

	q.gen++
}
