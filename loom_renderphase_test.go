package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPhaseUpdates(t *testing.T) {
	t.Run("processed after pending updates", func(t *testing.T) {
		node := NewNode("")
		node.Enqueue(appendLetter("A", NormalPriority))

		wip := node.WorkInProgress()
		wip.EnqueueRenderPhase(appendLetter("R", NormalPriority))
		wip.Process(NormalPriority)

		assert.Equal(t, "AR", wip.State())
	})

	t.Run("discarded with an abandoned pass", func(t *testing.T) {
		node := NewNode("")
		node.Enqueue(appendLetter("A", NormalPriority))

		wip := node.WorkInProgress()
		wip.EnqueueRenderPhase(appendLetter("R", NormalPriority))
		wip.Abandon()

		retry := node.WorkInProgress()
		retry.Process(NormalPriority)
		retry.Commit()
		assert.Equal(t, "A", retry.State())
	})

	t.Run("unapplied residue is retried after commit", func(t *testing.T) {
		node := NewNode("")
		wip := node.WorkInProgress()
		wip.EnqueueRenderPhase(appendLetter("R", LowPriority))
		wip.Process(NormalPriority)
		assert.Equal(t, "", wip.State())

		// commit folds the leftover render-phase update back into the
		// pending list so a weaker pass picks it up
		wip.Commit()
		next := wip.WorkInProgress()
		next.Process(LowPriority)
		assert.Equal(t, "R", next.State())
	})
}

func TestCapturedUpdates(t *testing.T) {
	t.Run("processed after normal and render-phase updates", func(t *testing.T) {
		node := NewNode("")
		node.Enqueue(appendLetter("A", NormalPriority))

		wip := node.WorkInProgress()
		wip.EnqueueRenderPhase(appendLetter("R", NormalPriority))
		wip.EnqueueCaptured(appendLetter("X", NormalPriority))
		wip.Process(NormalPriority)

		assert.Equal(t, "ARX", wip.State())
	})

	t.Run("recovery state overrides the failed result", func(t *testing.T) {
		node := NewNode("content")
		node.Enqueue(appendLetter("!", NormalPriority))

		wip := node.WorkInProgress()
		wip.EnqueueCaptured(Update[string]{
			Priority: NormalPriority,
			Process: func(string) (string, bool) {
				return "fallback", true
			},
		})
		wip.Process(NormalPriority)

		assert.Equal(t, "fallback", wip.State())
	})

	t.Run("unapplied residue is retried after commit", func(t *testing.T) {
		node := NewNode("")
		wip := node.WorkInProgress()
		wip.Process(NormalPriority)
		wip.EnqueueCaptured(appendLetter("X", IdlePriority))
		wip.Process(NormalPriority)
		assert.Equal(t, "", wip.State())

		wip.Commit()
		next := wip.WorkInProgress()
		next.Process(IdlePriority)
		assert.Equal(t, "X", next.State())
	})
}
