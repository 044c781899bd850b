package loom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommit(t *testing.T) {
	t.Run("fires actions once in enqueue order", func(t *testing.T) {
		fired := []string{}
		node := NewNode(0)
		for _, name := range []string{"one", "two", "three"} {
			node.Enqueue(Update[int]{
				Priority: NormalPriority,
				Commit: func(*Node[int]) {
					fired = append(fired, name)
				},
			})
		}

		wip := node.WorkInProgress()
		wip.Process(NormalPriority)
		assert.True(t, wip.NeedsCommit())
		assert.Empty(t, fired)

		wip.Commit()
		assert.Equal(t, []string{"one", "two", "three"}, fired)
		assert.False(t, wip.NeedsCommit())
	})

	t.Run("skipped then reprocessed updates still fire once", func(t *testing.T) {
		fired := []string{}
		action := func(name string) func(*Node[string]) {
			return func(*Node[string]) { fired = append(fired, name) }
		}

		node := NewNode("")
		node.Enqueue(Update[string]{
			Priority: ImmediatePriority,
			Process:  func(prev string) (string, bool) { return prev + "A", true },
			Commit:   action("A"),
		})
		node.Enqueue(Update[string]{
			Priority: UserBlockingPriority,
			Process:  func(prev string) (string, bool) { return prev + "B", true },
			Commit:   action("B"),
		})
		node.Enqueue(Update[string]{
			Priority: ImmediatePriority,
			Process:  func(prev string) (string, bool) { return prev + "C", true },
			Commit:   action("C"),
		})

		wip := node.WorkInProgress()
		wip.Process(ImmediatePriority)
		wip.Commit()
		// C was applied after the skipped B and stays queued for the next
		// pass, but its action already fired and must not repeat
		assert.Equal(t, []string{"A", "C"}, fired)

		next := wip.WorkInProgress()
		next.Process(UserBlockingPriority)
		next.Commit()
		assert.Equal(t, "ABC", next.State())
		assert.Equal(t, []string{"A", "C", "B"}, fired)
	})

	t.Run("abandoned pass fires nothing", func(t *testing.T) {
		fired := 0
		node := NewNode(0)
		node.Enqueue(Update[int]{
			Priority: NormalPriority,
			Commit:   func(*Node[int]) { fired++ },
		})

		wip := node.WorkInProgress()
		wip.Process(NormalPriority)
		wip.Abandon()
		assert.Zero(t, fired)

		// the restarted pass records and fires the action normally
		retry := node.WorkInProgress()
		retry.Process(NormalPriority)
		retry.Commit()
		assert.Equal(t, 1, fired)
	})

	t.Run("commit hands the finished node to the action", func(t *testing.T) {
		var seen int
		node := NewNode(0)
		node.Enqueue(Update[int]{
			Priority: NormalPriority,
			Process:  func(prev int) (int, bool) { return 42, true },
			Commit: func(n *Node[int]) {
				seen = n.State()
			},
		})

		wip := node.WorkInProgress()
		wip.Process(NormalPriority)
		wip.Commit()
		assert.Equal(t, 42, seen)
	})

	t.Run("commit without processed work is harmless", func(t *testing.T) {
		node := NewNode("x")
		wip := node.WorkInProgress()
		wip.Commit()
		assert.Equal(t, "x", wip.State())
	})
}
