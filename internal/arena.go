package internal

// handle addresses an update record inside a node pair's arena. Handles are
// 1-based so the zero value means "no update", which keeps freshly zeroed
// lists and records valid.
type handle int32

const none handle = 0

// updateArena owns the backing storage for every update record of one node
// pair. Both queue views address records through handles, so cloning a
// queue copies head/tail handles while sharing the entries themselves.
type updateArena struct {
	updates []Update
}

func (a *updateArena) alloc(u Update) handle {
	a.updates = append(a.updates, u)
	return handle(len(a.updates))
}

// at returns the record for h. The pointer is only valid until the next
// alloc, which may grow the backing slice.
func (a *updateArena) at(h handle) *Update {
	return &a.updates[h-1]
}
