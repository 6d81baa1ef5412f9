package main

// historyEntry is one undoable edit: a pair of closures capturing the
// owner-tagged payload returned by the path operation.
type historyEntry struct {
	undo func()
	redo func()
}

// History is a linear undo stack. Pushing after undoing discards the
// redoable tail.
type History struct {
	entries []historyEntry
	cursor  int
}

func (h *History) Push(undo, redo func()) {
	h.entries = append(h.entries[:h.cursor], historyEntry{undo: undo, redo: redo})
	h.cursor = len(h.entries)
}

func (h *History) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	h.entries[h.cursor].undo()
	return true
}

func (h *History) Redo() bool {
	if h.cursor == len(h.entries) {
		return false
	}
	h.entries[h.cursor].redo()
	h.cursor++
	return true
}

func (h *History) Clear() {
	h.entries = nil
	h.cursor = 0
}
