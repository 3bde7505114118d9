package events

// Event types raised by the undo/redo coordinator
const (
	TypeChangeApplied  = "change.applied"
	TypeChangeUndone   = "change.undone"
	TypeChangeRedone   = "change.redone"
	TypeChangesCleared = "changes.cleared"
)
