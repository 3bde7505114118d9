package events

import (
	"time"

	"editor-backend/domain/changes"
)

// ChangeApplied is raised when a change is applied for the first time
type ChangeApplied struct {
	BaseEvent
	ChangeID   string          `json:"change_id"`
	Command    changes.Command `json:"cmd"`
	StackDepth int             `json:"stack_depth"`
}

// NewChangeApplied creates a ChangeApplied event
func NewChangeApplied(aggregateID, changeID string, cmd changes.Command, depth int, timestamp time.Time) ChangeApplied {
	return ChangeApplied{
		BaseEvent: BaseEvent{
			AggregateID: aggregateID,
			EventType:   TypeChangeApplied,
			Timestamp:   timestamp,
			Version:     1,
		},
		ChangeID:   changeID,
		Command:    cmd,
		StackDepth: depth,
	}
}

// ChangeUndone is raised when the most recent change is reversed
type ChangeUndone struct {
	BaseEvent
	ChangeID   string          `json:"change_id"`
	Command    changes.Command `json:"cmd"`
	StackDepth int             `json:"stack_depth"`
}

// NewChangeUndone creates a ChangeUndone event
func NewChangeUndone(aggregateID, changeID string, cmd changes.Command, depth int, timestamp time.Time) ChangeUndone {
	return ChangeUndone{
		BaseEvent: BaseEvent{
			AggregateID: aggregateID,
			EventType:   TypeChangeUndone,
			Timestamp:   timestamp,
			Version:     1,
		},
		ChangeID:   changeID,
		Command:    cmd,
		StackDepth: depth,
	}
}

// ChangeRedone is raised when an undone change is applied again
type ChangeRedone struct {
	BaseEvent
	ChangeID   string          `json:"change_id"`
	Command    changes.Command `json:"cmd"`
	StackDepth int             `json:"stack_depth"`
}

// NewChangeRedone creates a ChangeRedone event
func NewChangeRedone(aggregateID, changeID string, cmd changes.Command, depth int, timestamp time.Time) ChangeRedone {
	return ChangeRedone{
		BaseEvent: BaseEvent{
			AggregateID: aggregateID,
			EventType:   TypeChangeRedone,
			Timestamp:   timestamp,
			Version:     1,
		},
		ChangeID:   changeID,
		Command:    cmd,
		StackDepth: depth,
	}
}

// ChangesCleared is raised when both stacks are discarded, typically after a
// successful save
type ChangesCleared struct {
	BaseEvent
	Discarded int `json:"discarded"`
}

// NewChangesCleared creates a ChangesCleared event
func NewChangesCleared(discarded int, timestamp time.Time) ChangesCleared {
	return ChangesCleared{
		BaseEvent: BaseEvent{
			EventType: TypeChangesCleared,
			Timestamp: timestamp,
			Version:   1,
		},
		Discarded: discarded,
	}
}
