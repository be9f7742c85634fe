package portfolio

import "time"

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

type Entity string

const (
	EntityProfile Entity = "profile"
	EntitySkill   Entity = "skill"
	EntityProject Entity = "project"
	EntityWork    Entity = "work"
)

// ChangeEvent is emitted after a successful mutation of any entity.
type ChangeEvent struct {
	EventType  EventType `json:"event_type"`
	Entity     Entity    `json:"entity"`
	EntityID   int64     `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewChangeEvent(t EventType, e Entity, id int64) ChangeEvent {
	return ChangeEvent{EventType: t, Entity: e, EntityID: id, OccurredAt: time.Now().UTC()}
}
