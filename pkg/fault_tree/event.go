package fault_tree

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jtomasevic/cutset/pkg/indexed_tree"
)

// Event is the common identity of every node in the symbolic model.
// Names are lower-cased on construction and must be unique within a
// fault tree.
type Event struct {
	ID   uuid.UUID
	Name string
}

func newEvent(name string) Event {
	return Event{
		ID:   uuid.New(),
		Name: strings.ToLower(name),
	}
}

// BasicEvent is a primary event with stochastic failure behavior.
type BasicEvent struct {
	Event
}

func NewBasicEvent(name string) *BasicEvent {
	return &BasicEvent{Event: newEvent(name)}
}

// HouseEvent is a primary event pinned to a boolean constant.
type HouseEvent struct {
	Event
	State bool
}

func NewHouseEvent(name string, state bool) *HouseEvent {
	return &HouseEvent{Event: newEvent(name), State: state}
}

// Gate is a named operator over other events, described by a formula.
type Gate struct {
	Event
	Formula *indexed_tree.Formula
}

func NewGate(name string, formula *indexed_tree.Formula) *Gate {
	return &Gate{Event: newEvent(name), Formula: formula}
}
