package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDirection = errors.New("model: invalid reorder direction")
	ErrInvalidSteps     = errors.New("model: invalid reorder steps")
)

// ListsCollection identifies the collection of shopping lists themselves.
// Any other collection id is the id of the list whose items are ordered.
const ListsCollection = "lists"

type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
)

func (d Direction) IsValid() bool {
	switch d {
	case DirectionUp, DirectionDown:
		return true
	default:
		return false
	}
}

// Entry is one member of an ordered collection: a shopping list or an item
// within one.
type Entry struct {
	ID      string
	Name    string
	Checked bool
}

func EntryIDs(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

type ReorderRequest struct {
	CollectionID string
	EntryID      string
	Direction    Direction
	Steps        int
}

func (r ReorderRequest) Validate() error {
	if strings.TrimSpace(r.CollectionID) == "" {
		return errors.New("model: reorder collection_id is required")
	}
	if strings.TrimSpace(r.EntryID) == "" {
		return errors.New("model: reorder entry_id is required")
	}
	if !r.Direction.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, r.Direction)
	}
	if r.Steps < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSteps, r.Steps)
	}
	return nil
}
