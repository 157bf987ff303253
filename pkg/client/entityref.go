package client

import (
	"encoding/json"
	"fmt"
)

// EntityRef is a reference field that the API may serve either as a
// bare hex id or as the expanded document. It is resolved once at the
// decode boundary: ID always holds the hex id, Expanded is non-nil only
// when the server sent the document.
type EntityRef[T any] struct {
	ID       string
	Expanded *T
}

// IsExpanded reports whether the server sent the full document.
func (r EntityRef[T]) IsExpanded() bool { return r.Expanded != nil }

func (r *EntityRef[T]) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*r = EntityRef[T]{}
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}

	if data[0] == '{' {
		var doc T
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		r.Expanded = &doc
		// Pull the id out of the document so ID is always usable.
		var idHolder struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(data, &idHolder); err == nil {
			r.ID = idHolder.ID
		}
		return nil
	}

	return fmt.Errorf("entity reference is neither an id nor a document: %s", data)
}

// MarshalJSON writes the bare id; the expanded document is a read-side
// convenience and never sent back to the server.
func (r EntityRef[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}
