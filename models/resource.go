// SPDX-License-Identifier: Apache-2.0

package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Document is the schemaless JSON body of a mocked resource.
// Keys and values are whatever the client sent; the server only ever
// interprets the "id" field.
type Document map[string]any

// IDField is the document key the server treats as the resource identifier.
const IDField = "id"

// ID returns the document's identifier rendered as a string, or "" when the
// document carries no usable id field. Numeric ids are accepted because JSON
// decoding produces float64 for any number.
func (d Document) ID() string {
	raw, ok := d[IDField]
	if !ok {
		return ""
	}

	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// SetID stores id under the document's id field.
func (d Document) SetID(id string) {
	d[IDField] = id
}

// Clone returns a deep copy of the document obtained by re-marshalling it.
// Mutating the copy never affects the original.
func (d Document) Clone() (Document, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}

	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Resource is a single stored mock resource: one JSON document filed under a
// collection (derived from the route pattern) and a resource id (derived from
// the trailing path parameter or synthesized on create).
type Resource struct {
	// Collection is the normalized route pattern of the owning collection,
	// e.g. "/pets" for documents created via POST /pets.
	Collection string `json:"collection"`

	// ID is the resource identifier within its collection.
	ID string `json:"id"`

	// Document is the stored JSON body.
	Document Document `json:"document"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
