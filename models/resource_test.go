package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_ID(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{name: "string id", doc: Document{"id": "abc-1"}, want: "abc-1"},
		{name: "integer id from JSON numbers", doc: Document{"id": float64(42)}, want: "42"},
		{name: "fractional id keeps its digits", doc: Document{"id": 4.5}, want: "4.5"},
		{name: "missing id", doc: Document{"name": "rex"}, want: ""},
		{name: "unusable id type", doc: Document{"id": []any{"x"}}, want: ""},
		{name: "nil document", doc: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.ID())
		})
	}
}

func TestDocument_SetID(t *testing.T) {
	doc := Document{"id": "old", "name": "rex"}
	doc.SetID("new")

	assert.Equal(t, "new", doc.ID())
	assert.Equal(t, "rex", doc["name"])
}

func TestDocument_Clone(t *testing.T) {
	original := Document{
		"id":    "1",
		"owner": map[string]any{"name": "alice"},
		"tags":  []any{"a", "b"},
	}

	clone, err := original.Clone()
	require.NoError(t, err)
	require.Equal(t, original, clone)

	// mutating nested structures of the clone leaves the original intact
	clone["id"] = "2"
	clone["owner"].(map[string]any)["name"] = "bob"

	assert.Equal(t, "1", original.ID())
	assert.Equal(t, "alice", original["owner"].(map[string]any)["name"])
}

func TestNewBuildInfo(t *testing.T) {
	t.Run("values pass through", func(t *testing.T) {
		info := NewBuildInfo("1.2.3", "2026-01-01", "abc123")

		assert.Equal(t, BuildInfo{Version: "1.2.3", Date: "2026-01-01", Commit: "abc123"}, info)
	})

	t.Run("empty values normalize to N/A", func(t *testing.T) {
		info := NewBuildInfo("", "", "")

		assert.Equal(t, BuildInfo{Version: "N/A", Date: "N/A", Commit: "N/A"}, info)
	})
}
