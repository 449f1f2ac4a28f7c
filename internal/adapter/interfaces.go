// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for talking to a
// running mock server.
//
// The primary abstraction is [ServerAdapter], which decouples the seeder from
// the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]). Error values defined in errors.go are mapped from
// HTTP status codes by mapHTTPError so that callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/specmock/specmock/models"
)

// ServerAdapter defines transport-agnostic communication with the mock
// server. Implementations are responsible for serialisation and for mapping
// transport-level errors to the sentinel values defined in this package.
type ServerAdapter interface {
	// Health probes the liveness endpoint. A nil return means the server is
	// up and answering.
	Health(ctx context.Context) error

	// CreateDocument stores one fixture document in the named collection and
	// returns the server's stored representation (including any synthesized
	// id). Returns [ErrConflict] (wrapped) when the id already exists.
	CreateDocument(ctx context.Context, collection string, doc models.Document) (models.Document, error)

	// Reset wipes every collection through the admin surface.
	Reset(ctx context.Context) error
}
