// SPDX-License-Identifier: Apache-2.0

package openapi

import (
	"context"
	"strings"
)

// Operation is one (method, path) pair from the loaded document, resolved
// into the form the transport layer consumes.
type Operation struct {
	// Method is the upper-case HTTP method.
	Method string

	// Pattern is the route pattern with OpenAPI path templates preserved,
	// e.g. "/pets/{petId}". chi uses the same placeholder syntax, so the
	// pattern is registered on the router verbatim.
	Pattern string

	// OperationID is the document's operationId, or "" when absent.
	OperationID string

	// ItemParam is the name of the trailing path parameter when the pattern
	// ends in one ("petId" for "/pets/{petId}"). Empty for collection
	// routes. The CRUD handler derives the resource key from it.
	ItemParam string

	// Security is the effective list of security alternatives for this
	// operation: the operation-level requirements when declared (including
	// an explicit empty list, which disables auth), otherwise the
	// document-level default. A nil or empty slice means no authentication
	// is required.
	Security []Requirement
}

// Collection returns the collection key for the operation: the pattern
// without the trailing item parameter segment. For "/pets/{petId}" it returns
// "/pets"; for collection routes it returns the pattern unchanged.
func (o *Operation) Collection() string {
	if o.ItemParam == "" {
		return o.Pattern
	}

	idx := strings.LastIndex(o.Pattern, "/")
	if idx <= 0 {
		return "/"
	}

	return o.Pattern[:idx]
}

// IsItem reports whether the operation addresses a single resource rather
// than a collection.
func (o *Operation) IsItem() bool {
	return o.ItemParam != ""
}

// itemParam extracts the trailing path parameter name from a route pattern,
// or "" when the last segment is not a template.
func itemParam(pattern string) string {
	idx := strings.LastIndex(pattern, "/")
	last := pattern[idx+1:]
	if strings.HasPrefix(last, "{") && strings.HasSuffix(last, "}") {
		return last[1 : len(last)-1]
	}

	return ""
}

// contextKey is a private type for context keys, preventing collisions with
// other packages storing values in the same context.
type contextKey string

const operationCtxKey = contextKey("openapi-operation")

// WithOperation returns a copy of ctx carrying the resolved operation.
func WithOperation(ctx context.Context, op *Operation) context.Context {
	return context.WithValue(ctx, operationCtxKey, op)
}

// OperationFromContext retrieves the operation stored by the resolve
// middleware.
//
// Returns the operation and an ok flag:
//   - ok == true: an operation was resolved for this request
//   - ok == false: the request did not pass through the resolve middleware
func OperationFromContext(ctx context.Context) (*Operation, bool) {
	op, ok := ctx.Value(operationCtxKey).(*Operation)
	return op, ok
}
