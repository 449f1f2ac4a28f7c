// Package openapi loads the OpenAPI 3 document the mock surface is generated
// from and resolves it into a flat route table of [Operation] values.
//
// Each operation carries everything the transport layer needs: the chi-style
// route pattern, the HTTP method, the trailing path parameter (if any), and
// the effective security requirements with their scheme definitions already
// dereferenced. The resolve middleware stores the matched *Operation in the
// request context; downstream middleware and handlers retrieve it via
// [OperationFromContext].
package openapi
