// Package http implements the HTTP transport layer of the mock server.
//
// It exposes route wiring, the generic CRUD resource handler, and middleware
// used by the mocked REST surface. Cross-cutting concerns such as security
// requirement checking, request tracing, access logging, and response
// compression are handled in this package before requests are delegated to
// the service layer.
package http
