// SPDX-License-Identifier: Apache-2.0

package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Scheme type discriminators as they appear in OpenAPI 3 documents.
const (
	SchemeTypeAPIKey        = "apiKey"
	SchemeTypeHTTP          = "http"
	SchemeTypeOAuth2        = "oauth2"
	SchemeTypeOpenIDConnect = "openIdConnect"
)

// Locations an apiKey scheme may bind its credential to.
const (
	InHeader = "header"
	InQuery  = "query"
	InCookie = "cookie"
)

// HTTP authorization sub-schemes.
const (
	HTTPSchemeBasic  = "basic"
	HTTPSchemeBearer = "bearer"
)

// Scheme is the checker-facing description of one named security scheme:
// which artifact the request must carry and where.
type Scheme struct {
	// Name is the scheme's key in the document's components.securitySchemes.
	Name string

	// Type is one of the SchemeType* constants.
	Type string

	// In is the credential location (header, query, cookie) for apiKey
	// schemes. Empty otherwise.
	In string

	// ParamName is the header/query-parameter/cookie name carrying the
	// credential for apiKey schemes. Empty otherwise.
	ParamName string

	// HTTPScheme is the authorization sub-scheme (basic, bearer) for http
	// schemes. Empty otherwise.
	HTTPScheme string

	// BearerFormat is an advisory hint for bearer tokens (e.g. "JWT").
	BearerFormat string
}

// Requirement is one security alternative: every named scheme must be
// satisfied for the alternative to pass. Values are OAuth2 scopes, kept for
// logging only, a mock server does not evaluate scopes.
type Requirement map[string][]string

// newScheme converts a dereferenced kin-openapi security scheme into the
// internal representation.
func newScheme(name string, src *openapi3.SecurityScheme) Scheme {
	return Scheme{
		Name:         name,
		Type:         src.Type,
		In:           src.In,
		ParamName:    src.Name,
		HTTPScheme:   src.Scheme,
		BearerFormat: src.BearerFormat,
	}
}

// UsesBearer reports whether the scheme expects an "Authorization: Bearer"
// header. oauth2 and openIdConnect flows all surface as bearer tokens on the
// wire.
func (s Scheme) UsesBearer() bool {
	switch s.Type {
	case SchemeTypeOAuth2, SchemeTypeOpenIDConnect:
		return true
	case SchemeTypeHTTP:
		return s.HTTPScheme == HTTPSchemeBearer
	default:
		return false
	}
}
